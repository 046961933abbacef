package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"theater-run-service/internal/cache"
	"theater-run-service/internal/config"
	"theater-run-service/internal/metrics"
	"theater-run-service/internal/providers"
	"theater-run-service/internal/providers/fixture"
	"theater-run-service/internal/providers/tmdb"
)

// minFetchInterval spaces out upstream listing fetches regardless of how
// aggressive the poll interval is configured.
const minFetchInterval = time.Minute

// providerFactory assembles the provider chain: base client, rate limiter,
// retry wrapper, and the cached run-start resolver.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) (providers.NowPlayingProvider, providers.RunStartResolver, error) {
	base, err := selectProvider(cfg, f.logger)
	if err != nil {
		return nil, nil, err
	}

	limited := providers.NewRateLimitedProvider(base, minFetchInterval, f.logger)
	wrapped := providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)

	fc := cache.New(cfg.Cache.Dir, cfg.Cache.TTLHours)
	resolver := providers.NewCachedResolver(base, fc, f.logger)

	return wrapped, resolver, nil
}

func selectProvider(cfg config.Config, logger *slog.Logger) (providers.MovieProvider, error) {
	switch cfg.Provider {
	case "fixture":
		return fixture.New(), nil
	case "tmdb", "":
		client, err := tmdb.NewClient(tmdb.Config{
			BaseURL:    cfg.TMDB.BaseURL,
			APIKey:     cfg.TMDB.APIKey,
			Language:   cfg.TMDB.Language,
			Region:     cfg.TMDB.Region,
			MaxPages:   cfg.TMDB.MaxPages,
			HTTPClient: &http.Client{Timeout: 20 * time.Second},
		})
		if err != nil {
			return nil, fmt.Errorf("building tmdb provider: %w", err)
		}
		return client, nil
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(), nil
	}
}
