package providers

import (
	"context"
	"log/slog"
	"time"

	"theater-run-service/internal/domain"
)

// rateLimitedProvider wraps a NowPlayingProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     NowPlayingProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a NowPlayingProvider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next NowPlayingProvider, interval time.Duration, logger *slog.Logger) NowPlayingProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchNowPlaying(ctx context.Context, region string) ([]domain.Movie, error) {
	if p == nil || p.next == nil {
		if p != nil && p.logger != nil {
			p.logger.Warn("provider unavailable", slog.String("provider", "rate-limited"))
		}
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "fetching now playing", slog.String("region", region))
	return p.next.FetchNowPlaying(ctx, region)
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
