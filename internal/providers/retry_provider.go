package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"theater-run-service/internal/domain"
	"theater-run-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 200 * time.Millisecond
)

// retryingProvider wraps a NowPlayingProvider with retry/backoff behavior
// for transient failures. Rate-limit errors are not retried here: the
// client has already honored the server-directed wait and exhausted its
// own budget by the time one surfaces.
type retryingProvider struct {
	inner    NowPlayingProvider
	logger   *slog.Logger
	metrics  *metrics.Recorder
	name     string
	attempts uint
	delay    time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If attempts/delay are <= 0, defaults are used.
func NewRetryingProvider(inner NowPlayingProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, attempts int, delay time.Duration) NowPlayingProvider {
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return &retryingProvider{
		inner:    inner,
		logger:   logger,
		metrics:  recorder,
		name:     name,
		attempts: uint(attempts),
		delay:    delay,
	}
}

func (r *retryingProvider) FetchNowPlaying(ctx context.Context, region string) ([]domain.Movie, error) {
	return retry.DoWithData(
		func() ([]domain.Movie, error) {
			start := time.Now()
			movies, err := r.inner.FetchNowPlaying(ctx, region)
			r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
			if rl, ok := AsRateLimitError(err); ok {
				r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			}
			return movies, err
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return false
			}
			if _, ok := AsRateLimitError(err); ok {
				return false
			}
			return true
		}),
		retry.OnRetry(func(attempt uint, err error) {
			logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
				slog.Uint64("attempt", uint64(attempt+1)),
				slog.Uint64("max_attempts", uint64(r.attempts)),
				"error", err,
			)
		}),
	)
}
