// Package poller refreshes the forecast snapshot on an interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"theater-run-service/internal/domain"
	"theater-run-service/internal/logging"
	"theater-run-service/internal/metrics"
	"theater-run-service/internal/predict"
	"theater-run-service/internal/providers"
	"theater-run-service/internal/timeutil"
)

const defaultInterval = 30 * time.Minute

// ForecastWriter receives each refreshed forecast snapshot.
type ForecastWriter interface {
	ReplaceForecasts(forecasts []domain.Forecast)
}

// Poller fetches now-playing movies on an interval, predicts their run
// lengths, and replaces the stored snapshot.
type Poller struct {
	provider providers.NowPlayingProvider
	resolver providers.RunStartResolver
	writer   ForecastWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	region   string
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Config groups the poller's collaborators and tuning.
type Config struct {
	Provider providers.NowPlayingProvider
	Resolver providers.RunStartResolver
	Writer   ForecastWriter
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Interval time.Duration
	Region   string
}

// New constructs a Poller with sane defaults.
func New(cfg Config) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: cfg.Provider,
		resolver: cfg.Resolver,
		writer:   cfg.Writer,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		interval: interval,
		region:   cfg.Region,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	today := timeutil.Midnight(p.now())
	movies, err := p.provider.FetchNowPlaying(ctx, p.region)
	if p.metrics != nil {
		p.metrics.RecordPollerCycle(time.Since(start), err)
	}
	if err != nil {
		p.logError("poller fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	forecasts := p.buildForecasts(ctx, movies, today)
	if p.writer != nil {
		p.writer.ReplaceForecasts(forecasts)
	}
	if p.metrics != nil {
		p.metrics.RecordForecasts(len(forecasts))
	}
	p.recordSuccess(start)
	p.logInfo("poller refreshed forecasts",
		logging.FieldCount, len(forecasts),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

// buildForecasts resolves each movie's run start and runs the predictor.
// Resolution failures degrade to the listing release date rather than
// dropping the movie.
func (p *Poller) buildForecasts(ctx context.Context, movies []domain.Movie, today time.Time) []domain.Forecast {
	generatedAt := p.now().UTC()

	forecasts := make([]domain.Forecast, 0, len(movies))
	for _, movie := range movies {
		if p.resolver != nil {
			date, ok, err := p.resolver.ResolveRunStartDate(ctx, movie.ID, p.region, today)
			switch {
			case err != nil:
				p.logError("run start resolution failed", err, slog.Int(logging.FieldMovieID, movie.ID))
			case ok:
				movie.RunStart = timeutil.FormatDate(date)
			}
		}
		forecasts = append(forecasts, domain.Forecast{
			Movie:       movie,
			Prediction:  predict.Predict(movie, today),
			GeneratedAt: generatedAt,
		})
	}
	return forecasts
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// IsReady implements the HTTP readiness check.
func (p *Poller) IsReady() bool {
	return p.Status().IsReady()
}

// Provider exposes the underlying provider, primarily for cleanup in
// callers.
func (p *Poller) Provider() providers.NowPlayingProvider {
	return p.provider
}
