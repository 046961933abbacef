package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"theater-run-service/internal/domain"
)

type stubProvider struct {
	movies []domain.Movie
	err    error

	calls  atomic.Int64
	notify chan struct{}
}

func (s *stubProvider) FetchNowPlaying(ctx context.Context, region string) ([]domain.Movie, error) {
	_ = ctx
	_ = region
	s.calls.Add(1)
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	return s.movies, s.err
}

type stubResolver struct {
	date time.Time
	ok   bool
	err  error

	calls atomic.Int64
}

func (s *stubResolver) ResolveRunStartDate(ctx context.Context, movieID int, region string, today time.Time) (time.Time, bool, error) {
	s.calls.Add(1)
	return s.date, s.ok, s.err
}

type stubWriter struct {
	mu       sync.Mutex
	replaced [][]domain.Forecast
}

func (s *stubWriter) ReplaceForecasts(forecasts []domain.Forecast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = append(s.replaced, forecasts)
}

func (s *stubWriter) last() ([]domain.Forecast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replaced) == 0 {
		return nil, false
	}
	return s.replaced[len(s.replaced)-1], true
}

func (s *stubWriter) waitForReplace(t *testing.T) []domain.Forecast {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if forecasts, ok := s.last(); ok {
			return forecasts
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for snapshot replace")
	return nil
}

func TestPollerRefreshesForecasts(t *testing.T) {
	provider := &stubProvider{
		movies: []domain.Movie{
			{ID: 1, Title: "Fresh", ReleaseDate: "2024-02-23", Popularity: 80, VoteCount: 2500, VoteAverage: 7.2},
		},
		notify: make(chan struct{}, 1),
	}
	resolver := &stubResolver{
		date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		ok:   true,
	}
	writer := &stubWriter{}

	p := New(Config{
		Provider: provider,
		Resolver: resolver,
		Writer:   writer,
		Interval: 10 * time.Millisecond,
		Region:   "US",
	})
	p.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	forecasts := writer.waitForReplace(t)

	cancel()
	_ = p.Stop(context.Background())

	if len(forecasts) != 1 {
		t.Fatalf("expected 1 forecast, got %d", len(forecasts))
	}

	f := forecasts[0]
	if f.Movie.RunStart != "2024-02-20" {
		t.Fatalf("expected resolved run start applied, got %q", f.Movie.RunStart)
	}
	if !f.Prediction.HasEstimate {
		t.Fatalf("expected an estimate, got %+v", f.Prediction)
	}
	// Elapsed counts from the resolved run start, not the listing date.
	if f.Prediction.DaysElapsed != 10 {
		t.Fatalf("expected 10 elapsed days, got %d", f.Prediction.DaysElapsed)
	}

	waitForStatus(t, p, func(s Status) bool { return s.IsReady() })
}

func waitForStatus(t *testing.T, p *Poller, cond func(Status) bool) Status {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if s := p.Status(); cond(s) {
			return s
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for poller status, last %+v", p.Status())
	return Status{}
}

func TestPollerResolverErrorDegradesToListingDate(t *testing.T) {
	provider := &stubProvider{
		movies: []domain.Movie{{ID: 2, Title: "Sturdy", ReleaseDate: "2024-02-25"}},
		notify: make(chan struct{}, 1),
	}
	resolver := &stubResolver{err: errors.New("upstream down")}
	writer := &stubWriter{}

	p := New(Config{
		Provider: provider,
		Resolver: resolver,
		Writer:   writer,
		Interval: time.Hour,
	})
	p.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	forecasts := writer.waitForReplace(t)
	_ = p.Stop(context.Background())

	if len(forecasts) != 1 {
		t.Fatalf("expected one forecast despite resolver failure, got %+v", forecasts)
	}
	f := forecasts[0]
	if f.Movie.RunStart != "" {
		t.Fatalf("expected no run start on resolver error, got %q", f.Movie.RunStart)
	}
	if !f.Prediction.HasEstimate || f.Prediction.DaysElapsed != 5 {
		t.Fatalf("expected prediction from listing date, got %+v", f.Prediction)
	}
}

func TestPollerFetchFailureMarksNotReady(t *testing.T) {
	provider := &stubProvider{
		err:    errors.New("boom"),
		notify: make(chan struct{}, 1),
	}
	writer := &stubWriter{}

	p := New(Config{Provider: provider, Writer: writer, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	status := waitForStatus(t, p, func(s Status) bool { return s.ConsecutiveFailures >= 1 })
	_ = p.Stop(context.Background())

	if _, ok := writer.last(); ok {
		t.Fatal("expected no snapshot replace on fetch failure")
	}
	if status.IsReady() {
		t.Fatal("expected not ready after failure with no prior success")
	}
	if status.LastError == "" {
		t.Fatalf("expected failure recorded, got %+v", status)
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(Config{Provider: &stubProvider{}, Interval: time.Hour})

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	provider := &stubProvider{notify: make(chan struct{}, 1)}
	p := New(Config{Provider: provider, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx)

	select {
	case <-provider.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}
	_ = p.Stop(context.Background())

	if got := provider.calls.Load(); got != 1 {
		t.Fatalf("expected a single warm fetch, got %d", got)
	}
}

func TestStatusIsReadyThresholds(t *testing.T) {
	if (Status{}).IsReady() {
		t.Fatal("expected zero status to be not ready")
	}
	ready := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !ready.IsReady() {
		t.Fatal("expected ready under the failure threshold")
	}
	failing := Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}
	if failing.IsReady() {
		t.Fatal("expected not ready at the failure threshold")
	}
}
