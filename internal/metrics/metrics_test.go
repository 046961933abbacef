package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderCountsAttemptsAndErrors(t *testing.T) {
	r := NewRecorder()

	r.RecordProviderAttempt("tmdb", 120*time.Millisecond, nil)
	r.RecordProviderAttempt("tmdb", 80*time.Millisecond, errors.New("boom"))

	if got := r.ProviderCalls("tmdb"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := r.ProviderErrors("tmdb"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := r.Snapshot("tmdb").LastCallLatency; got != 80*time.Millisecond {
		t.Fatalf("expected last latency 80ms, got %s", got)
	}
}

func TestRecorderRateLimits(t *testing.T) {
	r := NewRecorder()

	r.RecordRateLimit("tmdb", 2*time.Second)
	r.RecordRateLimit("tmdb", 0)

	if got := r.RateLimitHits("tmdb"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := r.Snapshot("tmdb").LastRetryAfter; got != 2*time.Second {
		t.Fatalf("expected retry-after preserved, got %s", got)
	}
}

func TestRecorderForecasts(t *testing.T) {
	r := NewRecorder()

	r.RecordForecasts(20)
	r.RecordForecasts(15)

	if got := r.ForecastsComputed(); got != 35 {
		t.Fatalf("expected 35 forecasts, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder

	r.RecordProviderAttempt("tmdb", time.Second, nil)
	r.RecordRateLimit("tmdb", time.Second)
	r.RecordForecasts(1)
	r.RecordHTTPRequest("GET", "/movies", 200, time.Millisecond)
	r.RecordPollerCycle(time.Second, nil)

	if got := r.ProviderCalls("tmdb"); got != 0 {
		t.Fatalf("expected zero calls on nil recorder, got %d", got)
	}
}

func TestSetupDisabledReturnsRecorder(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec == nil {
		t.Fatal("expected recorder")
	}
	if handler != nil {
		t.Fatal("expected no handler when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected shutdown noop, got %v", err)
	}
}
