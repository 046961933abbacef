package providers

import (
	"context"
	"testing"
	"time"

	"theater-run-service/internal/domain"
)

func TestRateLimitedProviderDelegates(t *testing.T) {
	inner := &scriptedProvider{movies: []domain.Movie{{ID: 1}}}
	p := NewRateLimitedProvider(inner, 5*time.Millisecond, nil)
	defer p.(*rateLimitedProvider).Close()

	movies, err := p.FetchNowPlaying(context.Background(), "US")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
}

func TestRateLimitedProviderHonorsContext(t *testing.T) {
	inner := &scriptedProvider{movies: []domain.Movie{{ID: 1}}}
	p := NewRateLimitedProvider(inner, time.Hour, nil)
	defer p.(*rateLimitedProvider).Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.FetchNowPlaying(ctx, "US"); err == nil {
		t.Fatal("expected context error while waiting on interval")
	}
	if inner.calls != 0 {
		t.Fatalf("expected no delegate call, got %d", inner.calls)
	}
}

func TestRateLimitedProviderNilNext(t *testing.T) {
	p := &rateLimitedProvider{}
	if _, err := p.FetchNowPlaying(context.Background(), "US"); err != ErrProviderUnavailable {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
