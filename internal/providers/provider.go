package providers

import (
	"context"
	"time"

	"theater-run-service/internal/domain"
)

// NowPlayingProvider defines how upstream now-playing listings are fetched
// and normalized. An empty region means the provider's configured default.
type NowPlayingProvider interface {
	FetchNowPlaying(ctx context.Context, region string) ([]domain.Movie, error)
}

// RunStartResolver resolves the effective theatrical run start for a movie.
// The boolean reports whether any qualifying date exists; absence is not an
// error. Dates strictly after today are never returned.
type RunStartResolver interface {
	ResolveRunStartDate(ctx context.Context, movieID int, region string, today time.Time) (time.Time, bool, error)
}

// MovieProvider combines all provider capabilities.
type MovieProvider interface {
	NowPlayingProvider
	RunStartResolver
}
