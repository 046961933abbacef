// Package fixture provides a static movie provider useful for local
// development and bootstrapping without a TMDB API key.
package fixture

import (
	"context"
	"time"

	"theater-run-service/internal/domain"
	"theater-run-service/internal/timeutil"
)

// Provider returns a deterministic set of movies.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchNowPlaying returns an example now-playing listing. Release dates
// are anchored to the current date so predictions stay meaningful.
func (p *Provider) FetchNowPlaying(ctx context.Context, region string) ([]domain.Movie, error) {
	_ = ctx
	_ = region

	today := timeutil.Midnight(p.now())

	movies := []domain.Movie{
		{
			ID:          9001,
			Title:       "Midnight Premiere",
			ReleaseDate: timeutil.FormatDate(today.AddDate(0, 0, -3)),
			Popularity:  145.2,
			VoteCount:   820,
			VoteAverage: 7.8,
			PosterPath:  "/fixture-premiere.jpg",
		},
		{
			ID:          9002,
			Title:       "Long Haul",
			ReleaseDate: timeutil.FormatDate(today.AddDate(0, 0, -45)),
			Popularity:  60.4,
			VoteCount:   4100,
			VoteAverage: 6.9,
			PosterPath:  "/fixture-longhaul.jpg",
		},
		{
			ID:          9003,
			Title:       "Quiet Arthouse",
			ReleaseDate: timeutil.FormatDate(today.AddDate(0, 0, -12)),
			Popularity:  12.7,
			VoteCount:   230,
			VoteAverage: 8.2,
			PosterPath:  "",
		},
	}

	return movies, nil
}

// ResolveRunStartDate reports the listed release date as the run start.
// Fixture movies never have re-releases, so the listing date is always
// authoritative.
func (p *Provider) ResolveRunStartDate(ctx context.Context, movieID int, region string, today time.Time) (time.Time, bool, error) {
	_ = region

	movies, err := p.FetchNowPlaying(ctx, "")
	if err != nil {
		return time.Time{}, false, err
	}
	for _, m := range movies {
		if m.ID != movieID {
			continue
		}
		date, err := timeutil.ParseDate(m.ReleaseDate)
		if err != nil {
			return time.Time{}, false, nil
		}
		if date.After(timeutil.Midnight(today)) {
			return time.Time{}, false, nil
		}
		return date, true, nil
	}
	return time.Time{}, false, nil
}
