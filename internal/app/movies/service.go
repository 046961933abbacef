// Package movies coordinates forecast reads between the HTTP layer and
// the store.
package movies

import (
	"sort"
	"strings"

	"theater-run-service/internal/domain"
)

// Store defines the contract for persisting and retrieving forecasts.
type Store interface {
	ListForecasts() []domain.Forecast
	GetForecast(movieID int) (domain.Forecast, bool)
	SetForecasts(forecasts []domain.Forecast)
}

// Service coordinates forecast operations using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// NowPlaying returns the current forecasts sorted by popularity,
// most popular first. Ties keep store order.
func (s *Service) NowPlaying() []domain.Forecast {
	forecasts := s.store.ListForecasts()
	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].Movie.Popularity > forecasts[j].Movie.Popularity
	})
	return forecasts
}

// FilterByTitle returns forecasts whose title contains the query,
// case-insensitively. An empty query matches everything.
func (s *Service) FilterByTitle(query string) []domain.Forecast {
	all := s.NowPlaying()
	if query == "" {
		return all
	}

	needle := strings.ToLower(query)
	matched := make([]domain.Forecast, 0, len(all))
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Movie.Title), needle) {
			matched = append(matched, f)
		}
	}
	return matched
}

// ForecastByID returns a single forecast if present.
func (s *Service) ForecastByID(movieID int) (domain.Forecast, bool) {
	return s.store.GetForecast(movieID)
}

// ReplaceForecasts swaps the in-memory forecasts with a new snapshot.
func (s *Service) ReplaceForecasts(forecasts []domain.Forecast) {
	s.store.SetForecasts(forecasts)
}
