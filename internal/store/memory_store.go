// Package store keeps the latest forecast snapshot in memory.
package store

import (
	"sync"

	"theater-run-service/internal/domain"
)

// MemoryStore keeps a thread-safe snapshot of forecasts in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	forecasts map[int]domain.Forecast
	order     []int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		forecasts: make(map[int]domain.Forecast),
	}
}

// ListForecasts returns a copy of the current forecasts in insertion order.
func (s *MemoryStore) ListForecasts() []domain.Forecast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Forecast, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.forecasts[id])
	}
	return result
}

// GetForecast retrieves a forecast by movie ID.
func (s *MemoryStore) GetForecast(movieID int) (domain.Forecast, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.forecasts[movieID]
	return f, ok
}

// SetForecasts replaces the existing snapshot. The slice order is
// preserved for listing; later duplicates of the same movie win.
func (s *MemoryStore) SetForecasts(forecasts []domain.Forecast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forecasts = make(map[int]domain.Forecast, len(forecasts))
	s.order = s.order[:0]
	for _, f := range forecasts {
		if _, seen := s.forecasts[f.Movie.ID]; !seen {
			s.order = append(s.order, f.Movie.ID)
		}
		s.forecasts[f.Movie.ID] = f
	}
}

// Len reports the number of stored forecasts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forecasts)
}
