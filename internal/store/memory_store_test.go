package store

import (
	"testing"

	"theater-run-service/internal/domain"
)

func forecastFor(id int, title string) domain.Forecast {
	return domain.Forecast{
		Movie:      domain.Movie{ID: id, Title: title},
		Prediction: domain.Prediction{HasEstimate: true, DaysTotal: 40},
	}
}

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore()

	s.SetForecasts([]domain.Forecast{
		forecastFor(1, "First"),
		forecastFor(2, "Second"),
	})

	if got := len(s.ListForecasts()); got != 2 {
		t.Fatalf("expected 2 forecasts, got %d", got)
	}

	f, ok := s.GetForecast(1)
	if !ok {
		t.Fatalf("expected to find forecast for movie 1")
	}
	if f.Movie.Title != "First" {
		t.Fatalf("unexpected title %s", f.Movie.Title)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.GetForecast(404); ok {
		t.Fatalf("expected missing id to return false")
	}
}

func TestMemoryStoreSetReplacesSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.SetForecasts([]domain.Forecast{forecastFor(1, "Old")})

	s.SetForecasts([]domain.Forecast{forecastFor(2, "New")})

	if _, ok := s.GetForecast(1); ok {
		t.Fatalf("expected old forecast to be removed after replace")
	}
	if _, ok := s.GetForecast(2); !ok {
		t.Fatalf("expected new forecast to be present")
	}
}

func TestMemoryStoreListPreservesOrder(t *testing.T) {
	s := NewMemoryStore()
	s.SetForecasts([]domain.Forecast{
		forecastFor(3, "Third"),
		forecastFor(1, "First"),
		forecastFor(2, "Second"),
	})

	list := s.ListForecasts()
	if len(list) != 3 {
		t.Fatalf("expected 3 forecasts, got %d", len(list))
	}
	if list[0].Movie.ID != 3 || list[1].Movie.ID != 1 || list[2].Movie.ID != 2 {
		t.Fatalf("expected insertion order preserved, got %+v", list)
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.SetForecasts([]domain.Forecast{forecastFor(1, "Original")})

	list := s.ListForecasts()
	list[0].Movie.Title = "Mutated"

	f, ok := s.GetForecast(1)
	if !ok {
		t.Fatalf("expected to find forecast")
	}
	if f.Movie.Title != "Original" {
		t.Fatalf("expected stored copy untouched, got %s", f.Movie.Title)
	}
}
