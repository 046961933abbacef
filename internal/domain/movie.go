package domain

import "time"

// Movie is a normalized upstream movie record. Numeric fields default to
// zero when the upstream omits them; ReleaseDate is empty when unknown.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date,omitempty"`
	RunStart    string  `json:"run_start,omitempty"`
	Popularity  float64 `json:"popularity"`
	VoteCount   int     `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path,omitempty"`
}

// EffectiveReleaseDate returns the resolved theatrical run start when one
// was found, falling back to the upstream release date. Re-releases make
// the upstream release date years stale, so RunStart wins.
func (m Movie) EffectiveReleaseDate() string {
	if m.RunStart != "" {
		return m.RunStart
	}
	return m.ReleaseDate
}

// MovieDetails extends Movie with the fields only present on the
// single-movie details endpoint.
type MovieDetails struct {
	Movie
	Overview string   `json:"overview,omitempty"`
	Runtime  int      `json:"runtime,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Status   string   `json:"status,omitempty"`
	Tagline  string   `json:"tagline,omitempty"`
	IMDbID   string   `json:"imdb_id,omitempty"`
	Homepage string   `json:"homepage,omitempty"`
}

// Forecast pairs a movie with its run-length prediction. It is the unit
// stored in memory and served over HTTP.
type Forecast struct {
	Movie       Movie      `json:"movie"`
	Prediction  Prediction `json:"prediction"`
	GeneratedAt time.Time  `json:"generated_at"`
}
