package tmdb

import "theater-run-service/internal/domain"

func mapMovie(m movieResponse) domain.Movie {
	return domain.Movie{
		ID:          m.ID,
		Title:       resolveTitle(m),
		ReleaseDate: m.ReleaseDate,
		Popularity:  m.Popularity,
		VoteCount:   m.VoteCount,
		VoteAverage: m.VoteAverage,
		PosterPath:  m.PosterPath,
	}
}

func mapDetails(d detailsResponse) domain.MovieDetails {
	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}
	return domain.MovieDetails{
		Movie:    mapMovie(d.movieResponse),
		Overview: d.Overview,
		Runtime:  d.Runtime,
		Genres:   genres,
		Status:   d.Status,
		Tagline:  d.Tagline,
		IMDbID:   d.IMDbID,
		Homepage: d.Homepage,
	}
}

// resolveTitle prefers the movie title but falls back to the TV-style name
// field some upstream records carry instead.
func resolveTitle(m movieResponse) string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return "(untitled)"
}
