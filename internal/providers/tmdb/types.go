package tmdb

type pagedResponse struct {
	Page         int             `json:"page"`
	Results      []movieResponse `json:"results"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
}

type movieResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteCount   int     `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

type detailsResponse struct {
	movieResponse
	Overview string  `json:"overview"`
	Runtime  int     `json:"runtime"`
	Genres   []genre `json:"genres"`
	Status   string  `json:"status"`
	Tagline  string  `json:"tagline"`
	IMDbID   string  `json:"imdb_id"`
	Homepage string  `json:"homepage"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type releaseDatesResponse struct {
	ID      int              `json:"id"`
	Results []regionReleases `json:"results"`
}

type regionReleases struct {
	Region       string             `json:"iso_3166_1"`
	ReleaseDates []releaseDateEntry `json:"release_dates"`
}

type releaseDateEntry struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
	Type          int    `json:"type"`
	Note          string `json:"note"`
}
