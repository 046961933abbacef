package config

const (
	envTMDBAPIKey   = "TMDB_API_KEY"
	envTMDBBaseURL  = "TMDB_BASE_URL"
	envTMDBLanguage = "TMDB_LANGUAGE"
	envTMDBRegion   = "TMDB_REGION"
	envTMDBMaxPages = "TMDB_MAX_PAGES"

	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultTMDBLanguage = "en-US"
	defaultTMDBRegion   = "US"
	defaultTMDBMaxPages = 5
)

// TMDBConfig controls how we talk to the TMDB API.
type TMDBConfig struct {
	APIKey   string
	BaseURL  string
	Language string
	Region   string
	MaxPages int
}

func loadTMDB() TMDBConfig {
	return TMDBConfig{
		APIKey:   envOrDefault(envTMDBAPIKey, ""),
		BaseURL:  envOrDefault(envTMDBBaseURL, defaultTMDBBaseURL),
		Language: envOrDefault(envTMDBLanguage, defaultTMDBLanguage),
		Region:   envOrDefault(envTMDBRegion, defaultTMDBRegion),
		MaxPages: intEnvOrDefault(envTMDBMaxPages, defaultTMDBMaxPages),
	}
}
