package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the service.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	TMDB         TMDBConfig
	Cache        CacheConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		TMDB:         loadTMDB(),
		Cache:        loadCache(),
		Metrics:      loadMetrics(),
	}
}
