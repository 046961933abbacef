package config

// CacheConfig controls the on-disk metadata cache.
type CacheConfig struct {
	Dir      string
	TTLHours int
}

func loadCache() CacheConfig {
	return CacheConfig{
		Dir:      envOrDefault(envCacheDir, defaultCacheDir),
		TTLHours: intEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}
