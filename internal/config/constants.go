package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envCacheDir     = "CACHE_DIR"
	envCacheTTL     = "CACHE_TTL_HOURS"

	defaultPort = "4000"
	// Theatrical listings change slowly; a long poll interval also keeps
	// the per-movie release-date lookups well inside TMDB quotas.
	defaultPollInterval = 30 * Duration(time.Minute)
	defaultProvider     = "tmdb"
	defaultMetricsPort  = "9090"
	defaultCacheDir     = "data/cache"
	defaultCacheTTL     = 24
)
