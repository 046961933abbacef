package tmdb

import "time"

const providerName = "tmdb"

const (
	defaultBaseURL     = "https://api.themoviedb.org/3"
	defaultLanguage    = "en-US"
	defaultRegion      = "US"
	defaultMaxPages    = 5
	defaultHTTPTimeout = 20 * time.Second

	// Bounded retry budget for 429 responses, on top of the first attempt.
	rateLimitRetries  = 2
	defaultRetryAfter = time.Second

	posterBaseURL = "https://image.tmdb.org/t/p/"
)

// Upstream release type codes. Only theatrical entries determine the run
// start; premieres, digital and physical releases do not.
const (
	releaseTypeTheatricalLimited = 2
	releaseTypeTheatrical        = 3
)
