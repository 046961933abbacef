package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"theater-run-service/internal/cache"
	"theater-run-service/internal/timeutil"
)

type cachedRunStart struct {
	Date  string `json:"date,omitempty"`
	Found bool   `json:"found"`
}

// cachedResolver memoizes run-start lookups through the file cache so a
// poll cycle does not refetch the release-dates sub-resource for every
// movie it has already seen.
type cachedResolver struct {
	inner  RunStartResolver
	cache  *cache.FileCache
	logger *slog.Logger
}

// NewCachedResolver wraps a RunStartResolver with file-cache memoization.
// Negative results (no qualifying date) are cached too.
func NewCachedResolver(inner RunStartResolver, fc *cache.FileCache, logger *slog.Logger) RunStartResolver {
	if fc == nil {
		return inner
	}
	return &cachedResolver{inner: inner, cache: fc, logger: logger}
}

func (c *cachedResolver) ResolveRunStartDate(ctx context.Context, movieID int, region string, today time.Time) (time.Time, bool, error) {
	key := fmt.Sprintf("run-start-%d-%s", movieID, region)

	var cached cachedRunStart
	if hit, err := c.cache.Get(key, &cached); err == nil && hit {
		if !cached.Found {
			return time.Time{}, false, nil
		}
		if date, parseErr := timeutil.ParseDate(cached.Date); parseErr == nil {
			return date, true, nil
		}
	}

	date, found, err := c.inner.ResolveRunStartDate(ctx, movieID, region, today)
	if err != nil {
		return time.Time{}, false, err
	}

	entry := cachedRunStart{Found: found}
	if found {
		entry.Date = timeutil.FormatDate(date)
	}
	if setErr := c.cache.Set(key, entry); setErr != nil {
		logWithProvider(ctx, c.logger, slog.LevelWarn, "cached-resolver", "cache write failed", "error", setErr)
	}

	return date, found, nil
}
