package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"theater-run-service/internal/timeutil"
)

// Timestamp forms seen in the release-dates payload. Entries that match
// neither get one last chance as a bare leading date.
var releaseTimestampLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
}

// ResolveRunStartDate determines when a movie's current theatrical run
// began. Upstream release_date goes stale for re-releases, so the
// release-dates sub-resource is the authority: among theatrical and
// theatrical-limited entries, pick the most recent date that is not in the
// future, preferring the requested region and falling back to any region.
// The boolean is false when no qualifying date exists anywhere.
func (c *Client) ResolveRunStartDate(ctx context.Context, movieID int, region string, today time.Time) (time.Time, bool, error) {
	if region == "" {
		region = c.region
	}

	var resp releaseDatesResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/release_dates", movieID), url.Values{}, &resp); err != nil {
		return time.Time{}, false, err
	}

	cutoff := timeutil.Midnight(today)

	if best, ok := latestTheatricalDate(resp.Results, region, cutoff); ok {
		return best, true, nil
	}
	// No theatrical date in the requested region; widen to all regions.
	if best, ok := latestTheatricalDate(resp.Results, "", cutoff); ok {
		return best, true, nil
	}
	return time.Time{}, false, nil
}

// latestTheatricalDate scans the per-region release lists for the most
// recent theatrical date not after the cutoff. An empty region matches all
// regions. Malformed timestamps are skipped, not fatal.
func latestTheatricalDate(results []regionReleases, region string, cutoff time.Time) (time.Time, bool) {
	var best time.Time
	found := false

	for _, rr := range results {
		if region != "" && rr.Region != region {
			continue
		}
		for _, entry := range rr.ReleaseDates {
			if entry.Type != releaseTypeTheatrical && entry.Type != releaseTypeTheatricalLimited {
				continue
			}
			date, ok := parseReleaseTimestamp(entry.ReleaseDate)
			if !ok {
				continue
			}
			if date.After(cutoff) {
				continue
			}
			if !found || date.After(best) {
				best = date
				found = true
			}
		}
	}

	return best, found
}

func parseReleaseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range releaseTimestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return timeutil.Midnight(t), true
		}
	}
	if len(raw) >= len(timeutil.DateLayout) {
		if t, err := timeutil.ParseDate(raw[:len(timeutil.DateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
