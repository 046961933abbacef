// Package tmdb implements a thin client for the TMDB v3 API: paginated
// now-playing listings, detail and search passthroughs, and resolution of
// a movie's effective theatrical run start from its release dates.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"theater-run-service/internal/domain"
	"theater-run-service/internal/providers"
)

// Config controls how the TMDB client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	Language   string
	Region     string
	HTTPClient *http.Client
	MaxPages   int
}

// Client fetches movies from the TMDB API and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	region     string
	httpClient httpDoer
	maxPages   int
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient constructs a TMDB client. The API key is required: requests
// cannot be authenticated without one, so a missing key fails here rather
// than on first use.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("tmdb: api key is required")
	}
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		language:   language,
		region:     region,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		maxPages:   resolveMaxPages(cfg.MaxPages),
		sleep:      sleepContext,
	}, nil
}

// FetchNowPlaying implements providers.NowPlayingProvider using the
// configured page limit.
func (c *Client) FetchNowPlaying(ctx context.Context, region string) ([]domain.Movie, error) {
	return c.ListNowPlaying(ctx, region, c.maxPages)
}

// ListNowPlaying fetches the now-playing listing page by page, in upstream
// order, stopping at the smaller of maxPages and the reported total. Pages
// are fetched sequentially; duplicates across pages are not removed.
func (c *Client) ListNowPlaying(ctx context.Context, region string, maxPages int) ([]domain.Movie, error) {
	if region == "" {
		region = c.region
	}
	if maxPages <= 0 {
		maxPages = c.maxPages
	}

	first, err := c.nowPlayingPage(ctx, region, 1)
	if err != nil {
		return nil, err
	}

	totalPages := first.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	if totalPages > maxPages {
		totalPages = maxPages
	}

	movies := make([]domain.Movie, 0, len(first.Results)*totalPages)
	for _, m := range first.Results {
		movies = append(movies, mapMovie(m))
	}

	for page := 2; page <= totalPages; page++ {
		resp, err := c.nowPlayingPage(ctx, region, page)
		if err != nil {
			return nil, err
		}
		for _, m := range resp.Results {
			movies = append(movies, mapMovie(m))
		}
	}

	return movies, nil
}

func (c *Client) nowPlayingPage(ctx context.Context, region string, page int) (pagedResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("region", region)

	var resp pagedResponse
	if err := c.get(ctx, "/movie/now_playing", params, &resp); err != nil {
		return pagedResponse{}, err
	}
	return resp, nil
}

// MovieDetails fetches a single movie. appendToResponse is forwarded
// verbatim as TMDB's append_to_response parameter when non-empty.
func (c *Client) MovieDetails(ctx context.Context, movieID int, appendToResponse string) (domain.MovieDetails, error) {
	params := url.Values{}
	if appendToResponse != "" {
		params.Set("append_to_response", appendToResponse)
	}

	var resp detailsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, &resp); err != nil {
		return domain.MovieDetails{}, err
	}
	return mapDetails(resp), nil
}

// SearchOptions narrows a movie search.
type SearchOptions struct {
	Year         int
	Page         int
	IncludeAdult bool
}

// SearchMovies runs a single search request with the options forwarded.
func (c *Client) SearchMovies(ctx context.Context, query string, opts SearchOptions) ([]domain.Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", strconv.FormatBool(opts.IncludeAdult))
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	} else {
		params.Set("page", "1")
	}
	if opts.Year > 0 {
		params.Set("year", strconv.Itoa(opts.Year))
	}

	var resp pagedResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}

	movies := make([]domain.Movie, 0, len(resp.Results))
	for _, m := range resp.Results {
		movies = append(movies, mapMovie(m))
	}
	return movies, nil
}

// get issues an authenticated GET and decodes the JSON response. Rate
// limit responses are retried after the server-indicated wait, up to
// rateLimitRetries extra attempts; any other non-200 fails immediately.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	for attempt := 0; ; attempt++ {
		req, err := c.buildRequest(ctx, path, params)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parseRetryAfter(resp.Header)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if attempt >= rateLimitRetries {
				return &providers.RateLimitError{
					Provider:   providerName,
					StatusCode: resp.StatusCode,
					RetryAfter: retryAfter,
				}
			}
			if err := c.sleep(ctx, retryAfter); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("tmdb: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		return err
	}
}

func (c *Client) buildRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	for key, values := range params {
		for _, v := range values {
			q.Set(key, v)
		}
	}
	req.URL.RawQuery = q.Encode()

	return req, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// PosterURL builds the image CDN URL for a poster path and size bucket
// (for example "w185" or "w342"). Empty paths yield an empty URL.
func PosterURL(posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	return posterBaseURL + size + posterPath
}
