// Command nowplaying prints the current now-playing forecast table once
// and exits. It is the CLI counterpart of the long-running server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"theater-run-service/internal/cache"
	"theater-run-service/internal/config"
	"theater-run-service/internal/domain"
	"theater-run-service/internal/logging"
	"theater-run-service/internal/predict"
	"theater-run-service/internal/providers"
	"theater-run-service/internal/providers/tmdb"
	"theater-run-service/internal/timeutil"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("nowplaying", flag.ContinueOnError)
	apiKey := fs.String("api-key", "", "TMDB API key (defaults to TMDB_API_KEY)")
	region := fs.String("region", "", "release region (defaults to TMDB_REGION)")
	pages := fs.Int("pages", 0, "maximum listing pages to fetch")
	noCache := fs.Bool("no-cache", false, "skip the on-disk release-date cache")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	if *apiKey != "" {
		cfg.TMDB.APIKey = *apiKey
	}
	if *region != "" {
		cfg.TMDB.Region = *region
	}
	if *pages > 0 {
		cfg.TMDB.MaxPages = *pages
	}

	if cfg.TMDB.APIKey == "" {
		fmt.Fprintln(os.Stderr, "nowplaying: TMDB API key required (flag -api-key or TMDB_API_KEY)")
		return 2
	}

	logger := logging.NewLogger(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	client, err := tmdb.NewClient(tmdb.Config{
		BaseURL:  cfg.TMDB.BaseURL,
		APIKey:   cfg.TMDB.APIKey,
		Language: cfg.TMDB.Language,
		Region:   cfg.TMDB.Region,
		MaxPages: cfg.TMDB.MaxPages,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "nowplaying: %v\n", err)
		return 2
	}

	var resolver providers.RunStartResolver = client
	if !*noCache {
		fc := cache.New(cfg.Cache.Dir, cfg.Cache.TTLHours)
		resolver = providers.NewCachedResolver(client, fc, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	forecasts, err := buildForecasts(ctx, client, resolver, cfg.TMDB.Region, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "nowplaying: %v\n", err)
		return 1
	}

	printTable(os.Stdout, forecasts, timeutil.Midnight(time.Now()))
	return 0
}

func buildForecasts(ctx context.Context, provider providers.NowPlayingProvider, resolver providers.RunStartResolver, region string, now time.Time) ([]domain.Forecast, error) {
	movies, err := provider.FetchNowPlaying(ctx, region)
	if err != nil {
		return nil, err
	}

	today := timeutil.Midnight(now)
	forecasts := make([]domain.Forecast, 0, len(movies))
	for _, movie := range movies {
		if resolver != nil {
			if date, ok, resolveErr := resolver.ResolveRunStartDate(ctx, movie.ID, region, today); resolveErr == nil && ok {
				movie.RunStart = timeutil.FormatDate(date)
			}
		}
		forecasts = append(forecasts, domain.Forecast{
			Movie:       movie,
			Prediction:  predict.Predict(movie, today),
			GeneratedAt: now.UTC(),
		})
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].Movie.Popularity > forecasts[j].Movie.Popularity
	})
	return forecasts, nil
}

func printTable(out io.Writer, forecasts []domain.Forecast, today time.Time) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tRELEASE\tPOPULARITY\tRATING\tPREDICTED END\tDAYS LEFT\tCONFIDENCE")

	for _, f := range forecasts {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%s\t%s\t%.0f%%\n",
			f.Movie.Title,
			orPlaceholder(f.Movie.EffectiveReleaseDate()),
			f.Movie.Popularity,
			f.Movie.VoteAverage,
			endDateColumn(f.Prediction, today),
			daysLeftColumn(f.Prediction, today),
			f.Prediction.Confidence*100,
		)
	}

	w.Flush()
}

func orPlaceholder(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// endDateColumn shows TBD once the predicted end has passed: the movie is
// still listed as now playing, so the estimate is clearly stale.
func endDateColumn(p domain.Prediction, today time.Time) string {
	if !p.HasEstimate {
		return "?"
	}
	if p.Ended(today) {
		return "TBD"
	}
	return timeutil.FormatDate(p.PredictedEndDate)
}

func daysLeftColumn(p domain.Prediction, today time.Time) string {
	if !p.HasEstimate || p.Ended(today) {
		return "?"
	}
	return fmt.Sprintf("%d", p.DaysRemaining)
}
