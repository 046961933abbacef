// Package predict estimates how many days a theatrical run will last from
// a handful of clamped linear terms over the movie's metadata.
package predict

import (
	"fmt"
	"math"
	"time"

	"theater-run-service/internal/domain"
	"theater-run-service/internal/timeutil"
)

// Heuristic tuning. Changing any of these changes every prediction, so
// treat them as part of the model's contract.
const (
	// Base run length for a US wide release under current shifting windows.
	baseRunDays = 38.0

	popularityCap    = 0.6
	popularityScale  = 30.0 // up to +18 days
	popularityNorm   = 100.0
	voteCountCap     = 0.5
	voteCountScale   = 20.0 // up to +10 days
	voteCountNorm    = 5000.0
	ratingScale      = 8.0 // -8..+8 days
	agePenaltyAfter  = 60
	agePenaltyWindow = 60.0
	agePenaltyScale  = 15.0 // up to -15 days

	minRunDays = 14.0
	maxRunDays = 120.0

	baseConfidence     = 0.4
	voteConfidenceNorm = 2000.0
	voteConfidenceCap  = 0.3
	popConfidenceNorm  = 150.0
	popConfidenceCap   = 0.2
	recencyConfidence  = 0.05
	recencyElapsedDays = 7
	minConfidence      = 0.2
	maxConfidence      = 0.95
)

const missingDateRationale = "missing release date; cannot predict"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clampScale normalizes v, clamps it to [lo, hi], then scales the result.
// Every bonus and penalty term is this same shape.
func clampScale(v, lo, hi, scale float64) float64 {
	return clamp(v, lo, hi) * scale
}

// Predict estimates the theatrical run length for a movie as of today.
// It is pure: identical inputs always produce the identical Prediction,
// and a missing or unparseable release date degrades to a floor-confidence
// result instead of an error.
func Predict(movie domain.Movie, today time.Time) domain.Prediction {
	released, err := timeutil.ParseDate(movie.EffectiveReleaseDate())
	if movie.EffectiveReleaseDate() == "" || err != nil {
		return domain.Prediction{
			Confidence: minConfidence,
			Rationale:  missingDateRationale,
		}
	}

	popBonus := clampScale(movie.Popularity/popularityNorm, 0, popularityCap, popularityScale)
	votesBonus := clampScale(float64(movie.VoteCount)/voteCountNorm, 0, voteCountCap, voteCountScale)
	ratingBonus := clampScale((movie.VoteAverage-5.0)/5.0, -1, 1, ratingScale)

	daysSinceRelease := timeutil.DaysBetween(released, today)
	agePenalty := 0.0
	if daysSinceRelease > agePenaltyAfter {
		agePenalty = clampScale(float64(daysSinceRelease-agePenaltyAfter)/agePenaltyWindow, 0, 1, agePenaltyScale)
	}

	total := baseRunDays + popBonus + votesBonus + ratingBonus - agePenalty
	daysTotal := int(math.Round(clamp(total, minRunDays, maxRunDays)))

	daysElapsed := daysSinceRelease
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	daysRemaining := daysTotal - daysElapsed
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	confidence := baseConfidence
	confidence += clampScale(float64(movie.VoteCount)/voteConfidenceNorm, 0, voteConfidenceCap, 1)
	confidence += clampScale(movie.Popularity/popConfidenceNorm, 0, popConfidenceCap, 1)
	if daysElapsed >= recencyElapsedDays {
		confidence += recencyConfidence
	}
	confidence = clamp(confidence, minConfidence, maxConfidence)

	rationale := fmt.Sprintf(
		"base=%.0f, pop=%.1f, votes=%d, rating=%.1f, age_days=%d, total=%d",
		baseRunDays, movie.Popularity, movie.VoteCount, movie.VoteAverage, daysElapsed, daysTotal,
	)

	return domain.Prediction{
		PredictedEndDate: released.AddDate(0, 0, daysTotal),
		DaysTotal:        daysTotal,
		DaysElapsed:      daysElapsed,
		DaysRemaining:    daysRemaining,
		Confidence:       confidence,
		Rationale:        rationale,
		HasEstimate:      true,
	}
}
