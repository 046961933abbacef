package domain

import "time"

// Prediction is the predictor's output for one movie. When the release
// date is missing or unparseable, HasEstimate is false, the date and day
// counts are zero, and Confidence is pinned at its floor.
type Prediction struct {
	PredictedEndDate time.Time `json:"-"`
	DaysTotal        int       `json:"days_total"`
	DaysElapsed      int       `json:"days_elapsed"`
	DaysRemaining    int       `json:"days_remaining"`
	Confidence       float64   `json:"confidence"`
	Rationale        string    `json:"rationale"`
	HasEstimate      bool      `json:"has_estimate"`
}

// Ended reports whether the predicted run has already finished as of the
// given date. Presentation layers show "TBD" instead of a past end date.
func (p Prediction) Ended(today time.Time) bool {
	if !p.HasEstimate {
		return false
	}
	return p.PredictedEndDate.Before(today)
}
