package season

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// plantingWindowDays is the fixed agronomic planting window length.
const plantingWindowDays = 30

// windowFreshness is how long a computed window is reused before
// recomputation is preferred. It is a soft policy, not a hard TTL.
const windowFreshness = 30 * 24 * time.Hour

// Window is a calculated planting window for a village, optionally specific
// to one crop (nil CropID means a general window).
type Window struct {
	ID           uuid.UUID  `json:"id"`
	VillageID    uuid.UUID  `json:"village_id"`
	CropID       *uuid.UUID `json:"crop_id,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Confidence   float64    `json:"confidence_level"` // [0,1]
	Analysis     Analysis   `json:"analysis"`
	CalculatedAt time.Time  `json:"calculated_at"`
}

// IsFresh reports whether the window is recent enough to reuse.
func (w Window) IsFresh(now time.Time) bool {
	return now.Sub(w.CalculatedAt) < windowFreshness
}

// ComputeWindow converts onset statistics into a calendar window for the
// current year with a confidence derived from onset variability.
func ComputeWindow(analysis Analysis) Window {
	now := time.Now().UTC()
	janFirst := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	start := janFirst.AddDate(0, 0, analysis.OnsetDayOfYear-1)
	end := start.AddDate(0, 0, plantingWindowDays)

	return Window{
		ID:           uuid.New(),
		StartDate:    start,
		EndDate:      end,
		Confidence:   confidenceLevel(analysis),
		Analysis:     analysis,
		CalculatedAt: now,
	}
}

// confidenceLevel maps the coefficient of variation of the onset day to a
// confidence in [0,1]. Lower variability means higher confidence:
// CV below 0.1 lands in (0.9,1.0], CV above 0.3 decays toward 0.
func confidenceLevel(analysis Analysis) float64 {
	if analysis.OnsetDayOfYear == 0 {
		return 0.5
	}

	cv := analysis.OnsetVariabilityDays / float64(analysis.OnsetDayOfYear)

	var confidence float64
	switch {
	case cv < 0.1:
		confidence = 0.9 + (0.1 - cv)
	case cv > 0.3:
		confidence = math.Max(0.0, 0.5-(cv-0.3)*2)
	default:
		confidence = 0.5 + (0.1-cv)*2
	}

	return math.Max(0.0, math.Min(1.0, confidence))
}
