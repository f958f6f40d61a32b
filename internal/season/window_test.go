package season

import (
	"testing"
	"time"
)

func TestComputeWindowDates(t *testing.T) {
	window := ComputeWindow(Analysis{
		OnsetDayOfYear:       300,
		OnsetVariabilityDays: 5.0,
		YearsAnalyzed:        10,
	})

	if !window.StartDate.Before(window.EndDate) {
		t.Errorf("start %v not before end %v", window.StartDate, window.EndDate)
	}
	if got := window.EndDate.Sub(window.StartDate); got != 30*24*time.Hour {
		t.Errorf("window length = %v, want 30 days", got)
	}

	janFirst := time.Date(time.Now().UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	wantStart := janFirst.AddDate(0, 0, 299)
	if !window.StartDate.Equal(wantStart) {
		t.Errorf("start date = %v, want %v", window.StartDate, wantStart)
	}
}

func TestConfidenceLevelRegimes(t *testing.T) {
	tests := []struct {
		name     string
		analysis Analysis
		check    func(float64) bool
	}{
		{
			"low variability yields high confidence",
			Analysis{OnsetDayOfYear: 300, OnsetVariabilityDays: 5.0},
			func(c float64) bool { return c > 0.7 },
		},
		{
			"high variability yields low confidence",
			Analysis{OnsetDayOfYear: 300, OnsetVariabilityDays: 100.0},
			func(c float64) bool { return c < 0.5 },
		},
		{
			"zero variability yields full confidence",
			Analysis{OnsetDayOfYear: 200, OnsetVariabilityDays: 0},
			func(c float64) bool { return c == 1.0 },
		},
		{
			"extreme variability floors at zero",
			Analysis{OnsetDayOfYear: 100, OnsetVariabilityDays: 500},
			func(c float64) bool { return c == 0.0 },
		},
		{
			"zero onset gets moderate default",
			Analysis{OnsetDayOfYear: 0, OnsetVariabilityDays: 10},
			func(c float64) bool { return c == 0.5 },
		},
	}

	for _, tt := range tests {
		c := confidenceLevel(tt.analysis)
		if c < 0 || c > 1 {
			t.Errorf("%s: confidence %v outside [0,1]", tt.name, c)
		}
		if !tt.check(c) {
			t.Errorf("%s: confidence %v fails expectation", tt.name, c)
		}
	}
}

func TestConfidenceAlwaysInBounds(t *testing.T) {
	for onset := 1; onset <= 365; onset += 7 {
		for _, variability := range []float64{0, 1, 10, 50, 200, 1000} {
			c := confidenceLevel(Analysis{OnsetDayOfYear: onset, OnsetVariabilityDays: variability})
			if c < 0 || c > 1 {
				t.Fatalf("confidence(onset=%d, var=%v) = %v outside [0,1]", onset, variability, c)
			}
		}
	}
}

func TestWindowFreshness(t *testing.T) {
	window := ComputeWindow(Analysis{OnsetDayOfYear: 300, OnsetVariabilityDays: 5})

	if !window.IsFresh(time.Now().UTC()) {
		t.Error("freshly computed window reported stale")
	}
	if window.IsFresh(time.Now().UTC().Add(31 * 24 * time.Hour)) {
		t.Error("31-day-old window reported fresh")
	}
}
