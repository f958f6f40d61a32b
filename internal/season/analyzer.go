package season

import (
	"errors"
	"log"
	"math"
	"sort"
	"time"
)

// MissingValue is the sentinel NASA POWER uses for days without a reading.
// Sentinel days are excluded from analysis, never treated as zero rainfall.
const MissingValue = -999.0

// onsetThresholdFraction is the share of a year's total rainfall that marks
// the rainy-season onset.
const onsetThresholdFraction = 0.2

// defaultOnsetDOY is used when a year never reaches the onset threshold,
// e.g. a degenerate all-zero series.
const defaultOnsetDOY = 180

// minYearsForFullConfidence is how many years of data the analysis expects;
// fewer is accepted but logged as degraded input.
const minYearsForFullConfidence = 10

// ErrNoPrecipitationData is returned when the input series holds no usable
// precipitation readings.
var ErrNoPrecipitationData = errors.New("no precipitation data available for analysis")

// Analysis summarizes rainy-season onset across analyzed years.
type Analysis struct {
	OnsetDayOfYear       int     `json:"rainy_season_start_doy"`
	OnsetVariabilityDays float64 `json:"onset_variability"`
	YearsAnalyzed        int     `json:"years_analyzed"`
	OnsetDaysByYear      []int   `json:"onset_days_by_year"`
}

// AnalyzeRainfall derives rainy-season onset statistics from a multi-year
// daily precipitation series keyed by YYYYMMDD date strings.
func AnalyzeRainfall(precipitation map[string]float64) (Analysis, error) {
	if len(precipitation) == 0 {
		return Analysis{}, ErrNoPrecipitationData
	}

	// Group readings by year and day-of-year, discarding the sentinel.
	yearly := make(map[int][]float64)
	for dateStr, rainfall := range precipitation {
		if rainfall == MissingValue {
			continue
		}
		date, err := time.Parse("20060102", dateStr)
		if err != nil {
			continue
		}
		doy := date.YearDay()
		if doy > 365 {
			continue // leap day 366 falls outside the fixed 365-day window
		}

		year := date.Year()
		if _, ok := yearly[year]; !ok {
			yearly[year] = make([]float64, 365)
		}
		yearly[year][doy-1] = rainfall
	}

	years := make([]int, 0, len(yearly))
	for year := range yearly {
		years = append(years, year)
	}
	sort.Ints(years)

	if len(years) == 0 {
		return Analysis{}, ErrNoPrecipitationData
	}
	if len(years) < minYearsForFullConfidence {
		log.Printf("WARN: only %d years of rainfall data available, expected %d",
			len(years), minYearsForFullConfidence)
	}

	onsetDays := make([]int, 0, len(years))
	for _, year := range years {
		onsetDays = append(onsetDays, onsetDay(yearly[year]))
	}

	return Analysis{
		OnsetDayOfYear:       int(mean(onsetDays)),
		OnsetVariabilityDays: stddev(onsetDays),
		YearsAnalyzed:        len(years),
		OnsetDaysByYear:      onsetDays,
	}, nil
}

// onsetDay finds the first day-of-year at which cumulative rainfall reaches
// 20% of the year's total.
func onsetDay(daily []float64) int {
	var total float64
	for _, mm := range daily {
		total += mm
	}
	if total <= 0 {
		return defaultOnsetDOY
	}

	threshold := total * onsetThresholdFraction
	var cumulative float64
	for i, mm := range daily {
		cumulative += mm
		if cumulative >= threshold {
			return i + 1
		}
	}
	return defaultOnsetDOY
}

func mean(values []int) float64 {
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []int) float64 {
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := float64(v) - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
