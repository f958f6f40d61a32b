package suitability

import (
	"math"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

// ClimateData carries the seasonal climate readings used for scoring when
// available.
type ClimateData struct {
	AnnualRainfall  float64 `json:"annual_rainfall"`  // mm
	MeanTemperature float64 `json:"mean_temperature"` // celsius
}

// Optimal tolerances around each range midpoint.
const (
	phTolerance          = 0.5
	clayTolerance        = 5.0
	elevationTolerance   = 100.0
	rainfallTolerance    = 100.0
	temperatureTolerance = 2.0
)

// Score computes the 0-100 composite suitability of a crop for the given
// soil, elevation and optional climate conditions. Weights are soil 60% /
// elevation 40% without climate data, else soil 40% / elevation 30% /
// climate 30%.
func Score(crop catalog.Crop, soil envdata.SoilData, elevation float64, climate *ClimateData) float64 {
	soilScore := scoreSoil(crop, soil)
	elevationScore := scoreRange(elevation, crop.MinElevation, crop.MaxElevation, elevationTolerance)

	var total float64
	if climate != nil {
		climateScore := scoreClimate(crop, *climate)
		total = soilScore*0.4 + elevationScore*0.3 + climateScore*0.3
	} else {
		total = soilScore*0.6 + elevationScore*0.4
	}

	return math.Max(0.0, math.Min(100.0, total))
}

// scoreSoil weights pH 40%, clay 35% and organic carbon 25%.
func scoreSoil(crop catalog.Crop, soil envdata.SoilData) float64 {
	phScore := scoreRange(soil.PHLevel, crop.MinPH, crop.MaxPH, phTolerance)
	clayScore := scoreRange(soil.ClayContent, crop.MinClayContent, crop.MaxClayContent, clayTolerance)
	ocScore := scoreOrganicCarbon(soil.OrganicCarbon, crop.MinOrganicCarbon)

	return phScore*0.4 + clayScore*0.35 + ocScore*0.25
}

// scoreOrganicCarbon scores asymmetrically: more carbon is generally better.
// At or above the crop minimum the score starts at 70 and gains a fixed
// bonus per g/kg above the minimum, capped at 100; below the minimum it
// decays proportionally from 70 toward 0.
func scoreOrganicCarbon(value, min float64) float64 {
	if value >= min {
		return math.Min(100.0, 70.0+(value-min)*3)
	}
	return (value / min) * 70.0
}

// scoreClimate weights rainfall 60% and temperature 40%.
func scoreClimate(crop catalog.Crop, climate ClimateData) float64 {
	rainfallScore := scoreRange(climate.AnnualRainfall, crop.MinRainfall, crop.MaxRainfall, rainfallTolerance)
	tempScore := scoreRange(climate.MeanTemperature, crop.MinTemperature, crop.MaxTemperature, temperatureTolerance)

	return rainfallScore*0.6 + tempScore*0.4
}

// scoreRange scores how well value fits [min, max]. Out-of-range values
// score below 50, decaying linearly to 0 as the distance approaches the
// full range width. In-range values score 100 within optimalTolerance of
// the midpoint and decay linearly to a floor of 70 at the range edges, so
// an acceptable value always outscores an unacceptable one.
func scoreRange(value, min, max, optimalTolerance float64) float64 {
	rangeSize := max - min

	if value < min {
		penalty := (min - value) / rangeSize
		return math.Max(0.0, 50.0-penalty*50.0)
	}
	if value > max {
		penalty := (value - max) / rangeSize
		return math.Max(0.0, 50.0-penalty*50.0)
	}

	midpoint := (min + max) / 2.0
	distance := math.Abs(value - midpoint)
	if distance <= optimalTolerance {
		return 100.0
	}

	halfWidth := rangeSize / 2.0
	score := 100.0 - ((distance-optimalTolerance)/halfWidth)*30.0
	return math.Max(70.0, score)
}
