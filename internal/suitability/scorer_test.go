package suitability

import (
	"testing"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

func maize() catalog.Crop {
	return catalog.Crop{
		Name: "Maize", NameChichewa: "Chimanga", ScientificName: "Zea mays",
		MinPH: 5.5, MaxPH: 7.5,
		MinClayContent: 15, MaxClayContent: 40,
		MinOrganicCarbon: 1.0,
		MinRainfall:      500, MaxRainfall: 1200,
		MinTemperature: 18, MaxTemperature: 30,
		MinElevation: 500, MaxElevation: 2000,
		GrowingSeasonDays: 120,
	}
}

func TestScoreRangeMidpoint(t *testing.T) {
	tolerances := []float64{0.5, 5.0, 100.0}
	for _, tol := range tolerances {
		if got := scoreRange(6.5, 5.5, 7.5, tol); got != 100.0 {
			t.Errorf("midpoint with tolerance %v = %v, want 100", tol, got)
		}
	}
}

func TestScoreRangeOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"just below min", 5.4},
		{"far below min", 3.0},
		{"just above max", 7.6},
		{"far above max", 10.0},
	}

	for _, tt := range tests {
		got := scoreRange(tt.value, 5.5, 7.5, 0.5)
		if got < 0 || got >= 50 {
			t.Errorf("%s: score %v outside [0,50)", tt.name, got)
		}
	}
}

func TestScoreRangeInRangeFloor(t *testing.T) {
	// Any in-range value must score at least 70, so "acceptable" always
	// outscores "unacceptable".
	for value := 5.5; value <= 7.5; value += 0.1 {
		got := scoreRange(value, 5.5, 7.5, 0.1)
		if got < 70 || got > 100 {
			t.Errorf("in-range value %v scored %v outside [70,100]", value, got)
		}
	}
}

func TestScoreRangeEdgeBeatsOutside(t *testing.T) {
	edge := scoreRange(5.5, 5.5, 7.5, 0.5)
	outside := scoreRange(5.4, 5.5, 7.5, 0.5)
	if edge <= outside {
		t.Errorf("edge score %v not above out-of-range score %v", edge, outside)
	}
}

func TestScoreOrganicCarbon(t *testing.T) {
	// At the minimum: exactly 70.
	if got := scoreOrganicCarbon(1.0, 1.0); got != 70.0 {
		t.Errorf("at minimum = %v, want 70", got)
	}
	// Above minimum: 70 plus 3 per g/kg, capped at 100.
	if got := scoreOrganicCarbon(1.5, 1.0); got != 71.5 {
		t.Errorf("above minimum = %v, want 71.5", got)
	}
	if got := scoreOrganicCarbon(50.0, 1.0); got != 100.0 {
		t.Errorf("far above minimum = %v, want capped 100", got)
	}
	// Below minimum: proportional decay from 70.
	if got := scoreOrganicCarbon(0.5, 1.0); got != 35.0 {
		t.Errorf("below minimum = %v, want 35", got)
	}
}

func TestScoreIdealBeatsMarginal(t *testing.T) {
	crop := maize()

	idealSoil := envdata.SoilData{PHLevel: 6.5, ClayContent: 27.5, OrganicCarbon: 5.0}
	idealClimate := &ClimateData{AnnualRainfall: 850, MeanTemperature: 24}
	ideal := Score(crop, idealSoil, 1250, idealClimate)

	marginalSoil := envdata.SoilData{PHLevel: 5.5, ClayContent: 15, OrganicCarbon: 0.5}
	marginalClimate := &ClimateData{AnnualRainfall: 500, MeanTemperature: 18}
	marginal := Score(crop, marginalSoil, 500, marginalClimate)

	outsideSoil := envdata.SoilData{PHLevel: 4.0, ClayContent: 60, OrganicCarbon: 0.1}
	outsideClimate := &ClimateData{AnnualRainfall: 100, MeanTemperature: 40}
	outside := Score(crop, outsideSoil, 3000, outsideClimate)

	if ideal <= marginal {
		t.Errorf("ideal score %v not above marginal %v", ideal, marginal)
	}
	if marginal <= outside {
		t.Errorf("marginal score %v not above out-of-range %v", marginal, outside)
	}
}

func TestScoreExtremesStayInBounds(t *testing.T) {
	crop := maize()
	extreme := envdata.SoilData{PHLevel: 10, ClayContent: 90, OrganicCarbon: 0}

	score := Score(crop, extreme, 5000, &ClimateData{AnnualRainfall: 10000, MeanTemperature: -50})
	if score < 0 || score > 100 {
		t.Errorf("extreme input score %v outside [0,100]", score)
	}
}

func TestScoreMaizeReferenceSite(t *testing.T) {
	// Village at (-13.9626, 33.7741): pH 6.0, clay 25%, organic carbon
	// 1.5 g/kg, elevation 1200 m.
	soil := envdata.SoilData{PHLevel: 6.0, ClayContent: 25.0, OrganicCarbon: 1.5}

	score := Score(maize(), soil, 1200, nil)
	if score <= 60 || score >= 100 {
		t.Errorf("reference site maize score %v, want in (60,100)", score)
	}
}

func TestScoreClimateWeighting(t *testing.T) {
	crop := maize()
	soil := envdata.SoilData{PHLevel: 6.5, ClayContent: 27.5, OrganicCarbon: 5.0}

	withoutClimate := Score(crop, soil, 1250, nil)
	badClimate := Score(crop, soil, 1250, &ClimateData{AnnualRainfall: 0, MeanTemperature: 50})

	if badClimate >= withoutClimate {
		t.Errorf("hostile climate score %v not below climate-free score %v", badClimate, withoutClimate)
	}
}
