package suitability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

// ErrSuitabilityUnavailable is returned when the soil data needed for
// ranking could not be obtained at all.
var ErrSuitabilityUnavailable = errors.New("suitability unavailable: soil data fetch failed")

// DefaultElevation substitutes for locations without elevation data
// (approximate Malawi average). The substitution surfaces as a warning on
// the ranking, not just a log line.
const DefaultElevation = 1000.0

// SoilSource provides topsoil properties; in production this is the cached
// soil service.
type SoilSource interface {
	FetchSoil(ctx context.Context, coords envdata.Coordinates) (envdata.Result[envdata.SoilData], error)
}

// Site is a resolved scoring location. Elevation is nil for coarse
// locations such as district centroids.
type Site struct {
	Latitude  float64
	Longitude float64
	Elevation *float64
}

// SiteForVillage resolves a village to a Site.
func SiteForVillage(v catalog.Village) Site {
	return Site{Latitude: v.Latitude, Longitude: v.Longitude, Elevation: v.Elevation}
}

// SiteForDistrict resolves a district centroid to a Site without elevation.
func SiteForDistrict(d catalog.District) Site {
	return Site{Latitude: d.CentroidLat, Longitude: d.CentroidLon}
}

// SoilRequirements echoes a crop's soil ranges on a result.
type SoilRequirements struct {
	MinPH            float64 `json:"min_ph"`
	MaxPH            float64 `json:"max_ph"`
	MinClayContent   float64 `json:"min_clay_content"`
	MaxClayContent   float64 `json:"max_clay_content"`
	MinOrganicCarbon float64 `json:"min_organic_carbon"`
}

// ElevationRequirements echoes a crop's elevation range on a result.
type ElevationRequirements struct {
	MinElevation float64 `json:"min_elevation"`
	MaxElevation float64 `json:"max_elevation"`
}

// Result is one crop's suitability for a site.
type Result struct {
	CropID                uuid.UUID             `json:"crop_id"`
	Name                  string                `json:"name"`
	NameChichewa          string                `json:"name_chichewa"`
	ScientificName        string                `json:"scientific_name"`
	Score                 float64               `json:"suitability_score"`
	SoilRequirements      SoilRequirements      `json:"soil_requirements"`
	ElevationRequirements ElevationRequirements `json:"elevation_requirements"`
}

// Ranking is an ordered crop suitability list plus any degraded-mode
// warnings accumulated while producing it.
type Ranking struct {
	Results  []Result `json:"results"`
	Warnings []string `json:"warnings,omitempty"`
}

// Ranker scores every crop in the catalog against a site's conditions.
type Ranker struct {
	crops *catalog.CropRepository
	soil  SoilSource
}

// NewRanker creates a Ranker.
func NewRanker(crops *catalog.CropRepository, soil SoilSource) *Ranker {
	return &Ranker{crops: crops, soil: soil}
}

// RankCrops returns every cataloged crop scored against the site, sorted
// strictly descending by score with catalog order breaking ties. Soil data
// is fetched through the cache orchestrator unless pre-supplied.
func (r *Ranker) RankCrops(ctx context.Context, site Site, soil *envdata.SoilData, climate *ClimateData) (Ranking, error) {
	var ranking Ranking

	if soil == nil {
		result, err := r.soil.FetchSoil(ctx, envdata.Coordinates{Lat: site.Latitude, Lon: site.Longitude})
		if err != nil {
			if errors.Is(err, envdata.ErrInvalidCoordinates) {
				return Ranking{}, err
			}
			log.Printf("ERROR: failed to fetch soil data for ranking: %v", err)
			return Ranking{}, fmt.Errorf("%w: %v", ErrSuitabilityUnavailable, err)
		}
		soil = &result.Data
		if result.Stale {
			ranking.Warnings = append(ranking.Warnings, result.Warning)
		}
	}

	elevation := DefaultElevation
	if site.Elevation != nil {
		elevation = *site.Elevation
	} else {
		log.Printf("WARN: no elevation data available, using default: %vm", DefaultElevation)
		ranking.Warnings = append(ranking.Warnings,
			fmt.Sprintf("No elevation data for this location; scores assume the default %.0f m", DefaultElevation))
	}

	crops := r.crops.List()
	if len(crops) == 0 {
		log.Printf("WARN: no crops in catalog; returning empty ranking")
		ranking.Results = []Result{}
		return ranking, nil
	}

	ranking.Results = make([]Result, 0, len(crops))
	for _, crop := range crops {
		score := Score(crop, *soil, elevation, climate)
		ranking.Results = append(ranking.Results, Result{
			CropID:         crop.ID,
			Name:           crop.Name,
			NameChichewa:   crop.NameChichewa,
			ScientificName: crop.ScientificName,
			Score:          math.Round(score*100) / 100,
			SoilRequirements: SoilRequirements{
				MinPH:            crop.MinPH,
				MaxPH:            crop.MaxPH,
				MinClayContent:   crop.MinClayContent,
				MaxClayContent:   crop.MaxClayContent,
				MinOrganicCarbon: crop.MinOrganicCarbon,
			},
			ElevationRequirements: ElevationRequirements{
				MinElevation: crop.MinElevation,
				MaxElevation: crop.MaxElevation,
			},
		})
	}

	sort.SliceStable(ranking.Results, func(i, j int) bool {
		return ranking.Results[i].Score > ranking.Results[j].Score
	})

	return ranking, nil
}
