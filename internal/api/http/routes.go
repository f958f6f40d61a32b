package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/season"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/suitability"
)

var validate = validator.New()

// Deps bundles the services the HTTP layer exposes.
type Deps struct {
	Weather   *envdata.WeatherService
	Soil      *envdata.SoilService
	Calendar  *season.CalendarService
	Ranker    *suitability.Ranker
	Crops     *catalog.CropRepository
	Locations *catalog.LocationRepository

	GridMaxConcurrency int64
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/rainfall", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		startYear := c.QueryInt("start_year", 0)
		endYear := c.QueryInt("end_year", 0)

		result, err := deps.Weather.FetchRainfall(c.Context(), coords, startYear, endYear)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(rainfallResponse{
			WeatherData:  result.Data,
			StaleCache:   result.Stale,
			CacheWarning: result.Warning,
		})
	})

	v1.Get("/soil", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := deps.Soil.FetchSoil(c.Context(), coords)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(soilResponse{
			SoilData:     result.Data,
			StaleCache:   result.Stale,
			CacheWarning: result.Warning,
		})
	})

	v1.Get("/planting-window", func(c *fiber.Ctx) error {
		villageID, err := parseUUIDQuery(c, "village_id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		cropID, err := parseOptionalUUIDQuery(c, "crop_id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		forceRefresh := c.QueryBool("force_refresh", false)

		window, err := deps.Calendar.WindowForVillage(c.Context(), villageID, cropID, forceRefresh)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(window)
	})

	v1.Get("/planting-window/district", func(c *fiber.Ctx) error {
		districtID, err := parseUUIDQuery(c, "district_id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		cropID, err := parseOptionalUUIDQuery(c, "crop_id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		windows, err := deps.Calendar.WindowsForDistrict(c.Context(), districtID, cropID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"windows": windows})
	})

	v1.Get("/crops", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"crops": deps.Crops.List()})
	})

	v1.Get("/crops/:id/requirements", func(c *fiber.Ctx) error {
		cropID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid crop id")
		}

		crop, err := deps.Crops.Get(cropID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(cropRequirements(crop))
	})

	v1.Get("/crops/rank", func(c *fiber.Ctx) error {
		site, err := resolveSite(c, deps.Locations)
		if err != nil {
			return err
		}

		ranking, err := deps.Ranker.RankCrops(c.Context(), site, nil, nil)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(ranking)
	})

	v1.Get("/suitability/grid", func(c *fiber.Ctx) error {
		cropID, err := parseUUIDQuery(c, "crop_id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		crop, err := deps.Crops.Get(cropID)
		if err != nil {
			return toHTTPError(err)
		}

		var req gridQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points, err := deps.Ranker.Grid(c.Context(), crop, req.bounds(), req.Resolution, deps.GridMaxConcurrency)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"crop":       crop.Name,
			"resolution": req.Resolution,
			"points":     points,
		})
	})

	v1.Get("/districts", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"districts": deps.Locations.ListDistricts()})
	})

	v1.Get("/districts/:id/villages", func(c *fiber.Ctx) error {
		districtID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid district id")
		}
		if _, err := deps.Locations.GetDistrict(districtID); err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"villages": deps.Locations.ListVillages(districtID)})
	})
}

// toHTTPError maps the domain error taxonomy to HTTP status codes: bad
// input, not-found and upstream outages must be distinguishable to callers.
func toHTTPError(err error) *fiber.Error {
	switch {
	case errors.Is(err, envdata.ErrInvalidCoordinates),
		errors.Is(err, suitability.ErrInvalidBounds):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrCropNotFound),
		errors.Is(err, catalog.ErrVillageNotFound),
		errors.Is(err, catalog.ErrDistrictNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, season.ErrNoPrecipitationData):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case errors.Is(err, envdata.ErrUpstreamUnavailable),
		errors.Is(err, suitability.ErrSuitabilityUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// rainfallResponse tags the canonical weather payload with cache freshness.
type rainfallResponse struct {
	envdata.WeatherData
	StaleCache   bool   `json:"stale_cache,omitempty"`
	CacheWarning string `json:"cache_warning,omitempty"`
}

// soilResponse tags the canonical soil payload with cache freshness.
type soilResponse struct {
	envdata.SoilData
	StaleCache   bool   `json:"stale_cache,omitempty"`
	CacheWarning string `json:"cache_warning,omitempty"`
}

type requirementsResponse struct {
	Name                  string                            `json:"name"`
	NameChichewa          string                            `json:"name_chichewa"`
	ScientificName        string                            `json:"scientific_name"`
	SoilRequirements      suitability.SoilRequirements      `json:"soil_requirements"`
	ClimateRequirements   climateRequirements               `json:"climate_requirements"`
	ElevationRequirements suitability.ElevationRequirements `json:"elevation_requirements"`
	GrowingSeasonDays     int                               `json:"growing_season_days"`
}

type climateRequirements struct {
	MinRainfall    float64 `json:"min_rainfall"`
	MaxRainfall    float64 `json:"max_rainfall"`
	MinTemperature float64 `json:"min_temperature"`
	MaxTemperature float64 `json:"max_temperature"`
}

func cropRequirements(crop catalog.Crop) requirementsResponse {
	return requirementsResponse{
		Name:           crop.Name,
		NameChichewa:   crop.NameChichewa,
		ScientificName: crop.ScientificName,
		SoilRequirements: suitability.SoilRequirements{
			MinPH:            crop.MinPH,
			MaxPH:            crop.MaxPH,
			MinClayContent:   crop.MinClayContent,
			MaxClayContent:   crop.MaxClayContent,
			MinOrganicCarbon: crop.MinOrganicCarbon,
		},
		ClimateRequirements: climateRequirements{
			MinRainfall:    crop.MinRainfall,
			MaxRainfall:    crop.MaxRainfall,
			MinTemperature: crop.MinTemperature,
			MaxTemperature: crop.MaxTemperature,
		},
		ElevationRequirements: suitability.ElevationRequirements{
			MinElevation: crop.MinElevation,
			MaxElevation: crop.MaxElevation,
		},
		GrowingSeasonDays: crop.GrowingSeasonDays,
	}
}

// coordsQuery holds and validates lat/lon query parameters.
type coordsQuery struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (envdata.Coordinates, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return envdata.Coordinates{}, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return envdata.Coordinates{}, errors.New("invalid lat value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return envdata.Coordinates{}, errors.New("invalid lon value")
	}

	q := coordsQuery{Lat: lat, Lon: lon}
	if err := validate.Struct(q); err != nil {
		return envdata.Coordinates{}, err
	}

	return envdata.Coordinates{Lat: lat, Lon: lon}, nil
}

func parseUUIDQuery(c *fiber.Ctx, name string) (uuid.UUID, error) {
	value := c.Query(name)
	if value == "" {
		return uuid.Nil, errors.New(name + " query parameter is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func parseOptionalUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}
	return &id, nil
}

// resolveSite builds a scoring site from either a village_id or a
// district_id query parameter. District centroids carry no elevation; the
// ranker substitutes its default and says so in the response warnings.
func resolveSite(c *fiber.Ctx, locations *catalog.LocationRepository) (suitability.Site, error) {
	if villageID, err := parseOptionalUUIDQuery(c, "village_id"); err != nil {
		return suitability.Site{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else if villageID != nil {
		village, err := locations.GetVillage(*villageID)
		if err != nil {
			return suitability.Site{}, toHTTPError(err)
		}
		return suitability.SiteForVillage(village), nil
	}

	if districtID, err := parseOptionalUUIDQuery(c, "district_id"); err != nil {
		return suitability.Site{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else if districtID != nil {
		district, err := locations.GetDistrict(*districtID)
		if err != nil {
			return suitability.Site{}, toHTTPError(err)
		}
		return suitability.SiteForDistrict(district), nil
	}

	return suitability.Site{}, fiber.NewError(fiber.StatusBadRequest, "village_id or district_id query parameter is required")
}

// gridQuery holds query parameters for the suitability grid endpoint.
type gridQuery struct {
	MinLat     float64 `validate:"min=-90,max=90"`
	MaxLat     float64 `validate:"min=-90,max=90,gtfield=MinLat"`
	MinLon     float64 `validate:"min=-180,max=180"`
	MaxLon     float64 `validate:"min=-180,max=180,gtfield=MinLon"`
	Resolution float64 `validate:"gt=0"`
}

func (g *gridQuery) bind(c *fiber.Ctx) error {
	var err error
	if g.MinLat, err = requiredFloatQuery(c, "min_lat"); err != nil {
		return err
	}
	if g.MaxLat, err = requiredFloatQuery(c, "max_lat"); err != nil {
		return err
	}
	if g.MinLon, err = requiredFloatQuery(c, "min_lon"); err != nil {
		return err
	}
	if g.MaxLon, err = requiredFloatQuery(c, "max_lon"); err != nil {
		return err
	}

	g.Resolution = suitability.DefaultGridResolution
	if resStr := c.Query("resolution"); resStr != "" {
		if g.Resolution, err = strconv.ParseFloat(resStr, 64); err != nil {
			return errors.New("invalid resolution value")
		}
	}

	return validate.Struct(g)
}

func (g gridQuery) bounds() suitability.Bounds {
	return suitability.Bounds{
		MinLat: g.MinLat,
		MaxLat: g.MaxLat,
		MinLon: g.MinLon,
		MaxLon: g.MaxLon,
	}
}

func requiredFloatQuery(c *fiber.Ctx, name string) (float64, error) {
	value := c.Query(name)
	if value == "" {
		return 0, errors.New(name + " query parameter is required")
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New("invalid " + name + " value")
	}
	return f, nil
}
