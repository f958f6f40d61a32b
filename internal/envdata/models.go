package envdata

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCoordinates is returned before any cache or network I/O
	// when a coordinate pair is out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrUpstreamUnavailable is returned when the remote API call failed
	// and no cached payload of any age exists for the location.
	ErrUpstreamUnavailable = errors.New("upstream unavailable and no cached data")
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// Validate checks the coordinate ranges.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: lat=%v lon=%v (latitude must be within [-90,90], longitude within [-180,180])",
			ErrInvalidCoordinates, c.Lat, c.Lon)
	}
	return nil
}

// Metadata describes where and when an upstream payload was obtained.
type Metadata struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Source    string    `json:"source"`
	Depth     string    `json:"depth,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// WeatherData is the canonical shape of a NASA POWER daily-point response.
// Maps are keyed by YYYYMMDD date strings; the upstream marks missing days
// with the MissingValue sentinel rather than omitting them.
type WeatherData struct {
	Precipitation  map[string]float64 `json:"precipitation"`
	Temperature    map[string]float64 `json:"temperature"`
	SolarRadiation map[string]float64 `json:"solar_radiation"`
	Metadata       Metadata           `json:"metadata"`
}

// SoilData is the canonical shape of a SoilGrids topsoil query. Units are
// percent for clay/sand, pH for PHLevel and g/kg for organic carbon.
type SoilData struct {
	ClayContent   float64  `json:"clay_content"`
	SandContent   float64  `json:"sand_content"`
	PHLevel       float64  `json:"ph_level"`
	OrganicCarbon float64  `json:"organic_carbon"`
	Metadata      Metadata `json:"metadata"`
}

// Result wraps a payload with its freshness. Stale results come from an
// expired cache entry served because the upstream API was unreachable;
// they always carry a human-readable warning so degraded data is never
// indistinguishable from fresh data.
type Result[T any] struct {
	Data    T
	Stale   bool
	Warning string
}

func fresh[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

func staleFallback[T any](data T) Result[T] {
	return Result[T]{
		Data:    data,
		Stale:   true,
		Warning: "Using cached data due to API unavailability",
	}
}

// WeatherFetcher retrieves historical daily weather for a point across an
// inclusive year range.
type WeatherFetcher interface {
	Name() string
	Fetch(ctx context.Context, coords Coordinates, startYear, endYear int) (WeatherData, error)
}

// SoilFetcher retrieves topsoil properties for a point.
type SoilFetcher interface {
	Name() string
	Fetch(ctx context.Context, coords Coordinates) (SoilData, error)
}
