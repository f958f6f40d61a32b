package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

// DefaultNASAPowerURL is the NASA POWER daily-point endpoint.
const DefaultNASAPowerURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

// Weather parameters requested from NASA POWER.
const (
	paramPrecipitation  = "PRECTOTCORR"       // precipitation corrected (mm/day)
	paramTemperature    = "T2M"               // temperature at 2 meters (C)
	paramSolarRadiation = "ALLSKY_SFC_SW_DWN" // all-sky surface shortwave radiation
)

// NASAPowerClient implements envdata.WeatherFetcher against the NASA POWER API.
type NASAPowerClient struct {
	name    string
	baseURL string
	rc      *resilientClient
}

// NewNASAPowerClient creates a client. baseURL of "" uses DefaultNASAPowerURL.
func NewNASAPowerClient(client *http.Client, baseURL string) *NASAPowerClient {
	if baseURL == "" {
		baseURL = DefaultNASAPowerURL
	}
	return &NASAPowerClient{
		name:    "nasa-power",
		baseURL: baseURL,
		rc:      newResilientClient(client, "nasa-power"),
	}
}

func (c *NASAPowerClient) Name() string {
	return c.name
}

// Fetch retrieves daily precipitation, temperature and solar radiation for
// the given point across [startYear, endYear].
func (c *NASAPowerClient) Fetch(ctx context.Context, coords envdata.Coordinates, startYear, endYear int) (envdata.WeatherData, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("parameters", fmt.Sprintf("%s,%s,%s", paramPrecipitation, paramTemperature, paramSolarRadiation))
		values.Set("community", "AG")
		values.Set("latitude", fmt.Sprintf("%f", coords.Lat))
		values.Set("longitude", fmt.Sprintf("%f", coords.Lon))
		values.Set("start", fmt.Sprintf("%d0101", startYear))
		values.Set("end", fmt.Sprintf("%d1231", endYear))
		values.Set("format", "JSON")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
	}

	log.Printf("INFO: fetching weather data from NASA POWER for lat=%v lon=%v years=%d-%d",
		coords.Lat, coords.Lon, startYear, endYear)

	resp, err := c.rc.do(ctx, buildRequest)
	if err != nil {
		return envdata.WeatherData{}, fmt.Errorf("nasa power request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Properties struct {
			Parameter map[string]map[string]float64 `json:"parameter"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat, elevation]
		} `json:"geometry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return envdata.WeatherData{}, fmt.Errorf("failed to parse nasa power response: %w", err)
	}

	precipitation := payload.Properties.Parameter[paramPrecipitation]
	if len(precipitation) == 0 {
		return envdata.WeatherData{}, fmt.Errorf("no precipitation data in nasa power response")
	}

	meta := envdata.Metadata{
		Latitude:  coords.Lat,
		Longitude: coords.Lon,
		Source:    "NASA POWER API",
		FetchedAt: time.Now().UTC(),
	}
	if len(payload.Geometry.Coordinates) >= 2 {
		meta.Longitude = payload.Geometry.Coordinates[0]
		meta.Latitude = payload.Geometry.Coordinates[1]
	}

	return envdata.WeatherData{
		Precipitation:  precipitation,
		Temperature:    payload.Properties.Parameter[paramTemperature],
		SolarRadiation: payload.Properties.Parameter[paramSolarRadiation],
		Metadata:       meta,
	}, nil
}
