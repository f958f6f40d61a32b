package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

// DefaultSoilGridsURL is the ISRIC SoilGrids properties endpoint.
const DefaultSoilGridsURL = "https://rest.isric.org/soilgrids/v2.0/properties/query"

// topsoilDepth is the SoilGrids standard topsoil depth layer.
const topsoilDepth = "0-5cm"

// soilProperties are the SoilGrids property names we query. Each mean value
// comes back scaled by 10 and is converted to percent / pH / g-kg.
var soilProperties = []string{"clay", "sand", "phh2o", "soc"}

// SoilGridsClient implements envdata.SoilFetcher against the SoilGrids API.
type SoilGridsClient struct {
	name    string
	baseURL string
	rc      *resilientClient
}

// NewSoilGridsClient creates a client. baseURL of "" uses DefaultSoilGridsURL.
func NewSoilGridsClient(client *http.Client, baseURL string) *SoilGridsClient {
	if baseURL == "" {
		baseURL = DefaultSoilGridsURL
	}
	return &SoilGridsClient{
		name:    "soilgrids",
		baseURL: baseURL,
		rc:      newResilientClient(client, "soilgrids"),
	}
}

func (c *SoilGridsClient) Name() string {
	return c.name
}

// Fetch retrieves mean topsoil properties for the given point.
func (c *SoilGridsClient) Fetch(ctx context.Context, coords envdata.Coordinates) (envdata.SoilData, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", coords.Lat))
		values.Set("lon", fmt.Sprintf("%f", coords.Lon))
		for _, prop := range soilProperties {
			values.Add("property", prop)
		}
		values.Set("depth", topsoilDepth)
		values.Set("value", "mean")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
	}

	log.Printf("INFO: fetching soil data from SoilGrids for lat=%v lon=%v", coords.Lat, coords.Lon)

	resp, err := c.rc.do(ctx, buildRequest)
	if err != nil {
		return envdata.SoilData{}, fmt.Errorf("soilgrids request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Properties struct {
			Layers []struct {
				Name   string `json:"name"`
				Depths []struct {
					Values struct {
						Mean *float64 `json:"mean"`
					} `json:"values"`
				} `json:"depths"`
			} `json:"layers"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return envdata.SoilData{}, fmt.Errorf("failed to parse soilgrids response: %w", err)
	}

	data := envdata.SoilData{}
	found := make(map[string]bool, len(soilProperties))

	for _, layer := range payload.Properties.Layers {
		if len(layer.Depths) == 0 || layer.Depths[0].Values.Mean == nil {
			continue
		}
		mean := *layer.Depths[0].Values.Mean

		switch layer.Name {
		case "clay":
			data.ClayContent = mean / 10.0 // g/kg to %
		case "sand":
			data.SandContent = mean / 10.0 // g/kg to %
		case "phh2o":
			data.PHLevel = mean / 10.0 // pH*10 to pH
		case "soc":
			data.OrganicCarbon = mean / 10.0 // dg/kg to g/kg
		default:
			continue
		}
		found[layer.Name] = true
	}

	var missing []string
	for _, prop := range soilProperties {
		if !found[prop] {
			missing = append(missing, prop)
		}
	}
	if len(missing) > 0 {
		return envdata.SoilData{}, fmt.Errorf("missing soil properties in soilgrids response: %s", strings.Join(missing, ", "))
	}

	data.Metadata = envdata.Metadata{
		Latitude:  coords.Lat,
		Longitude: coords.Lon,
		Source:    "SoilGrids API",
		Depth:     topsoilDepth,
		FetchedAt: time.Now().UTC(),
	}
	if len(payload.Geometry.Coordinates) >= 2 {
		data.Metadata.Longitude = payload.Geometry.Coordinates[0]
		data.Metadata.Latitude = payload.Geometry.Coordinates[1]
	}

	return data, nil
}
