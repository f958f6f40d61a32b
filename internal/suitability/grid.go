package suitability

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

// DefaultGridResolution is roughly 1km per cell.
const DefaultGridResolution = 0.01

// DefaultGridConcurrency bounds how many soil fetches run at once; a large
// bounding box can otherwise flood the upstream API with thousands of calls.
const DefaultGridConcurrency = 4

// ErrInvalidBounds is returned for empty or inverted bounding boxes and
// non-positive resolutions.
var ErrInvalidBounds = errors.New("invalid grid bounds")

// Bounds is a lat/lon bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// GridPoint is one scored cell of a suitability grid.
type GridPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Score float64 `json:"suitability_score"`
}

// GenerateGrid scores one crop over a lat/lon grid and streams cells as
// they complete. Cells start at the min corner and step by resolution
// degrees, exclusive of the max bounds. Each cell fetches its own soil
// data; per-cell failures are logged and skipped, so partial grids are
// expected. Soil fetch concurrency is bounded by maxConcurrency
// (<=0 uses DefaultGridConcurrency).
func (r *Ranker) GenerateGrid(ctx context.Context, crop catalog.Crop, bounds Bounds, resolution float64, maxConcurrency int64) (<-chan GridPoint, error) {
	if resolution <= 0 || bounds.MinLat >= bounds.MaxLat || bounds.MinLon >= bounds.MaxLon {
		return nil, ErrInvalidBounds
	}
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultGridConcurrency
	}

	out := make(chan GridPoint)
	sem := semaphore.NewWeighted(maxConcurrency)

	go func() {
		defer close(out)

		var wg sync.WaitGroup
		for lat := bounds.MinLat; lat < bounds.MaxLat; lat += resolution {
			for lon := bounds.MinLon; lon < bounds.MaxLon; lon += resolution {
				if err := sem.Acquire(ctx, 1); err != nil {
					wg.Wait()
					return
				}

				wg.Add(1)
				go func(lat, lon float64) {
					defer wg.Done()
					defer sem.Release(1)

					result, err := r.soil.FetchSoil(ctx, envdata.Coordinates{Lat: lat, Lon: lon})
					if err != nil {
						log.Printf("DEBUG: skipping grid cell (%v, %v): %v", lat, lon, err)
						return
					}

					score := Score(crop, result.Data, DefaultElevation, nil)
					select {
					case out <- GridPoint{Lat: lat, Lon: lon, Score: math.Round(score*100) / 100}:
					case <-ctx.Done():
					}
				}(lat, lon)
			}
		}
		wg.Wait()
	}()

	return out, nil
}

// Grid collects a full suitability grid ordered row-major from the min
// corner, which is the shape the map layer expects.
func (r *Ranker) Grid(ctx context.Context, crop catalog.Crop, bounds Bounds, resolution float64, maxConcurrency int64) ([]GridPoint, error) {
	cells, err := r.GenerateGrid(ctx, crop, bounds, resolution, maxConcurrency)
	if err != nil {
		return nil, err
	}

	points := make([]GridPoint, 0)
	for point := range cells {
		points = append(points, point)
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Lat != points[j].Lat {
			return points[i].Lat < points[j].Lat
		}
		return points[i].Lon < points[j].Lon
	})

	return points, nil
}
