package season

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

// RainfallSource provides historical rainfall data; in production this is
// the cached weather service.
type RainfallSource interface {
	FetchRainfall(ctx context.Context, coords envdata.Coordinates, startYear, endYear int) (envdata.Result[envdata.WeatherData], error)
}

// CalendarService calculates and caches planting windows per village.
type CalendarService struct {
	locations *catalog.LocationRepository
	rainfall  RainfallSource

	mu      sync.RWMutex
	windows map[string]Window
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(locations *catalog.LocationRepository, rainfall RainfallSource) *CalendarService {
	return &CalendarService{
		locations: locations,
		rainfall:  rainfall,
		windows:   make(map[string]Window),
	}
}

func windowKey(villageID uuid.UUID, cropID *uuid.UUID) string {
	if cropID == nil {
		return villageID.String() + "|general"
	}
	return villageID.String() + "|" + cropID.String()
}

// WindowForVillage returns the planting window for a village, reusing a
// stored window younger than 30 days unless forceRefresh is set.
func (s *CalendarService) WindowForVillage(ctx context.Context, villageID uuid.UUID, cropID *uuid.UUID, forceRefresh bool) (Window, error) {
	village, err := s.locations.GetVillage(villageID)
	if err != nil {
		return Window{}, err
	}

	key := windowKey(villageID, cropID)

	if !forceRefresh {
		s.mu.RLock()
		window, ok := s.windows[key]
		s.mu.RUnlock()
		if ok && window.IsFresh(time.Now().UTC()) {
			log.Printf("INFO: using cached planting window for %s", village.Name)
			return window, nil
		}
	}

	log.Printf("INFO: calculating planting window for %s", village.Name)

	coords := envdata.Coordinates{Lat: village.Latitude, Lon: village.Longitude}
	result, err := s.rainfall.FetchRainfall(ctx, coords, 0, 0)
	if err != nil {
		return Window{}, err
	}
	if result.Stale {
		log.Printf("WARN: planting window for %s computed from stale weather data", village.Name)
	}

	analysis, err := AnalyzeRainfall(result.Data.Precipitation)
	if err != nil {
		return Window{}, err
	}

	window := ComputeWindow(analysis)
	window.VillageID = villageID
	window.CropID = cropID

	s.mu.Lock()
	s.windows[key] = window
	s.mu.Unlock()

	return window, nil
}

// WindowsForDistrict computes planting windows for every village in a
// district. Per-village failures are logged and skipped.
func (s *CalendarService) WindowsForDistrict(ctx context.Context, districtID uuid.UUID, cropID *uuid.UUID) ([]Window, error) {
	if _, err := s.locations.GetDistrict(districtID); err != nil {
		return nil, err
	}

	villages := s.locations.ListVillages(districtID)
	windows := make([]Window, 0, len(villages))
	for _, village := range villages {
		window, err := s.WindowForVillage(ctx, village.ID, cropID, false)
		if err != nil {
			log.Printf("ERROR: failed to get planting window for %s: %v", village.Name, err)
			continue
		}
		windows = append(windows, window)
	}

	return windows, nil
}
