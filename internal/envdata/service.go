package envdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/cache"
)

// WeatherService serves historical weather data through a TTL cache with
// stale-cache fallback. The request path is: fresh cache hit, else remote
// fetch and write-through, else stale cache, else ErrUpstreamUnavailable.
type WeatherService struct {
	fetcher WeatherFetcher
	store   cache.Store
	ttl     time.Duration
}

// NewWeatherService creates a WeatherService. A ttl of 0 uses cache.DefaultTTL.
func NewWeatherService(fetcher WeatherFetcher, store cache.Store, ttl time.Duration) *WeatherService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &WeatherService{fetcher: fetcher, store: store, ttl: ttl}
}

// FetchRainfall returns historical rainfall and weather data for the given
// coordinates. startYear/endYear of 0 default to the last ten full calendar
// years. The returned Result is marked stale when it was served from an
// expired cache entry.
func (s *WeatherService) FetchRainfall(ctx context.Context, coords Coordinates, startYear, endYear int) (Result[WeatherData], error) {
	if err := coords.Validate(); err != nil {
		return Result[WeatherData]{}, err
	}

	if endYear == 0 {
		endYear = time.Now().Year() - 1
	}
	if startYear == 0 {
		startYear = endYear - 9 // 10 years total
	}

	key := cache.LocationKey(coords.Lat, coords.Lon)

	if entry, ok := s.store.Get(key); ok {
		var data WeatherData
		if err := json.Unmarshal(entry.Payload, &data); err == nil {
			log.Printf("INFO: using cached weather data for %s", key)
			return fresh(data), nil
		}
		log.Printf("ERROR: corrupt weather cache entry for %s; refetching", key)
	}

	data, fetchErr := s.fetcher.Fetch(ctx, coords, startYear, endYear)
	if fetchErr == nil {
		s.writeCache(key, coords, data)
		return fresh(data), nil
	}
	log.Printf("ERROR: failed to fetch weather data from %s: %v", s.fetcher.Name(), fetchErr)

	// Remote failed: fall back to a cache entry of any age.
	if entry, ok := s.store.GetStale(key); ok {
		var data WeatherData
		if err := json.Unmarshal(entry.Payload, &data); err == nil {
			log.Printf("WARN: using stale cached weather data for %s", key)
			return staleFallback(data), nil
		}
	}

	return Result[WeatherData]{}, fmt.Errorf("%w: weather fetch failed: %v", ErrUpstreamUnavailable, fetchErr)
}

func (s *WeatherService) writeCache(key string, coords Coordinates, data WeatherData) {
	// Caching is best-effort; a write failure must never abort the request.
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("ERROR: failed to cache weather data for %s: %v", key, err)
		return
	}
	s.store.Put(cache.NewEntry(coords.Lat, coords.Lon, payload, s.ttl))
	log.Printf("INFO: updated weather cache for %s", key)
}

// SoilService serves topsoil properties with the same cache/fallback
// behavior as WeatherService.
type SoilService struct {
	fetcher SoilFetcher
	store   cache.Store
	ttl     time.Duration
}

// NewSoilService creates a SoilService. A ttl of 0 uses cache.DefaultTTL.
func NewSoilService(fetcher SoilFetcher, store cache.Store, ttl time.Duration) *SoilService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &SoilService{fetcher: fetcher, store: store, ttl: ttl}
}

// FetchSoil returns topsoil properties for the given coordinates.
func (s *SoilService) FetchSoil(ctx context.Context, coords Coordinates) (Result[SoilData], error) {
	if err := coords.Validate(); err != nil {
		return Result[SoilData]{}, err
	}

	key := cache.LocationKey(coords.Lat, coords.Lon)

	if entry, ok := s.store.Get(key); ok {
		var data SoilData
		if err := json.Unmarshal(entry.Payload, &data); err == nil {
			log.Printf("INFO: using cached soil data for %s", key)
			return fresh(data), nil
		}
		log.Printf("ERROR: corrupt soil cache entry for %s; refetching", key)
	}

	data, fetchErr := s.fetcher.Fetch(ctx, coords)
	if fetchErr == nil {
		s.writeCache(key, coords, data)
		return fresh(data), nil
	}
	log.Printf("ERROR: failed to fetch soil data from %s: %v", s.fetcher.Name(), fetchErr)

	if entry, ok := s.store.GetStale(key); ok {
		var data SoilData
		if err := json.Unmarshal(entry.Payload, &data); err == nil {
			log.Printf("WARN: using stale cached soil data for %s", key)
			return staleFallback(data), nil
		}
	}

	return Result[SoilData]{}, fmt.Errorf("%w: soil fetch failed: %v", ErrUpstreamUnavailable, fetchErr)
}

func (s *SoilService) writeCache(key string, coords Coordinates, data SoilData) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("ERROR: failed to cache soil data for %s: %v", key, err)
		return
	}
	s.store.Put(cache.NewEntry(coords.Lat, coords.Lon, payload, s.ttl))
	log.Printf("INFO: updated soil cache for %s", key)
}
