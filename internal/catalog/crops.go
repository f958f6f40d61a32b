package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrCropNotFound is returned for lookups of unknown crop IDs.
	ErrCropNotFound = errors.New("crop not found")

	// ErrCropExists is returned when adding a crop whose name is taken.
	ErrCropExists = errors.New("crop already exists")
)

var validate = validator.New()

// Crop is immutable reference data describing one crop's tolerated growing
// conditions. Every range is validated as min < max at creation time, which
// keeps the suitability scorer free of degenerate zero-width ranges.
type Crop struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name" validate:"required"`
	NameChichewa   string    `json:"name_chichewa" validate:"required"`
	ScientificName string    `json:"scientific_name" validate:"required"`

	// Soil requirements.
	MinPH            float64 `json:"min_ph" validate:"ltfield=MaxPH"`
	MaxPH            float64 `json:"max_ph"`
	MinClayContent   float64 `json:"min_clay_content" validate:"ltfield=MaxClayContent"` // percent
	MaxClayContent   float64 `json:"max_clay_content"`
	MinOrganicCarbon float64 `json:"min_organic_carbon" validate:"gt=0"` // g/kg

	// Climate requirements.
	MinRainfall    float64 `json:"min_rainfall" validate:"ltfield=MaxRainfall"` // mm per season
	MaxRainfall    float64 `json:"max_rainfall"`
	MinTemperature float64 `json:"min_temperature" validate:"ltfield=MaxTemperature"` // celsius
	MaxTemperature float64 `json:"max_temperature"`

	// Elevation requirements.
	MinElevation float64 `json:"min_elevation" validate:"ltfield=MaxElevation"` // meters
	MaxElevation float64 `json:"max_elevation"`

	GrowingSeasonDays int `json:"growing_season_days" validate:"gt=0"`
}

// CropRepository is a concurrency-safe in-memory crop catalog.
type CropRepository struct {
	mu     sync.RWMutex
	crops  map[uuid.UUID]Crop
	byName map[string]uuid.UUID
}

// NewCropRepository creates an empty repository.
func NewCropRepository() *CropRepository {
	return &CropRepository{
		crops:  make(map[uuid.UUID]Crop),
		byName: make(map[string]uuid.UUID),
	}
}

// Add validates and stores a crop, assigning an ID when none is set.
func (r *CropRepository) Add(crop Crop) (Crop, error) {
	if err := validate.Struct(crop); err != nil {
		return Crop{}, fmt.Errorf("invalid crop %q: %w", crop.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[crop.Name]; taken {
		return Crop{}, fmt.Errorf("%w: %s", ErrCropExists, crop.Name)
	}

	if crop.ID == uuid.Nil {
		crop.ID = uuid.New()
	}
	r.crops[crop.ID] = crop
	r.byName[crop.Name] = crop.ID
	return crop, nil
}

// Get returns the crop with the given ID.
func (r *CropRepository) Get(id uuid.UUID) (Crop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	crop, ok := r.crops[id]
	if !ok {
		return Crop{}, fmt.Errorf("%w: %s", ErrCropNotFound, id)
	}
	return crop, nil
}

// List returns all crops ordered by name. The catalog iteration order is
// what keeps equal-score rankings stable.
func (r *CropRepository) List() []Crop {
	r.mu.RLock()
	defer r.mu.RUnlock()

	crops := make([]Crop, 0, len(r.crops))
	for _, crop := range r.crops {
		crops = append(crops, crop)
	}
	sort.Slice(crops, func(i, j int) bool { return crops[i].Name < crops[j].Name })
	return crops
}
