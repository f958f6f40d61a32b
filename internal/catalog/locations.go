package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrVillageNotFound is returned for lookups of unknown village IDs.
	ErrVillageNotFound = errors.New("village not found")

	// ErrDistrictNotFound is returned for lookups of unknown district IDs.
	ErrDistrictNotFound = errors.New("district not found")
)

// District is an administrative district identified by its centroid.
// Boundary geometry lives in the GIS layer and is out of scope here.
type District struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	NameChichewa string    `json:"name_chichewa"`
	CentroidLat  float64   `json:"centroid_lat"`
	CentroidLon  float64   `json:"centroid_lon"`
}

// Village is a point location within a district. Elevation is nil when no
// elevation survey covers the village.
type Village struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	NameChichewa string    `json:"name_chichewa"`
	DistrictID   uuid.UUID `json:"district_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Elevation    *float64  `json:"elevation,omitempty"` // meters
}

// LocationRepository is a concurrency-safe in-memory location registry.
type LocationRepository struct {
	mu        sync.RWMutex
	districts map[uuid.UUID]District
	villages  map[uuid.UUID]Village
}

// NewLocationRepository creates an empty repository.
func NewLocationRepository() *LocationRepository {
	return &LocationRepository{
		districts: make(map[uuid.UUID]District),
		villages:  make(map[uuid.UUID]Village),
	}
}

// AddDistrict stores a district, assigning an ID when none is set.
func (r *LocationRepository) AddDistrict(d District) District {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.districts[d.ID] = d
	return d
}

// AddVillage stores a village, assigning an ID when none is set.
func (r *LocationRepository) AddVillage(v Village) Village {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.villages[v.ID] = v
	return v
}

// GetDistrict returns the district with the given ID.
func (r *LocationRepository) GetDistrict(id uuid.UUID) (District, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.districts[id]
	if !ok {
		return District{}, fmt.Errorf("%w: %s", ErrDistrictNotFound, id)
	}
	return d, nil
}

// GetVillage returns the village with the given ID.
func (r *LocationRepository) GetVillage(id uuid.UUID) (Village, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.villages[id]
	if !ok {
		return Village{}, fmt.Errorf("%w: %s", ErrVillageNotFound, id)
	}
	return v, nil
}

// ListDistricts returns all districts ordered by name.
func (r *LocationRepository) ListDistricts() []District {
	r.mu.RLock()
	defer r.mu.RUnlock()

	districts := make([]District, 0, len(r.districts))
	for _, d := range r.districts {
		districts = append(districts, d)
	}
	sort.Slice(districts, func(i, j int) bool { return districts[i].Name < districts[j].Name })
	return districts
}

// ListVillages returns all villages in a district ordered by name.
func (r *LocationRepository) ListVillages(districtID uuid.UUID) []Village {
	r.mu.RLock()
	defer r.mu.RUnlock()

	villages := make([]Village, 0)
	for _, v := range r.villages {
		if v.DistrictID == districtID {
			villages = append(villages, v)
		}
	}
	sort.Slice(villages, func(i, j int) bool { return villages[i].Name < villages[j].Name })
	return villages
}

// ListAllVillages returns every known village ordered by name.
func (r *LocationRepository) ListAllVillages() []Village {
	r.mu.RLock()
	defer r.mu.RUnlock()

	villages := make([]Village, 0, len(r.villages))
	for _, v := range r.villages {
		villages = append(villages, v)
	}
	sort.Slice(villages, func(i, j int) bool { return villages[i].Name < villages[j].Name })
	return villages
}
