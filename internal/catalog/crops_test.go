package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validCrop() Crop {
	return Crop{
		Name: "Maize", NameChichewa: "Chimanga", ScientificName: "Zea mays",
		MinPH: 5.5, MaxPH: 7.5,
		MinClayContent: 15, MaxClayContent: 40,
		MinOrganicCarbon: 1.0,
		MinRainfall:      500, MaxRainfall: 1200,
		MinTemperature: 18, MaxTemperature: 30,
		MinElevation: 500, MaxElevation: 2000,
		GrowingSeasonDays: 120,
	}
}

func TestAddCropAssignsID(t *testing.T) {
	repo := NewCropRepository()

	crop, err := repo.Add(validCrop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if crop.ID == uuid.Nil {
		t.Error("Add did not assign an ID")
	}

	got, err := repo.Get(crop.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Maize" {
		t.Errorf("got crop %q, want Maize", got.Name)
	}
}

func TestAddCropRejectsInvalidRanges(t *testing.T) {
	repo := NewCropRepository()

	tests := []struct {
		name   string
		mutate func(*Crop)
	}{
		{"ph min equals max", func(c *Crop) { c.MinPH, c.MaxPH = 6.0, 6.0 }},
		{"ph min above max", func(c *Crop) { c.MinPH, c.MaxPH = 7.5, 5.5 }},
		{"clay min above max", func(c *Crop) { c.MinClayContent, c.MaxClayContent = 40, 15 }},
		{"elevation min equals max", func(c *Crop) { c.MinElevation, c.MaxElevation = 1000, 1000 }},
		{"rainfall min above max", func(c *Crop) { c.MinRainfall, c.MaxRainfall = 1200, 500 }},
		{"temperature min above max", func(c *Crop) { c.MinTemperature, c.MaxTemperature = 30, 18 }},
		{"zero growing season", func(c *Crop) { c.GrowingSeasonDays = 0 }},
		{"missing name", func(c *Crop) { c.Name = "" }},
	}

	for _, tt := range tests {
		crop := validCrop()
		tt.mutate(&crop)
		if _, err := repo.Add(crop); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestAddCropRejectsDuplicateName(t *testing.T) {
	repo := NewCropRepository()

	if _, err := repo.Add(validCrop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Add(validCrop()); !errors.Is(err, ErrCropExists) {
		t.Fatalf("expected ErrCropExists, got %v", err)
	}
}

func TestGetUnknownCrop(t *testing.T) {
	repo := NewCropRepository()

	if _, err := repo.Get(uuid.New()); !errors.Is(err, ErrCropNotFound) {
		t.Fatalf("expected ErrCropNotFound, got %v", err)
	}
}

func TestSeedCrops(t *testing.T) {
	repo := NewCropRepository()
	SeedCrops(repo)

	crops := repo.List()
	if len(crops) != 8 {
		t.Fatalf("expected 8 seeded crops, got %d", len(crops))
	}

	// List is ordered by name.
	for i := 1; i < len(crops); i++ {
		if crops[i-1].Name > crops[i].Name {
			t.Errorf("crop list not sorted: %q before %q", crops[i-1].Name, crops[i].Name)
		}
	}
}

func TestSeedLocations(t *testing.T) {
	repo := NewLocationRepository()
	SeedLocations(repo)

	districts := repo.ListDistricts()
	if len(districts) != 5 {
		t.Fatalf("expected 5 districts, got %d", len(districts))
	}

	villages := repo.ListAllVillages()
	if len(villages) != 12 {
		t.Fatalf("expected 12 villages, got %d", len(villages))
	}

	for _, v := range villages {
		if v.Elevation == nil {
			t.Errorf("seeded village %s has no elevation", v.Name)
		}
		if _, err := repo.GetDistrict(v.DistrictID); err != nil {
			t.Errorf("village %s references unknown district: %v", v.Name, err)
		}
	}
}
