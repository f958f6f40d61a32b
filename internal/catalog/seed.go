package catalog

import "log"

func ptr(v float64) *float64 { return &v }

// SeedCrops loads the default Malawian crop catalog.
func SeedCrops(r *CropRepository) {
	crops := []Crop{
		{
			Name: "Maize", NameChichewa: "Chimanga", ScientificName: "Zea mays",
			MinPH: 5.5, MaxPH: 7.5,
			MinClayContent: 15, MaxClayContent: 40,
			MinOrganicCarbon: 1.0,
			MinRainfall:      500, MaxRainfall: 1200,
			MinTemperature: 18, MaxTemperature: 30,
			MinElevation: 500, MaxElevation: 2000,
			GrowingSeasonDays: 120,
		},
		{
			Name: "Tobacco", NameChichewa: "Fodya", ScientificName: "Nicotiana tabacum",
			MinPH: 5.5, MaxPH: 6.5,
			MinClayContent: 10, MaxClayContent: 30,
			MinOrganicCarbon: 0.8,
			MinRainfall:      600, MaxRainfall: 1000,
			MinTemperature: 20, MaxTemperature: 30,
			MinElevation: 500, MaxElevation: 1500,
			GrowingSeasonDays: 130,
		},
		{
			Name: "Groundnuts", NameChichewa: "Mtedza", ScientificName: "Arachis hypogaea",
			MinPH: 5.5, MaxPH: 7.0,
			MinClayContent: 10, MaxClayContent: 30,
			MinOrganicCarbon: 0.8,
			MinRainfall:      500, MaxRainfall: 1000,
			MinTemperature: 20, MaxTemperature: 30,
			MinElevation: 200, MaxElevation: 1500,
			GrowingSeasonDays: 110,
		},
		{
			Name: "Beans", NameChichewa: "Nyemba", ScientificName: "Phaseolus vulgaris",
			MinPH: 6.0, MaxPH: 7.5,
			MinClayContent: 15, MaxClayContent: 35,
			MinOrganicCarbon: 1.2,
			MinRainfall:      400, MaxRainfall: 900,
			MinTemperature: 15, MaxTemperature: 27,
			MinElevation: 800, MaxElevation: 2400,
			GrowingSeasonDays: 90,
		},
		{
			Name: "Cassava", NameChichewa: "Chinangwa", ScientificName: "Manihot esculenta",
			MinPH: 5.0, MaxPH: 7.0,
			MinClayContent: 10, MaxClayContent: 35,
			MinOrganicCarbon: 0.6,
			MinRainfall:      750, MaxRainfall: 1500,
			MinTemperature: 22, MaxTemperature: 32,
			MinElevation: 0, MaxElevation: 1500,
			GrowingSeasonDays: 300,
		},
		{
			Name: "Sweet Potato", NameChichewa: "Mbatata", ScientificName: "Ipomoea batatas",
			MinPH: 5.5, MaxPH: 6.8,
			MinClayContent: 10, MaxClayContent: 30,
			MinOrganicCarbon: 0.8,
			MinRainfall:      600, MaxRainfall: 1200,
			MinTemperature: 18, MaxTemperature: 30,
			MinElevation: 0, MaxElevation: 1800,
			GrowingSeasonDays: 120,
		},
		{
			Name: "Rice", NameChichewa: "Mpunga", ScientificName: "Oryza sativa",
			MinPH: 5.0, MaxPH: 7.0,
			MinClayContent: 20, MaxClayContent: 50,
			MinOrganicCarbon: 1.0,
			MinRainfall:      1000, MaxRainfall: 2000,
			MinTemperature: 20, MaxTemperature: 35,
			MinElevation: 0, MaxElevation: 1200,
			GrowingSeasonDays: 150,
		},
		{
			Name: "Sorghum", NameChichewa: "Mapira", ScientificName: "Sorghum bicolor",
			MinPH: 5.5, MaxPH: 7.5,
			MinClayContent: 10, MaxClayContent: 40,
			MinOrganicCarbon: 0.6,
			MinRainfall:      400, MaxRainfall: 800,
			MinTemperature: 21, MaxTemperature: 35,
			MinElevation: 0, MaxElevation: 1500,
			GrowingSeasonDays: 115,
		},
	}

	for _, crop := range crops {
		if _, err := r.Add(crop); err != nil {
			log.Printf("ERROR: failed to seed crop %s: %v", crop.Name, err)
		}
	}
}

// SeedLocations loads the sample districts and villages used for demos.
func SeedLocations(r *LocationRepository) {
	type villageSeed struct {
		name, chichewa string
		lat, lon       float64
		elevation      *float64
	}

	districts := []struct {
		name, chichewa           string
		centroidLat, centroidLon float64
		villages                 []villageSeed
	}{
		{
			name: "Lilongwe", chichewa: "Lilongwe", centroidLat: -13.9833, centroidLon: 33.7833,
			villages: []villageSeed{
				{"Area 25", "Area 25", -13.9833, 33.7833, ptr(1050)},
				{"Kauma", "Kauma", -14.0, 33.8, ptr(1070)},
				{"Mitundu", "Mitundu", -13.95, 33.7, ptr(1040)},
			},
		},
		{
			name: "Blantyre", chichewa: "Blantyre", centroidLat: -15.7833, centroidLon: 35.0,
			villages: []villageSeed{
				{"Ndirande", "Ndirande", -15.8, 35.0, ptr(1100)},
				{"Chilomoni", "Chilomoni", -15.82, 35.02, ptr(1120)},
				{"Bangwe", "Bangwe", -15.78, 34.98, ptr(1090)},
			},
		},
		{
			name: "Mzuzu", chichewa: "Mzuzu", centroidLat: -11.45, centroidLon: 34.0167,
			villages: []villageSeed{
				{"Chibavi", "Chibavi", -11.45, 34.02, ptr(1280)},
				{"Katoto", "Katoto", -11.47, 34.0, ptr(1260)},
			},
		},
		{
			name: "Zomba", chichewa: "Zomba", centroidLat: -15.3833, centroidLon: 35.3167,
			villages: []villageSeed{
				{"Chinamwali", "Chinamwali", -15.38, 35.32, ptr(900)},
				{"Matawale", "Matawale", -15.4, 35.3, ptr(920)},
			},
		},
		{
			name: "Kasungu", chichewa: "Kasungu", centroidLat: -13.0333, centroidLon: 33.4833,
			villages: []villageSeed{
				{"Chulu", "Chulu", -13.03, 33.48, ptr(1100)},
				{"Santhe", "Santhe", -13.05, 33.5, ptr(1110)},
			},
		},
	}

	for _, d := range districts {
		district := r.AddDistrict(District{
			Name:         d.name,
			NameChichewa: d.chichewa,
			CentroidLat:  d.centroidLat,
			CentroidLon:  d.centroidLon,
		})
		for _, v := range d.villages {
			r.AddVillage(Village{
				Name:         v.name,
				NameChichewa: v.chichewa,
				DistrictID:   district.ID,
				Latitude:     v.lat,
				Longitude:    v.lon,
				Elevation:    v.elevation,
			})
		}
	}
}
