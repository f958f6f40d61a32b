package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/envdata"
)

const soilGridsBody = `{
	"properties": {
		"layers": [
			{"name": "clay", "depths": [{"values": {"mean": 250}}]},
			{"name": "sand", "depths": [{"values": {"mean": 400}}]},
			{"name": "phh2o", "depths": [{"values": {"mean": 60}}]},
			{"name": "soc", "depths": [{"values": {"mean": 15}}]}
		]
	},
	"geometry": {"coordinates": [33.7741, -13.9626]}
}`

func TestSoilGridsFetchConvertsUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("value"); got != "mean" {
			t.Errorf("expected value=mean query, got %q", got)
		}
		if got := r.URL.Query()["property"]; len(got) != 4 {
			t.Errorf("expected 4 property params, got %v", got)
		}
		w.Write([]byte(soilGridsBody))
	}))
	defer srv.Close()

	client := NewSoilGridsClient(srv.Client(), srv.URL)
	data, err := client.Fetch(context.Background(), envdata.Coordinates{Lat: -13.9626, Lon: 33.7741})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.ClayContent != 25.0 {
		t.Errorf("clay content = %v, want 25.0", data.ClayContent)
	}
	if data.SandContent != 40.0 {
		t.Errorf("sand content = %v, want 40.0", data.SandContent)
	}
	if data.PHLevel != 6.0 {
		t.Errorf("ph level = %v, want 6.0", data.PHLevel)
	}
	if data.OrganicCarbon != 1.5 {
		t.Errorf("organic carbon = %v, want 1.5", data.OrganicCarbon)
	}
	if data.Metadata.Source != "SoilGrids API" {
		t.Errorf("unexpected metadata source %q", data.Metadata.Source)
	}
}

func TestSoilGridsFetchMissingProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": {"layers": [{"name": "clay", "depths": [{"values": {"mean": 250}}]}]}}`))
	}))
	defer srv.Close()

	client := NewSoilGridsClient(srv.Client(), srv.URL)
	_, err := client.Fetch(context.Background(), envdata.Coordinates{Lat: -13.96, Lon: 33.77})
	if err == nil {
		t.Fatal("expected error for missing soil properties")
	}
}

func TestNASAPowerFetchParsesParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("community"); got != "AG" {
			t.Errorf("expected community=AG, got %q", got)
		}
		if got := q.Get("start"); got != "20140101" {
			t.Errorf("expected start=20140101, got %q", got)
		}
		if got := q.Get("end"); got != "20231231" {
			t.Errorf("expected end=20231231, got %q", got)
		}
		w.Write([]byte(`{
			"properties": {"parameter": {
				"PRECTOTCORR": {"20140101": 5.2, "20140102": -999},
				"T2M": {"20140101": 24.1},
				"ALLSKY_SFC_SW_DWN": {"20140101": 20.5}
			}},
			"geometry": {"coordinates": [33.7741, -13.9626, 1100]}
		}`))
	}))
	defer srv.Close()

	client := NewNASAPowerClient(srv.Client(), srv.URL)
	data, err := client.Fetch(context.Background(), envdata.Coordinates{Lat: -13.9626, Lon: 33.7741}, 2014, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := data.Precipitation["20140101"]; got != 5.2 {
		t.Errorf("precipitation = %v, want 5.2", got)
	}
	// Missing-data sentinel passes through untouched; the analyzer filters it.
	if got := data.Precipitation["20140102"]; got != -999 {
		t.Errorf("sentinel value = %v, want -999", got)
	}
	if got := data.Temperature["20140101"]; got != 24.1 {
		t.Errorf("temperature = %v, want 24.1", got)
	}
	if data.Metadata.Latitude != -13.9626 {
		t.Errorf("metadata latitude = %v, want -13.9626", data.Metadata.Latitude)
	}
}

func TestNASAPowerFetchRejectsEmptyPrecipitation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": {"parameter": {}}}`))
	}))
	defer srv.Close()

	client := NewNASAPowerClient(srv.Client(), srv.URL)
	_, err := client.Fetch(context.Background(), envdata.Coordinates{Lat: 0, Lon: 0}, 2014, 2023)
	if err == nil {
		t.Fatal("expected error for response without precipitation data")
	}
}

func TestResilientClientRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(soilGridsBody))
	}))
	defer srv.Close()

	client := NewSoilGridsClient(srv.Client(), srv.URL)
	// Speed the test up; defaults wait seconds between attempts.
	client.rc.backoff.initialInterval = 1
	client.rc.backoff.maxInterval = 1

	_, err := client.Fetch(context.Background(), envdata.Coordinates{Lat: -13.96, Lon: 33.77})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}
