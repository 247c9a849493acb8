package plantapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
)

func TestMain(m *testing.M) {
	if err := log.Init(false); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func plantServer(t *testing.T, known int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/plants/")
		id, err := strconv.Atoi(idStr)
		if err != nil || id < 1 || id > known {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"plant_id":      id,
			"name":          fmt.Sprintf("Plant %d", id),
			"soil_moisture": 40.5,
			"temperature":   21.0,
		})
	}))
}

func newTestClient(url string, batchSize, missLimit int) *Client {
	return New(url+"/plants", time.Second, batchSize, missLimit)
}

func TestDiscoverCollectsAllKnownPlants(t *testing.T) {
	srv := plantServer(t, 7)
	defer srv.Close()

	c := newTestClient(srv.URL, 10, 5)
	records, err := c.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("discovered %d plants, want 7", len(records))
	}
	for _, rec := range records {
		if !hasName(rec) {
			t.Errorf("record without name: %v", rec)
		}
	}
}

func TestDiscoverTerminatesOnConsecutiveMisses(t *testing.T) {
	srv := plantServer(t, 0)
	defer srv.Close()

	c := newTestClient(srv.URL, 10, 5)
	records, err := c.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("discovered %d plants from empty API, want 0", len(records))
	}
}

func TestDiscoverSpansMultipleBatches(t *testing.T) {
	srv := plantServer(t, 23)
	defer srv.Close()

	c := newTestClient(srv.URL, 10, 5)
	records, err := c.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(records) != 23 {
		t.Errorf("discovered %d plants, want 23", len(records))
	}
}

func TestFetchPlantNotFoundIsAMissNotAnError(t *testing.T) {
	srv := plantServer(t, 1)
	defer srv.Close()

	c := newTestClient(srv.URL, 10, 5)
	rec, err := c.FetchPlant(context.Background(), 99)
	if err != nil {
		t.Fatalf("FetchPlant returned error: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record for unknown plant, got %v", rec)
	}
}

func TestFetchPlantRetriesServerErrors(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"plant_id": 1, "name": "Aloe"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 10, 5)
	rec, err := c.FetchPlant(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchPlant returned error: %v", err)
	}
	if !hasName(rec) {
		t.Errorf("expected record after retries, got %v", rec)
	}
	if attempts != 3 {
		t.Errorf("made %d attempts, want 3", attempts)
	}
}
