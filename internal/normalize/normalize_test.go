package normalize

import (
	"testing"
)

func TestFlattenExtractsNestedFields(t *testing.T) {
	rec := map[string]interface{}{
		"plant_id":        float64(8),
		"name":            "Bird of paradise",
		"scientific_name": "Heliconia schiedeana",
		"soil_moisture":   21.483,
		"temperature":     11.195,
		"recording_taken": "2025-01-01 10:00:00",
		"last_watered":    "Mon, 10 Jun 2024 13:23:01 GMT",
		"botanist": map[string]interface{}{
			"name":  "Carl Linnaeus",
			"email": "carl.linnaeus@lnhm.co.uk",
			"phone": "(146)994-1635x35992",
		},
		"origin_location": map[string]interface{}{
			"city":      "Stammbach",
			"country":   "Germany",
			"latitude":  50.1417,
			"longitude": 11.6833,
		},
	}

	got := Flatten(rec)

	checks := []struct {
		name  string
		field *string
		want  string
	}{
		{"plant_id", got.PlantID, "8"},
		{"plant_name", got.PlantName, "Bird of paradise"},
		{"scientific_name", got.ScientificName, "Heliconia schiedeana"},
		{"soil_moisture", got.SoilMoisture, "21.483"},
		{"temperature", got.Temperature, "11.195"},
		{"recording_taken", got.RecordingTaken, "2025-01-01 10:00:00"},
		{"last_watered", got.LastWatered, "Mon, 10 Jun 2024 13:23:01 GMT"},
		{"botanist_name", got.BotanistName, "Carl Linnaeus"},
		{"botanist_email", got.BotanistEmail, "carl.linnaeus@lnhm.co.uk"},
		{"botanist_phone", got.BotanistPhone, "(146)994-1635x35992"},
		{"city", got.City, "Stammbach"},
		{"country_name", got.CountryName, "Germany"},
		{"latitude", got.Latitude, "50.1417"},
		{"longitude", got.Longitude, "11.6833"},
	}
	for _, c := range checks {
		if c.field == nil {
			t.Errorf("%s = nil, want %q", c.name, c.want)
			continue
		}
		if *c.field != c.want {
			t.Errorf("%s = %q, want %q", c.name, *c.field, c.want)
		}
	}
}

func TestFlattenAbsentAndMalformedPathsBecomeNil(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
	}{
		{"empty record", map[string]interface{}{}},
		{"null fields", map[string]interface{}{
			"plant_id":      nil,
			"botanist":      nil,
			"soil_moisture": nil,
		}},
		{"botanist is not an object", map[string]interface{}{
			"botanist": "Carl Linnaeus",
		}},
		{"scalar field holds an object", map[string]interface{}{
			"soil_moisture": map[string]interface{}{"value": 20.0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.rec)
			if got.PlantID != nil {
				t.Errorf("plant_id = %q, want nil", *got.PlantID)
			}
			if got.BotanistName != nil {
				t.Errorf("botanist_name = %q, want nil", *got.BotanistName)
			}
			if got.SoilMoisture != nil {
				t.Errorf("soil_moisture = %q, want nil", *got.SoilMoisture)
			}
		})
	}
}

func TestFlattenNeverErrorsOnArbitraryShapes(t *testing.T) {
	// Flatten has no error path by contract; this just exercises odd shapes.
	recs := []map[string]interface{}{
		nil,
		{"plant_id": []interface{}{1, 2}},
		{"origin_location": map[string]interface{}{"latitude": true}},
	}
	rows := FlattenAll(recs)
	if len(rows) != len(recs) {
		t.Fatalf("FlattenAll returned %d rows, want %d", len(rows), len(recs))
	}
}
