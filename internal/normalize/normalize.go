// Package normalize flattens one raw plant API record into a fixed set of
// untyped fields. It is a pure mapping: any absent, null, or structurally
// malformed path becomes a nil field, and no input is ever rejected here.
package normalize

import (
	"encoding/json"
	"strconv"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

// Flatten extracts the fields of interest from a raw nested record. The
// record is the decoded JSON body of one plant API response.
func Flatten(rec map[string]interface{}) model.NormalizedReading {
	botanist, _ := rec["botanist"].(map[string]interface{})
	origin, _ := rec["origin_location"].(map[string]interface{})

	return model.NormalizedReading{
		PlantID:        stringAt(rec, "plant_id"),
		PlantName:      stringAt(rec, "name"),
		ScientificName: stringAt(rec, "scientific_name"),
		RecordingTaken: stringAt(rec, "recording_taken"),
		LastWatered:    stringAt(rec, "last_watered"),
		SoilMoisture:   stringAt(rec, "soil_moisture"),
		Temperature:    stringAt(rec, "temperature"),
		BotanistName:   stringAt(botanist, "name"),
		BotanistEmail:  stringAt(botanist, "email"),
		BotanistPhone:  stringAt(botanist, "phone"),
		City:           stringAt(origin, "city"),
		CountryName:    stringAt(origin, "country"),
		Latitude:       stringAt(origin, "latitude"),
		Longitude:      stringAt(origin, "longitude"),
	}
}

// FlattenAll applies Flatten to every record in a batch.
func FlattenAll(recs []map[string]interface{}) []model.NormalizedReading {
	rows := make([]model.NormalizedReading, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, Flatten(rec))
	}
	return rows
}

// stringAt renders the value at key as a string, or nil if the key is absent,
// null, or not a scalar. Numbers are rendered with strconv so that integral
// floats keep a stable representation across decodes.
func stringAt(m map[string]interface{}, key string) *string {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case bool:
		s = strconv.FormatBool(t)
	default:
		// Nested objects and arrays are not scalar fields.
		return nil
	}
	return &s
}
