// Package transform is the validation and coercion engine: a pure function
// from normalized, resolver-checked rows to canonical readings.
//
// Coercion policy is asymmetric on purpose. An out-of-range soil moisture or
// temperature discards the whole reading, because numeric implausibility
// undermines the reading itself. An unparsable date only nulls the field,
// because a bad timestamp string does not.
package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/reference"
)

// Inclusive plausibility bounds for the two sensor values.
const (
	SoilMoistureMin = 0.0
	SoilMoistureMax = 100.0
	TemperatureMin  = 0.0
	TemperatureMax  = 40.0
)

// timeLayouts are tried in order when coercing timestamp strings. The plant
// API reports recording_taken as "2006-01-02 15:04:05" and last_watered in
// RFC 1123 form.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04:05 MST",
	"2006-01-02",
}

// TypeCoercionError reports a field that must already hold a valid
// integer-like value but does not. Unlike date and float coercion, this is a
// hard failure: plant identity cannot be guessed.
type TypeCoercionError struct {
	Field string
	Value string
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s value %q to integer", e.Field, e.Value)
}

// Transform coerces, range-checks, filters, and projects a batch of
// normalized rows into canonical readings. It is order-insensitive, never
// mutates its input, and is stable under repetition.
//
// The lookup must cover every botanist name in the batch; if it does not, a
// reference.MissingReferenceError naming every missing key is returned and
// zero rows survive.
func Transform(rows []model.NormalizedReading, lookup map[string]int) ([]model.Reading, error) {
	if err := reference.CheckCoverage(rows, lookup); err != nil {
		return nil, err
	}

	out := make([]model.Reading, 0, len(rows))
	for _, row := range rows {
		plantID, err := coerceInt("plant_id", row.PlantID)
		if err != nil {
			return nil, err
		}
		botanistID := lookup[*row.BotanistName]

		soil := coerceFloat(row.SoilMoisture)
		temp := coerceFloat(row.Temperature)
		if !inRange(soil, SoilMoistureMin, SoilMoistureMax) || !inRange(temp, TemperatureMin, TemperatureMax) {
			continue
		}

		out = append(out, model.Reading{
			PlantID:      plantID,
			BotanistID:   botanistID,
			Timestamp:    coerceTime(row.RecordingTaken),
			SoilMoisture: *soil,
			Temperature:  *temp,
			LastWatered:  coerceTime(row.LastWatered),
		})
	}
	return out, nil
}

// coerceInt parses an integer-like value. Integral floats ("7.0") are
// accepted; anything else fails hard.
func coerceInt(field string, s *string) (int, error) {
	if s == nil {
		return 0, &TypeCoercionError{Field: field, Value: "<nil>"}
	}
	v := strings.TrimSpace(*s)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int64(f)) {
		return int(f), nil
	}
	return 0, &TypeCoercionError{Field: field, Value: *s}
}

// coerceFloat parses a float with invalid-to-null semantics.
func coerceFloat(s *string) *float64 {
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// coerceTime parses a timestamp with invalid-to-null semantics, trying each
// known layout in order. Parsed times are UTC.
func coerceTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// inRange is the bound predicate: nil fails, bounds are inclusive.
func inRange(v *float64, lo, hi float64) bool {
	return v != nil && *v >= lo && *v <= hi
}
