package report

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

func ts(day, hour int) *time.Time {
	t := time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func stored(id, plant, botanist int, timestamp, watered *time.Time, soil, temp float64) model.StoredReading {
	return model.StoredReading{
		RecordingID: id,
		Reading: model.Reading{
			PlantID:      plant,
			BotanistID:   botanist,
			Timestamp:    timestamp,
			SoilMoisture: soil,
			Temperature:  temp,
			LastWatered:  watered,
		},
	}
}

func TestSummarizeRequiresColumns(t *testing.T) {
	columns := []string{"recording_id", "plant_id", "botanist_id", "timestamp", "soil_moisture"}

	_, err := Summarize(nil, columns)

	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
	// Every missing column is named, not just the first.
	want := []string{"temperature", "last_watered"}
	if !reflect.DeepEqual(shapeErr.Missing, want) {
		t.Errorf("missing columns = %v, want %v", shapeErr.Missing, want)
	}
}

func TestSummarizeCountsAndRange(t *testing.T) {
	rows := []model.StoredReading{
		stored(1, 10, 100, ts(1, 10), ts(1, 8), 50, 20),
		stored(2, 11, 101, ts(3, 10), ts(2, 8), 60, 22),
		stored(3, 10, 100, nil, nil, 40, 18),
	}

	rep, err := Summarize(rows, RequiredColumns)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if rep.Rows != 3 {
		t.Errorf("rows = %d, want 3", rep.Rows)
	}
	if rep.UniquePlants != 2 {
		t.Errorf("unique_plants = %d, want 2", rep.UniquePlants)
	}
	if rep.UniqueBotanists != 2 {
		t.Errorf("unique_botanists = %d, want 2", rep.UniqueBotanists)
	}

	if rep.TimestampRange.Min == nil || *rep.TimestampRange.Min != "2025-01-01T10:00:00Z" {
		t.Errorf("timestamp_range.min = %v", rep.TimestampRange.Min)
	}
	if rep.TimestampRange.Max == nil || *rep.TimestampRange.Max != "2025-01-03T10:00:00Z" {
		t.Errorf("timestamp_range.max = %v", rep.TimestampRange.Max)
	}

	if got := rep.MissingnessRate["timestamp"]; got != 1.0/3.0 {
		t.Errorf("missingness_rate[timestamp] = %v", got)
	}
	if got := rep.MissingnessRate["plant_id"]; got != 0 {
		t.Errorf("missingness_rate[plant_id] = %v, want 0", got)
	}

	if rep.Flags.MissingTimestamp != 1 || rep.Flags.MissingLastWatered != 1 {
		t.Errorf("flags = %+v", rep.Flags)
	}
}

func TestSummarizeCountsDuplicateRecordingIDs(t *testing.T) {
	rows := []model.StoredReading{
		stored(1, 10, 100, ts(1, 10), ts(1, 8), 50, 20),
		stored(1, 11, 101, ts(2, 10), ts(1, 8), 60, 21),
		stored(2, 12, 102, ts(3, 10), ts(1, 8), 70, 22),
	}

	rep, err := Summarize(rows, RequiredColumns)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if rep.DuplicateRecordingIDCount != 1 {
		t.Errorf("duplicate_recording_id_count = %d, want 1", rep.DuplicateRecordingIDCount)
	}
}

func TestSummarizeFlagsNegativeWateringGap(t *testing.T) {
	// Watered after the reading was taken: a negative day gap.
	rows := []model.StoredReading{
		stored(1, 10, 100, ts(1, 10), ts(2, 10), 50, 20),
		stored(2, 10, 100, ts(3, 10), ts(2, 10), 50, 20),
	}

	rep, err := Summarize(rows, RequiredColumns)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if rep.Flags.NegativeDaysSinceLastWatered != 1 {
		t.Errorf("negative_days_since_last_watered = %d, want 1", rep.Flags.NegativeDaysSinceLastWatered)
	}

	gap := rep.DaysSinceLastWateredSummary
	if gap.Count != 2 {
		t.Errorf("gap count = %d, want 2", gap.Count)
	}
	if gap.Min == nil || *gap.Min != -1 {
		t.Errorf("gap min = %v, want -1", gap.Min)
	}
	if gap.Max == nil || *gap.Max != 1 {
		t.Errorf("gap max = %v, want 1", gap.Max)
	}
}

func TestSummarizeEmptySeriesReportsAbsentStatistics(t *testing.T) {
	rep, err := Summarize(nil, RequiredColumns)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	for _, s := range []model.NumSummary{
		rep.SoilMoistureSummary,
		rep.TemperatureSummary,
		rep.DaysSinceLastWateredSummary,
	} {
		if s.Count != 0 {
			t.Errorf("count = %d, want 0", s.Count)
		}
		if s.Mean != nil || s.Std != nil || s.Min != nil || s.Max != nil ||
			s.P25 != nil || s.Median != nil || s.P75 != nil {
			t.Errorf("statistics on empty series = %+v, want all absent", s)
		}
	}

	if rep.TimestampRange.Min != nil || rep.TimestampRange.Max != nil {
		t.Errorf("timestamp_range = %+v, want absent bounds", rep.TimestampRange)
	}
}

func TestSummarizeSingleValueStatistics(t *testing.T) {
	rows := []model.StoredReading{
		stored(1, 10, 100, ts(1, 10), ts(1, 8), 50, 20),
	}

	rep, err := Summarize(rows, RequiredColumns)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	soil := rep.SoilMoistureSummary
	if soil.Count != 1 {
		t.Errorf("soil count = %d, want 1", soil.Count)
	}
	for name, got := range map[string]*float64{
		"mean": soil.Mean, "min": soil.Min, "max": soil.Max,
		"p25": soil.P25, "median": soil.Median, "p75": soil.P75,
	} {
		if got == nil || *got != 50 {
			t.Errorf("soil %s = %v, want 50", name, got)
		}
	}
	// Sample standard deviation is undefined for one observation.
	if soil.Std != nil {
		t.Errorf("soil std = %v, want absent", soil.Std)
	}
}

func TestSummarizeUniformSeriesStatistics(t *testing.T) {
	rows := []model.StoredReading{
		stored(1, 10, 100, ts(1, 10), ts(1, 8), 42, 20),
		stored(2, 11, 100, ts(1, 11), ts(1, 8), 42, 20),
		stored(3, 12, 100, ts(1, 12), ts(1, 8), 42, 20),
	}

	rep, err := Summarize(rows, RequiredColumns)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	soil := rep.SoilMoistureSummary
	for name, got := range map[string]*float64{
		"mean": soil.Mean, "min": soil.Min, "max": soil.Max,
		"p25": soil.P25, "median": soil.Median, "p75": soil.P75,
	} {
		if got == nil || *got != 42 {
			t.Errorf("soil %s = %v, want 42", name, got)
		}
	}
	if soil.Std == nil || *soil.Std != 0 {
		t.Errorf("soil std = %v, want 0", soil.Std)
	}
}

func TestSummarizeTopPlantsByReadings(t *testing.T) {
	var rows []model.StoredReading
	id := 1
	for plant := 1; plant <= 12; plant++ {
		for i := 0; i <= plant; i++ {
			rows = append(rows, stored(id, plant, 100, ts(1, 10), ts(1, 8), 50, 20))
			id++
		}
	}

	rep, err := Summarize(rows, RequiredColumns)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if len(rep.TopPlantsByReadings) != 10 {
		t.Fatalf("top plants length = %d, want 10", len(rep.TopPlantsByReadings))
	}
	if rep.TopPlantsByReadings[0].PlantID != 12 {
		t.Errorf("top plant = %d, want 12", rep.TopPlantsByReadings[0].PlantID)
	}
	for i := 1; i < len(rep.TopPlantsByReadings); i++ {
		if rep.TopPlantsByReadings[i-1].Readings < rep.TopPlantsByReadings[i].Readings {
			t.Error("top plants not sorted by descending readings")
		}
	}
}
