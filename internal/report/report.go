// Package report assembles the summary report document from the canonical
// readings: counts, per-column null rates, duplicate surrogate keys,
// distributional statistics, and explicit data-quality flags.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

// RequiredColumns must all be present in the input table. The reporter works
// on rows fetched back from the recordings table, so the surrogate
// recording_id is part of the contract.
var RequiredColumns = []string{
	"recording_id",
	"plant_id",
	"botanist_id",
	"timestamp",
	"soil_moisture",
	"temperature",
	"last_watered",
}

const hoursPerDay = 24.0

// ShapeError reports every required column absent from an input table.
type ShapeError struct {
	Missing []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Summarize produces the summary report for one run. columns is the set of
// column names the rows were fetched with; if any required column is absent,
// a ShapeError naming every missing column is returned. The input is not
// mutated.
func Summarize(rows []model.StoredReading, columns []string) (*model.Report, error) {
	if err := checkColumns(columns); err != nil {
		return nil, err
	}

	plants := make(map[int]struct{})
	botanists := make(map[int]struct{})
	plantCounts := make(map[int]int64)
	seenRecording := make(map[int]struct{})

	var tsMin, tsMax *time.Time
	var missingTS, missingLW, duplicates, negativeGaps int

	soil := make([]float64, 0, len(rows))
	temp := make([]float64, 0, len(rows))
	gaps := make([]float64, 0, len(rows))

	for _, r := range rows {
		plants[r.PlantID] = struct{}{}
		botanists[r.BotanistID] = struct{}{}
		plantCounts[r.PlantID]++

		if _, ok := seenRecording[r.RecordingID]; ok {
			duplicates++
		} else {
			seenRecording[r.RecordingID] = struct{}{}
		}

		soil = append(soil, r.SoilMoisture)
		temp = append(temp, r.Temperature)

		if r.Timestamp == nil {
			missingTS++
		} else {
			if tsMin == nil || r.Timestamp.Before(*tsMin) {
				t := *r.Timestamp
				tsMin = &t
			}
			if tsMax == nil || r.Timestamp.After(*tsMax) {
				t := *r.Timestamp
				tsMax = &t
			}
		}
		if r.LastWatered == nil {
			missingLW++
		}

		if r.Timestamp != nil && r.LastWatered != nil {
			gap := r.Timestamp.Sub(*r.LastWatered).Hours() / hoursPerDay
			gaps = append(gaps, gap)
			if gap < 0 {
				negativeGaps++
			}
		}
	}

	return &model.Report{
		Rows:            len(rows),
		UniquePlants:    len(plants),
		UniqueBotanists: len(botanists),
		TimestampRange: model.TimestampRange{
			Min: formatTime(tsMin),
			Max: formatTime(tsMax),
		},
		MissingnessRate:             missingness(len(rows), missingTS, missingLW),
		DuplicateRecordingIDCount:   duplicates,
		SoilMoistureSummary:         numSummary(soil),
		TemperatureSummary:          numSummary(temp),
		DaysSinceLastWateredSummary: numSummary(gaps),
		Flags: model.ReportFlags{
			NegativeDaysSinceLastWatered: negativeGaps,
			MissingTimestamp:             missingTS,
			MissingLastWatered:           missingLW,
		},
		TopPlantsByReadings: topPlants(plantCounts, 10),
	}, nil
}

func checkColumns(columns []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &ShapeError{Missing: missing}
	}
	return nil
}

// missingness computes the per-column null rate. Identity and sensor columns
// are non-nullable by the canonical invariant, so only the two timestamp
// columns can have a nonzero rate.
func missingness(rows, missingTS, missingLW int) map[string]float64 {
	rates := make(map[string]float64, len(RequiredColumns))
	for _, c := range RequiredColumns {
		rates[c] = 0
	}
	if rows > 0 {
		rates["timestamp"] = float64(missingTS) / float64(rows)
		rates["last_watered"] = float64(missingLW) / float64(rows)
	}
	return rates
}

// numSummary computes the distributional statistics for one series. An empty
// series reports every statistic as absent, never zero or NaN.
func numSummary(series []float64) model.NumSummary {
	s := model.NumSummary{Count: len(series)}
	if len(series) == 0 {
		return s
	}

	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	s.Min = ptr(sorted[0])
	s.Max = ptr(sorted[len(sorted)-1])
	s.Mean = ptr(stat.Mean(sorted, nil))
	s.P25 = ptr(stat.Quantile(0.25, stat.LinInterp, sorted, nil))
	s.Median = ptr(stat.Quantile(0.5, stat.LinInterp, sorted, nil))
	s.P75 = ptr(stat.Quantile(0.75, stat.LinInterp, sorted, nil))
	if len(sorted) > 1 {
		s.Std = ptr(stat.StdDev(sorted, nil))
	}
	return s
}

func topPlants(counts map[int]int64, n int) []model.PlantReadingCount {
	top := make([]model.PlantReadingCount, 0, len(counts))
	for id, c := range counts {
		top = append(top, model.PlantReadingCount{PlantID: id, Readings: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Readings != top[j].Readings {
			return top[i].Readings > top[j].Readings
		}
		return top[i].PlantID < top[j].PlantID
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func ptr(f float64) *float64 {
	return &f
}
