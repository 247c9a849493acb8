// Package aggregate computes the daily and per-plant roll-up tables from the
// canonical readings. Roll-ups are recomputed wholesale on every run and are
// never mutated in place.
package aggregate

import (
	"sort"
	"time"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

// DayLayout is the date format of the daily roll-up's day column.
const DayLayout = "2006-01-02"

// Daily groups canonical readings by the UTC calendar date of their
// timestamp and computes per-day counts and means. Rows with a nil timestamp
// belong to no day and are excluded. Output is sorted by ascending day.
func Daily(readings []model.Reading) []model.DailyRollup {
	type acc struct {
		readings  int64
		plants    map[int]struct{}
		botanists map[int]struct{}
		soilSum   float64
		tempSum   float64
	}

	days := make(map[string]*acc)
	for _, r := range readings {
		if r.Timestamp == nil {
			continue
		}
		day := r.Timestamp.UTC().Format(DayLayout)
		a, ok := days[day]
		if !ok {
			a = &acc{plants: make(map[int]struct{}), botanists: make(map[int]struct{})}
			days[day] = a
		}
		a.readings++
		a.plants[r.PlantID] = struct{}{}
		a.botanists[r.BotanistID] = struct{}{}
		a.soilSum += r.SoilMoisture
		a.tempSum += r.Temperature
	}

	out := make([]model.DailyRollup, 0, len(days))
	for day, a := range days {
		out = append(out, model.DailyRollup{
			Day:       day,
			Readings:  a.readings,
			Plants:    int64(len(a.plants)),
			Botanists: int64(len(a.botanists)),
			SoilMean:  a.soilSum / float64(a.readings),
			TempMean:  a.tempSum / float64(a.readings),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// PerPlant groups canonical readings by plant and computes reading counts,
// min/mean/max for both sensor values, and the most recent timestamp. Output
// is sorted by descending reading count, tie-broken by ascending plant ID.
func PerPlant(readings []model.Reading) []model.PlantRollup {
	type acc struct {
		readings         int64
		soilMin, soilMax float64
		soilSum          float64
		tempMin, tempMax float64
		tempSum          float64
		lastSeen         *time.Time
	}

	plants := make(map[int]*acc)
	for _, r := range readings {
		a, ok := plants[r.PlantID]
		if !ok {
			a = &acc{
				soilMin: r.SoilMoisture, soilMax: r.SoilMoisture,
				tempMin: r.Temperature, tempMax: r.Temperature,
			}
			plants[r.PlantID] = a
		}
		a.readings++
		a.soilSum += r.SoilMoisture
		a.tempSum += r.Temperature
		if r.SoilMoisture < a.soilMin {
			a.soilMin = r.SoilMoisture
		}
		if r.SoilMoisture > a.soilMax {
			a.soilMax = r.SoilMoisture
		}
		if r.Temperature < a.tempMin {
			a.tempMin = r.Temperature
		}
		if r.Temperature > a.tempMax {
			a.tempMax = r.Temperature
		}
		if r.Timestamp != nil && (a.lastSeen == nil || r.Timestamp.After(*a.lastSeen)) {
			t := *r.Timestamp
			a.lastSeen = &t
		}
	}

	out := make([]model.PlantRollup, 0, len(plants))
	for id, a := range plants {
		out = append(out, model.PlantRollup{
			PlantID:  id,
			Readings: a.readings,
			SoilMin:  a.soilMin,
			SoilMean: a.soilSum / float64(a.readings),
			SoilMax:  a.soilMax,
			TempMin:  a.tempMin,
			TempMean: a.tempSum / float64(a.readings),
			TempMax:  a.tempMax,
			LastSeen: a.lastSeen,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Readings != out[j].Readings {
			return out[i].Readings > out[j].Readings
		}
		return out[i].PlantID < out[j].PlantID
	})
	return out
}
