package model

import "time"

// DailyRollup is one row per calendar day, recomputed wholesale on every
// summarization run. Day is a plain date string ("2006-01-02"); the roll-up
// day is a date, not an instant.
type DailyRollup struct {
	Day       string  `parquet:"day" json:"day"`
	Readings  int64   `parquet:"readings" json:"readings"`
	Plants    int64   `parquet:"plants" json:"plants"`
	Botanists int64   `parquet:"botanists" json:"botanists"`
	SoilMean  float64 `parquet:"soil_mean" json:"soil_mean"`
	TempMean  float64 `parquet:"temp_mean" json:"temp_mean"`
}

// PlantRollup is a per-plant aggregate over the canonical readings.
type PlantRollup struct {
	PlantID  int        `json:"plant_id"`
	Readings int64      `json:"readings"`
	SoilMin  float64    `json:"soil_min"`
	SoilMean float64    `json:"soil_mean"`
	SoilMax  float64    `json:"soil_max"`
	TempMin  float64    `json:"temp_min"`
	TempMean float64    `json:"temp_mean"`
	TempMax  float64    `json:"temp_max"`
	LastSeen *time.Time `json:"last_seen"`
}
