// Package model contains the data types that flow through the plant-health
// pipeline: flattened raw records, canonical readings, roll-up rows, and the
// summary report document.
package model

import "time"

// NormalizedReading is one raw API record flattened to a fixed set of fields.
// Every field is an untyped string; nil means the path was absent, null, or
// structurally malformed in the source payload. Type coercion happens in the
// transform stage, not here.
type NormalizedReading struct {
	PlantID        *string
	PlantName      *string
	ScientificName *string
	RecordingTaken *string
	LastWatered    *string
	SoilMoisture   *string
	Temperature    *string
	BotanistName   *string
	BotanistEmail  *string
	BotanistPhone  *string
	City           *string
	CountryName    *string
	Latitude       *string
	Longitude      *string
}

// Reading is a canonical, validated reading row ready for durable storage.
// Every row has a non-null plant, botanist, soil moisture, and temperature;
// Timestamp and LastWatered may be nil when the source strings could not be
// parsed.
type Reading struct {
	PlantID      int        `gorm:"column:plant_id" json:"plant_id"`
	BotanistID   int        `gorm:"column:botanist_id" json:"botanist_id"`
	Timestamp    *time.Time `gorm:"column:timestamp" json:"timestamp"`
	SoilMoisture float64    `gorm:"column:soil_moisture" json:"soil_moisture"`
	Temperature  float64    `gorm:"column:temperature" json:"temperature"`
	LastWatered  *time.Time `gorm:"column:last_watered" json:"last_watered"`
}

// StoredReading is a Reading as it exists in the recordings table, with the
// surrogate key assigned by the database.
type StoredReading struct {
	RecordingID int `gorm:"column:recording_id;primaryKey;autoIncrement" json:"recording_id"`
	Reading     `gorm:"embedded"`
}

// TableName customizes the table name used by GORM.
func (StoredReading) TableName() string {
	return "recordings"
}
