package model

// NumSummary holds distributional statistics for one numeric series. Every
// statistic except Count is nil when the series is empty or all-null; callers
// must treat "no data" distinctly from zero.
type NumSummary struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	P25    *float64 `json:"p25"`
	Median *float64 `json:"median"`
	P75    *float64 `json:"p75"`
	Max    *float64 `json:"max"`
}

// TimestampRange is the min/max observed timestamp, RFC 3339 formatted, nil
// when no row has a timestamp.
type TimestampRange struct {
	Min *string `json:"min"`
	Max *string `json:"max"`
}

// ReportFlags are explicit data-quality flags surfaced in the summary report.
type ReportFlags struct {
	NegativeDaysSinceLastWatered int `json:"negative_days_since_last_watered"`
	MissingTimestamp             int `json:"missing_timestamp"`
	MissingLastWatered           int `json:"missing_last_watered"`
}

// PlantReadingCount pairs a plant with its reading count for the top-N list.
type PlantReadingCount struct {
	PlantID  int   `json:"plant_id"`
	Readings int64 `json:"readings"`
}

// Report is the immutable summary document produced once per run. The JSON
// field names are a contract with downstream logging/monitoring ingestion and
// must not change.
type Report struct {
	Rows                        int                `json:"rows"`
	UniquePlants                int                `json:"unique_plants"`
	UniqueBotanists             int                `json:"unique_botanists"`
	TimestampRange              TimestampRange     `json:"timestamp_range"`
	MissingnessRate             map[string]float64 `json:"missingness_rate"`
	DuplicateRecordingIDCount   int                `json:"duplicate_recording_id_count"`
	SoilMoistureSummary         NumSummary         `json:"soil_moisture_summary"`
	TemperatureSummary          NumSummary         `json:"temperature_summary"`
	DaysSinceLastWateredSummary NumSummary         `json:"days_since_last_watered_summary"`
	Flags                       ReportFlags        `json:"flags"`
	TopPlantsByReadings         []PlantReadingCount `json:"top_plants_by_readings"`
}
