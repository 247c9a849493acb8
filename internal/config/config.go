// Package config loads runtime configuration from the environment into an
// explicit Config value that is passed into each component at construction
// time. Nothing outside this package reads environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPlantAPIURL    = "https://tools.sigmalabs.co.uk/api/plants"
	defaultFetchBatchSize = 10
	defaultMissLimit      = 5
	defaultRequestTimeout = 30 * time.Second
	defaultFilename       = "reading.parquet"
)

// Config holds runtime configuration for the pipeline binaries.
type Config struct {
	DatabaseURL string

	PlantAPIURL    string
	FetchBatchSize int
	MissLimit      int
	RequestTimeout time.Duration

	S3Bucket          string
	S3Prefix          string
	S3Region          string
	PartitionFilename string

	// Interval between ingest runs; zero means run once and exit.
	Interval time.Duration
}

// Load reads configuration from environment variables (optionally .env).
// S3_BUCKET is deliberately not validated here: only the archiver requires
// it, and it fails fast with a ConfigurationError of its own.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		PlantAPIURL:       defaultPlantAPIURL,
		FetchBatchSize:    defaultFetchBatchSize,
		MissLimit:         defaultMissLimit,
		RequestTimeout:    defaultRequestTimeout,
		PartitionFilename: defaultFilename,
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if v := strings.TrimSpace(os.Getenv("PLANT_API_URL")); v != "" {
		cfg.PlantAPIURL = strings.TrimRight(v, "/")
	}

	if v := strings.TrimSpace(os.Getenv("FETCH_BATCH_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid FETCH_BATCH_SIZE: %q", v)
		}
		cfg.FetchBatchSize = n
	}

	if v := strings.TrimSpace(os.Getenv("MISS_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid MISS_LIMIT: %q", v)
		}
		cfg.MissLimit = n
	}

	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	cfg.S3Bucket = strings.TrimSpace(os.Getenv("S3_BUCKET"))
	cfg.S3Prefix = strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/")
	cfg.S3Region = strings.TrimSpace(os.Getenv("AWS_REGION"))

	if v := strings.TrimSpace(os.Getenv("PARTITION_FILENAME")); v != "" {
		cfg.PartitionFilename = v
	}

	if v := strings.TrimSpace(os.Getenv("PIPELINE_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid PIPELINE_INTERVAL: %w", err)
		}
		cfg.Interval = d
	}

	return cfg, nil
}
