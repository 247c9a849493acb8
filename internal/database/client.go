// Package database is the relational store for the plant pipeline: reference
// tables, the botanist lookup, and the canonical recordings sink.
package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

const insertBatchSize = 500

// Client holds the connection to the plant database.
type Client struct {
	databaseURL string
	DB          *gorm.DB
}

// NewClient creates a new database client. Connect must be called before use.
func NewClient(databaseURL string) *Client {
	return &Client{databaseURL: databaseURL}
}

// Connect opens the GORM connection with a zap-backed SQL logger.
func (c *Client) Connect() error {
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	log.Info("connecting to plant database...")
	db, err := gorm.Open(postgres.Open(c.databaseURL), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return fmt.Errorf("connecting to plant database: %w", err)
	}
	c.DB = db
	log.Info("plant database connection successful")
	return nil
}

// Migrate creates the reference tables and the recordings table.
func (c *Client) Migrate(ctx context.Context) error {
	return c.DB.WithContext(ctx).AutoMigrate(
		&Country{},
		&OriginLocation{},
		&Botanist{},
		&Plant{},
		&model.StoredReading{},
	)
}

// BotanistLookup retrieves the botanist name to surrogate ID mapping. It
// implements reference.LookupProvider.
func (c *Client) BotanistLookup(ctx context.Context) (map[string]int, error) {
	var botanists []Botanist
	if err := c.DB.WithContext(ctx).Find(&botanists).Error; err != nil {
		return nil, fmt.Errorf("querying botanists: %w", err)
	}

	lookup := make(map[string]int, len(botanists))
	for _, b := range botanists {
		lookup[b.Name] = b.BotanistID
	}
	return lookup, nil
}

// InsertReadings stores a batch of canonical readings in the recordings
// table.
func (c *Client) InsertReadings(ctx context.Context, readings []model.Reading) error {
	if len(readings) == 0 {
		return nil
	}
	rows := make([]model.StoredReading, len(readings))
	for i, r := range readings {
		rows[i] = model.StoredReading{Reading: r}
	}
	if err := c.DB.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("inserting recordings: %w", err)
	}
	return nil
}

// FetchReadings retrieves every stored reading together with the column names
// the rows were fetched with, so the reporter can verify the table shape.
func (c *Client) FetchReadings(ctx context.Context) ([]model.StoredReading, []string, error) {
	rows, err := c.DB.WithContext(ctx).
		Model(&model.StoredReading{}).
		Select("recording_id, plant_id, botanist_id, timestamp, soil_moisture, temperature, last_watered").
		Order("recording_id").
		Rows()
	if err != nil {
		return nil, nil, fmt.Errorf("querying recordings: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading recordings columns: %w", err)
	}

	var readings []model.StoredReading
	for rows.Next() {
		var r model.StoredReading
		if err := c.DB.ScanRows(rows, &r); err != nil {
			return nil, nil, fmt.Errorf("scanning recording row: %w", err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating recordings: %w", err)
	}
	return readings, columns, nil
}

// TruncateReadings empties the recordings table. Destructive; intended for
// the post-archive maintenance step.
func (c *Client) TruncateReadings(ctx context.Context) error {
	if err := c.DB.WithContext(ctx).Exec("TRUNCATE TABLE recordings RESTART IDENTITY").Error; err != nil {
		return fmt.Errorf("truncating recordings: %w", err)
	}
	return nil
}
