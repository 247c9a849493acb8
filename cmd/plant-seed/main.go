// plant-seed is a one-shot tool that seeds the reference tables (countries,
// origin locations, botanists, plants) from the current plant API data.
// Reference data must be fully seeded before any transform run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/config"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/database"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/normalize"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/plantapi"
)

func main() {
	envFile := flag.String("env", "", "Path to .env file (optional)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db := database.NewClient(cfg.DatabaseURL)
	if err := db.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	api := plantapi.New(cfg.PlantAPIURL, cfg.RequestTimeout, cfg.FetchBatchSize, cfg.MissLimit)
	records, err := api.Discover(ctx)
	if err != nil {
		log.Fatalf("Failed to discover plants: %v", err)
	}

	rows := normalize.FlattenAll(records)
	if err := db.SeedReferenceData(ctx, rows); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}
	log.Infof("seeded reference tables from %d plants", len(rows))
}
