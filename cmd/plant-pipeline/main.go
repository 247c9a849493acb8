// plant-pipeline runs the ingest pipeline: discover plants from the API,
// normalize and validate the readings, and load them into the database.
// With -interval (or PIPELINE_INTERVAL) it keeps running on a schedule.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/config"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/database"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/pipeline"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/plantapi"
)

func main() {
	envFile := flag.String("env", "", "Path to .env file (optional)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	interval := flag.Duration("interval", 0, "Interval between runs; 0 runs once and exits")
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
	if *interval > 0 {
		cfg.Interval = *interval
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
	p := pipeline.New(cfg, api, db, nil)

	if cfg.Interval <= 0 {
		if _, err := p.Ingest(ctx); err != nil {
			log.Fatalf("Ingest run failed: %v", err)
		}
		return
	}

	scheduler := gocron.NewScheduler(time.UTC)
	_, err = scheduler.Every(cfg.Interval).Do(func() {
		if _, err := p.Ingest(ctx); err != nil {
			log.Errorf("Ingest run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule ingest runs: %v", err)
	}
	scheduler.StartAsync()
	log.Infof("scheduled ingest runs every %s", cfg.Interval)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutdown signal received, stopping scheduler...")
	scheduler.Stop()
}
