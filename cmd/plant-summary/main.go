// plant-summary runs the summarization engine: it reads the canonical
// recordings, emits the summary report, archives one Parquet partition per
// day to S3, and (by default) truncates the recordings table afterwards.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/archive"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/config"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/database"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/pipeline"
)

func main() {
	envFile := flag.String("env", "", "Path to .env file (optional)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	truncate := flag.Bool("truncate", true, "Truncate the recordings table after a successful archive")
	outDir := flag.String("out", "", "Also write report and roll-ups to this local directory")
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

	putter, err := archive.NewS3Putter(cfg.S3Region)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}
	uploader := archive.NewUploader(cfg.S3Bucket, cfg.S3Prefix, cfg.PartitionFilename, putter)

	p := pipeline.New(cfg, nil, db, uploader)

	res, err := p.Summary(context.Background(), pipeline.SummaryOptions{
		Truncate: *truncate,
		OutDir:   *outDir,
	})
	if err != nil {
		log.Fatalf("Summary run failed: %v", err)
	}
	log.Infof("summary run complete: %d rows summarised, %d partitions uploaded",
		res.Report.Rows, res.Uploaded.Objects)
}
