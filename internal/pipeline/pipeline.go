// Package pipeline orchestrates the two runs of the plant-health system: the
// ingest run (extract, normalize, seed, resolve, transform, load) and the
// summary run (fetch, report, roll up, archive, optionally truncate).
//
// Runs share no state: every run fetches a fresh lookup table and recomputes
// all derived tables from the source of truth. A resolver or coercion failure
// aborts the whole run before anything is committed.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/aggregate"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/archive"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/config"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/database"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/normalize"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/reference"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/report"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/transform"
)

// RecordSource produces raw nested records from the upstream data source.
type RecordSource interface {
	Discover(ctx context.Context) ([]map[string]interface{}, error)
}

// Pipeline wires the stages together around one database client.
type Pipeline struct {
	cfg      config.Config
	source   RecordSource
	db       *database.Client
	uploader *archive.Uploader
}

// New creates a pipeline. source may be nil for summary-only use; uploader
// may be nil for ingest-only use.
func New(cfg config.Config, source RecordSource, db *database.Client, uploader *archive.Uploader) *Pipeline {
	return &Pipeline{cfg: cfg, source: source, db: db, uploader: uploader}
}

// IngestResult reports what one ingest run did.
type IngestResult struct {
	RunID      string
	Discovered int
	Loaded     int
	Dropped    int
}

// Ingest performs one full extract-transform-load run.
func (p *Pipeline) Ingest(ctx context.Context) (IngestResult, error) {
	res := IngestResult{RunID: uuid.NewString()}
	log.Infow("starting ingest run", "run_id", res.RunID)

	records, err := p.source.Discover(ctx)
	if err != nil {
		return res, fmt.Errorf("discovering plants: %w", err)
	}
	res.Discovered = len(records)
	if len(records) == 0 {
		log.Warnw("no plants discovered, nothing to load", "run_id", res.RunID)
		return res, nil
	}

	rows := normalize.FlattenAll(records)

	// Reference data must be fully seeded before resolution; unseen natural
	// keys from this batch are inserted first.
	if err := p.db.SeedReferenceData(ctx, rows); err != nil {
		return res, fmt.Errorf("seeding reference data: %w", err)
	}

	resolver := reference.NewResolver(p.db)
	lookup, err := resolver.Resolve(ctx, rows)
	if err != nil {
		return res, err
	}

	readings, err := transform.Transform(rows, lookup)
	if err != nil {
		return res, err
	}
	res.Loaded = len(readings)
	res.Dropped = len(rows) - len(readings)

	if err := p.db.InsertReadings(ctx, readings); err != nil {
		return res, err
	}

	log.Infow("ingest run complete",
		"run_id", res.RunID,
		"discovered", res.Discovered,
		"loaded", res.Loaded,
		"dropped_out_of_range", res.Dropped,
	)
	return res, nil
}

// SummaryOptions controls one summary run.
type SummaryOptions struct {
	// Truncate empties the recordings table after a fully successful archive.
	Truncate bool
	// OutDir, when non-empty, also writes the report and roll-up tables to
	// local files for inspection.
	OutDir string
}

// SummaryResult reports what one summary run produced.
type SummaryResult struct {
	RunID    string
	Report   *model.Report
	Daily    []model.DailyRollup
	PerPlant []model.PlantRollup
	Uploaded archive.Result
}

// Summary fetches the canonical readings, produces the summary report,
// computes the daily and per-plant roll-ups, archives one partition per day,
// and optionally truncates the source table afterwards.
func (p *Pipeline) Summary(ctx context.Context, opts SummaryOptions) (SummaryResult, error) {
	res := SummaryResult{RunID: uuid.NewString()}
	log.Infow("starting summary run", "run_id", res.RunID)

	readings, columns, err := p.db.FetchReadings(ctx)
	if err != nil {
		return res, err
	}

	res.Report, err = report.Summarize(readings, columns)
	if err != nil {
		return res, err
	}

	reportJSON, err := json.Marshal(res.Report)
	if err != nil {
		return res, fmt.Errorf("encoding summary report: %w", err)
	}
	log.Infow("summary report", "run_id", res.RunID, "report", string(reportJSON))

	canonical := make([]model.Reading, len(readings))
	for i, r := range readings {
		canonical[i] = r.Reading
	}
	res.Daily = aggregate.Daily(canonical)
	res.PerPlant = aggregate.PerPlant(canonical)

	if opts.OutDir != "" {
		if err := writeOutputs(opts.OutDir, reportJSON, res.Daily, res.PerPlant); err != nil {
			return res, err
		}
	}

	res.Uploaded, err = p.uploader.Upload(ctx, res.Daily)
	if err != nil {
		return res, err
	}
	log.Infow("archived daily partitions",
		"run_id", res.RunID,
		"objects", res.Uploaded.Objects,
		"rows", res.Uploaded.Rows,
	)

	if opts.Truncate {
		if err := p.db.TruncateReadings(ctx); err != nil {
			return res, err
		}
		log.Infow("truncated recordings table", "run_id", res.RunID)
	}

	return res, nil
}
