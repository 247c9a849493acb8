// Package archive serializes daily roll-up rows to columnar Parquet blobs and
// writes them to a hierarchical key namespace in object storage, one object
// per calendar day.
//
// Failure policy: a Parquet serialization failure aborts the whole run, not
// just the offending day. Partitions are recomputed idempotently from the
// source of truth on the next run, so a clean all-or-nothing abort is safer
// than a half-written day range.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/aggregate"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

const partitionContentType = "application/octet-stream"

// ConfigurationError reports a required destination setting that is absent.
// It is raised before any write is attempted.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// SerializationError wraps a columnar-write failure for one day's partition.
type SerializationError struct {
	Day string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("writing parquet for day %s: %v", e.Day, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// ObjectPutter writes one object to a bucket. The S3 client implements it;
// tests use an in-memory fake.
type ObjectPutter interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// Uploader writes one Parquet object per daily roll-up row under
// [prefix/]year=YYYY/month=MM/day=DD/<filename>. The key layout is consumed
// by downstream query tooling and must be preserved exactly.
type Uploader struct {
	Bucket   string
	Prefix   string
	Filename string
	putter   ObjectPutter
}

// Result reports what one upload run covered, for observability.
type Result struct {
	Objects int
	Rows    int
}

// NewUploader returns an Uploader writing through the given putter.
func NewUploader(bucket, prefix, filename string, putter ObjectPutter) *Uploader {
	if filename == "" {
		filename = "reading.parquet"
	}
	return &Uploader{
		Bucket:   bucket,
		Prefix:   strings.Trim(prefix, "/"),
		Filename: filename,
		putter:   putter,
	}
}

// Upload validates the whole roll-up table, then writes one object per day.
// Preconditions are checked before any network write: the bucket must be
// configured and every day value must parse, otherwise nothing is uploaded.
func (u *Uploader) Upload(ctx context.Context, daily []model.DailyRollup) (Result, error) {
	if u.Bucket == "" {
		return Result{}, &ConfigurationError{Setting: "S3 bucket"}
	}

	days := make([]time.Time, len(daily))
	for i, row := range daily {
		day, err := time.Parse(aggregate.DayLayout, row.Day)
		if err != nil {
			return Result{}, fmt.Errorf("daily roll-up contains unparseable day %q", row.Day)
		}
		days[i] = day
	}

	var res Result
	for i, row := range daily {
		blob, err := encodeRow(row)
		if err != nil {
			return res, &SerializationError{Day: row.Day, Err: err}
		}

		key := u.partitionKey(days[i])
		if err := u.putter.Put(ctx, u.Bucket, key, blob, partitionContentType); err != nil {
			return res, fmt.Errorf("uploading partition for day %s (key %s): %w", row.Day, key, err)
		}
		log.Debugw("uploaded daily partition", "day", row.Day, "key", key, "bytes", len(blob))

		res.Objects++
		res.Rows++
	}
	return res, nil
}

func (u *Uploader) partitionKey(day time.Time) string {
	parts := make([]string, 0, 5)
	if u.Prefix != "" {
		parts = append(parts, u.Prefix)
	}
	parts = append(parts,
		fmt.Sprintf("year=%04d", day.Year()),
		fmt.Sprintf("month=%02d", int(day.Month())),
		fmt.Sprintf("day=%02d", day.Day()),
		u.Filename,
	)
	return strings.Join(parts, "/")
}

// encodeRow serializes exactly one roll-up row as a Parquet file in memory.
func encodeRow(row model.DailyRollup) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := parquet.NewGenericWriter[model.DailyRollup](buf)
	if _, err := w.Write([]model.DailyRollup{row}); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
