// Package parquet provides data structures and functions for exporting
// meeting and import-run data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cadencehq/cadence/schema"
	"github.com/parquet-go/parquet-go"
)

// Meeting represents a single stored meeting for export.
// This struct maps to the cadence_meetings database table.
type Meeting struct {
	// ID is the internal identifier of the meeting
	ID string `parquet:"id,snappy"`

	// Title is the meeting title after normalization
	Title string `parquet:"title,snappy"`

	// ScheduledAt is the meeting start time (stored as TIMESTAMP with nanosecond precision)
	ScheduledAt time.Time `parquet:"scheduled_at,snappy"`

	// DurationSeconds is the scheduled length of the meeting
	DurationSeconds int64 `parquet:"duration_seconds,snappy"`

	// AttendeeIDs is the comma-joined list of matched contact ids
	AttendeeIDs string `parquet:"attendee_ids,snappy"`

	// Category is the classified meeting type
	Category string `parquet:"category,snappy"`

	// LocationName is the meeting location (nullable)
	LocationName *string `parquet:"location_name,optional,snappy"`

	// ExternalID is the source calendar's event id
	ExternalID string `parquet:"external_id,snappy"`

	// CreatedAt is when the record was imported
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ImportRun represents one import invocation for export.
// This struct maps to the cadence_import_runs database table.
type ImportRun struct {
	// RunID is the unique identifier for this import run
	RunID int64 `parquet:"run_id,snappy"`

	// StartedAt is when the run began
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the run completed
	FinishedAt time.Time `parquet:"finished_at,snappy"`

	// Source is the calendar export flavor that fed the run
	Source string `parquet:"source,snappy"`

	// Imported is the number of events committed
	Imported int32 `parquet:"imported,snappy"`

	// Skipped is the number of events skipped by policy
	Skipped int32 `parquet:"skipped,snappy"`

	// Failed is the number of events that failed normalization or storage
	Failed int32 `parquet:"failed,snappy"`
}

// WriteMeetingsParquet writes a slice of Meeting structs to a Parquet file.
func WriteMeetingsParquet(data []Meeting, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Meeting struct tags
	writer := parquet.NewGenericWriter[Meeting](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteImportRunsParquet writes a slice of ImportRun structs to a Parquet file.
func WriteImportRunsParquet(data []ImportRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ImportRun struct tags
	writer := parquet.NewGenericWriter[ImportRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertMeetingRecords converts schema.MeetingRecord to Meeting for Parquet export.
func ConvertMeetingRecords(records []schema.MeetingRecord) []Meeting {
	result := make([]Meeting, len(records))
	for i, record := range records {
		m := Meeting{
			ID:              record.ID,
			Title:           record.Title,
			ScheduledAt:     record.ScheduledAt,
			DurationSeconds: record.DurationSeconds,
			AttendeeIDs:     strings.Join(record.AttendeeIDs, ","),
			Category:        string(record.Category),
			ExternalID:      record.ExternalID,
			CreatedAt:       record.CreatedAt,
		}
		if record.LocationName != "" {
			loc := record.LocationName
			m.LocationName = &loc
		}
		result[i] = m
	}
	return result
}

// ConvertImportRuns converts schema.ImportRun to ImportRun for Parquet export.
func ConvertImportRuns(records []schema.ImportRun) []ImportRun {
	result := make([]ImportRun, len(records))
	for i, record := range records {
		result[i] = ImportRun{
			RunID:      record.ID,
			StartedAt:  record.StartedAt,
			FinishedAt: record.FinishedAt,
			Source:     record.Source,
			Imported:   int32(record.Imported),
			Skipped:    int32(record.Skipped),
			Failed:     int32(record.Failed),
		}
	}
	return result
}
