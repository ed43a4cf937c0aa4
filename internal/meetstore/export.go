package meetstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cadencehq/cadence/internal/parquet"
)

// ExecuteStoreExport performs the actual export of meeting and import-run
// data to Parquet files.
func ExecuteStoreExport(ctx context.Context, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.Get()
	if store == nil {
		return errors.New("meeting store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalMeetings == 0 && status.TotalRuns == 0 {
		return errors.New("no meeting data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total meetings: %d\n", status.TotalMeetings)
	fmt.Printf("Total import runs: %d\n", status.TotalRuns)

	meetings, err := store.Meetings().ListMeetings(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve meetings: %w", err)
	}
	runs, err := store.Runs().ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve import runs: %w", err)
	}

	// Convert to Parquet format
	parquetMeetings := parquet.ConvertMeetingRecords(meetings)
	parquetRuns := parquet.ConvertImportRuns(runs)

	// Write meetings to Parquet
	meetingsFile := outputFile + ".meetings.parquet"
	if err := parquet.WriteMeetingsParquet(parquetMeetings, meetingsFile); err != nil {
		return fmt.Errorf("failed to write meetings: %w", err)
	}
	fmt.Printf("Exported %d meetings to: %s\n", len(parquetMeetings), meetingsFile)

	// Write import runs to Parquet
	runsFile := outputFile + ".import_runs.parquet"
	if err := parquet.WriteImportRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write import runs: %w", err)
	}
	fmt.Printf("Exported %d import runs to: %s\n", len(parquetRuns), runsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
