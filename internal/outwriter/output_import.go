package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteImportResults outputs the import outcome, dispatching based on the output format configured.
func WriteImportResults(outcome *schema.ImportOutcome, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForImport(w, outcome, cfg)
		}, "Wrote JSON")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImportTable(w, outcome, cfg)
		}, "Wrote table")
	}
}

// writeImportTable generates and writes the human-readable table.
func writeImportTable(w io.Writer, outcome *schema.ImportOutcome, cfg *contract.Config) error {
	if len(outcome.ImportedRecords) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Title", "When", "Duration", "Category", "Attendees"})

		// Configure separators/borders to match a minimal look
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		titleWidth := getMaxTableTitleWidth(cfg)
		var data [][]string
		for i, rec := range outcome.ImportedRecords {
			row := []string{
				strconv.Itoa(i + 1),
				contract.TruncateText(rec.Title, titleWidth),
				rec.ScheduledAt.In(cfg.TimeZone).Format("2006-01-02 15:04"),
				formatDurationSeconds(rec.DurationSeconds),
				string(rec.Category),
				strconv.Itoa(len(rec.AttendeeIDs)),
			}
			data = append(data, row)
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	verb := "Imported"
	if cfg.DryRun {
		verb = "Would import"
	}
	if _, err := fmt.Fprintf(w, "%s %d of %d events (skipped: %d, failed: %d)\n",
		verb, outcome.ImportedCount, outcome.Total(), outcome.SkippedCount, outcome.FailedCount); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForImport writes the import outcome in JSON format.
func writeJSONResultsForImport(w io.Writer, outcome *schema.ImportOutcome, cfg *contract.Config) error {
	// Wrap the outcome so the JSON carries the run totals and mode alongside
	// the imported records.
	type JSONImportOutcome struct {
		TotalEvents int  `json:"total_events"`
		DryRun      bool `json:"dry_run"`
		schema.ImportOutcome
	}

	return writeJSON(w, JSONImportOutcome{
		TotalEvents:   outcome.Total(),
		DryRun:        cfg.DryRun,
		ImportOutcome: *outcome,
	})
}
