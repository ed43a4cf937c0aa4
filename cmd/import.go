package cmd

import (
	"errors"

	"github.com/cadencehq/cadence/core"
	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/internal/feed"
	"github.com/cadencehq/cadence/internal/meetstore"
	"github.com/cadencehq/cadence/internal/outwriter"
	"github.com/cadencehq/cadence/schema"
	"github.com/spf13/cobra"
)

// importCmd imports a calendar export into the meeting store.
var importCmd = &cobra.Command{
	Use:   "import <input-path>",
	Short: "Import a calendar export into the meeting store.",
	Long: `Import meetings from a calendar export file or directory.

Supported flavors:
- Microsoft Graph JSON exports ("value" wrapper, PascalCase keys)
- Google Calendar JSON exports ("items" wrapper, camelCase keys)
- ICS files (RFC 5545)

The flavor is sniffed per file by default; use --source to force one.
Events already in the store are skipped by external id, so re-running an
import is safe. Use --dry-run to preview without committing.

Examples:
  # Import a Google Calendar export
  cadence import takeout/calendar.json

  # Preview what a directory of ICS files would add
  cadence import exports/ --source ics --dry-run

  # Only future events, in your local zone
  cadence import export.json --future-only --timezone America/New_York`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeImport(); err != nil {
			contract.LogFatal("Cannot run import", err)
		}
	},
}

// executeImport wires the feed, store and importer together for one run.
func executeImport() error {
	if cfg.InputPath == "" {
		return errors.New("input path is required (file or directory with calendar exports)")
	}

	store := meetstore.Manager.Get()
	if store == nil {
		return errors.New("meeting store is not initialized")
	}

	eventFeed, err := feed.Open(cfg.Source, cfg.InputPath)
	if err != nil {
		return err
	}

	// Headers pollute machine-readable output.
	if cfg.Output == schema.TextOut && cfg.OutputFile == "" {
		outwriter.LogImportHeader(cfg)
	}

	importer := core.NewImporter(cfg, eventFeed, store.Meetings(), store.Contacts(),
		core.WithRunStore(store.Runs()),
	)
	outcome, err := importer.Run(rootCtx)
	if err != nil {
		return err
	}

	return outwriter.WriteImportResults(outcome, cfg)
}
