// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteImportOutcome prints the result of an import run using the configured output format.
func (ow *OutWriter) WriteImportOutcome(outcome *schema.ImportOutcome, cfg *contract.Config) error {
	return WriteImportResults(outcome, cfg)
}

// WriteInsights prints a team insights snapshot using the configured output format.
func (ow *OutWriter) WriteInsights(snap *schema.TeamInsightsSnapshot, cfg *contract.Config) error {
	return WriteInsightsResults(snap, cfg)
}

// WriteContacts prints the contact directory using the configured output format.
func (ow *OutWriter) WriteContacts(contacts []schema.Contact, cfg *contract.Config) error {
	return WriteContactList(contacts, cfg)
}

// WriteTasks prints the task list using the configured output format.
func (ow *OutWriter) WriteTasks(tasks []schema.Task, cfg *contract.Config) error {
	return WriteTaskList(tasks, cfg)
}

// getMaxTableTitleWidth calculates the maximum width for meeting titles in
// table output based on terminal width and table configuration.
func getMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting:
	// Rank + When + Duration + Category + Attendees with borders/padding
	baseWidth := 45

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	// Calculate available space for the title
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable title width
		return 15
	}
	if available > 70 {
		// Maximum title width to prevent overly long titles
		return 70
	}
	return available
}
