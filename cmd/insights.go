package cmd

import (
	"errors"
	"time"

	"github.com/cadencehq/cadence/core"
	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/internal/meetstore"
	"github.com/cadencehq/cadence/internal/outwriter"
	"github.com/cadencehq/cadence/schema"
	"github.com/spf13/cobra"
)

// insightsCmd computes the team insights snapshot.
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show team meeting insights and who needs attention.",
	Long: `Compute a derived snapshot over stored meetings, contacts and tasks.

The snapshot includes:
- Meeting counts for the trailing week and month
- Weekly counts over the configured window, with a trend direction
- Meetings broken down by category
- Per-person task completion rates
- A needs-attention list: contacts whose last meeting is older than
  their cadence, or who have never been met

The snapshot is recomputed in full on every invocation; it has no
storage of its own.

Examples:
  # Default 8-week window
  cadence insights

  # Wider window, stricter cadence, machine-readable
  cadence insights --window-weeks 12 --cadence-days 7 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeInsights(); err != nil {
			contract.LogFatal("Cannot run insights", err)
		}
	},
}

// executeInsights gathers the source collections and renders the snapshot.
func executeInsights() error {
	store := meetstore.Manager.Get()
	if store == nil {
		return errors.New("meeting store is not initialized")
	}

	contacts, err := store.Contacts().ListContacts(rootCtx)
	if err != nil {
		return err
	}
	meetings, err := store.Meetings().ListMeetings(rootCtx)
	if err != nil {
		return err
	}
	tasks, err := store.Tasks().ListTasks(rootCtx)
	if err != nil {
		return err
	}

	snap := core.BuildSnapshot(time.Now(), contacts, meetings, tasks, cfg.WindowWeeks, cfg.CadenceDays)

	if cfg.Output == schema.TextOut && cfg.OutputFile == "" {
		outwriter.LogInsightsHeader(cfg, snap.GeneratedAt)
	}

	return outwriter.WriteInsightsResults(snap, cfg)
}
