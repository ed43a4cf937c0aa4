package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteInsightsResults outputs the team insights snapshot, dispatching based on the output format configured.
func WriteInsightsResults(snap *schema.TeamInsightsSnapshot, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snap)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInsightsText(w, snap, cfg)
		}, "Wrote text")
	}
}

// writeInsightsText displays the snapshot in human-readable form: a summary
// block, the per-category table, completion rates and the needs-attention list.
func writeInsightsText(w io.Writer, snap *schema.TeamInsightsSnapshot, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "People: %d\n", snap.TotalPeople); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Meetings: %d this week, %d this month (%s)\n",
		snap.MeetingsThisWeek, snap.MeetingsThisMonth, getTrendLabel(snap.MeetingTrend)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Tasks: %d open, %d overdue\n", snap.OpenTasks, snap.OverdueTasks); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Weekly counts (oldest first): %s\n\n", formatWeeklyCounts(snap.WeeklyMeetingCounts)); err != nil {
		return err
	}

	if err := writeCategoryTable(w, snap.MeetingsByCategory); err != nil {
		return err
	}
	if err := writeCompletionTable(w, snap.CompletionRateByPerson); err != nil {
		return err
	}
	return writeAttentionTable(w, snap.NeedsAttention, cfg)
}

// writeCategoryTable renders the meetings-by-category breakdown in display
// order, skipping categories without meetings.
func writeCategoryTable(w io.Writer, byCategory map[schema.Category]int) error {
	var data [][]string
	for _, cat := range schema.AllCategories {
		if count := byCategory[cat]; count > 0 {
			data = append(data, []string{string(cat), strconv.Itoa(count)})
		}
	}
	if len(data) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Meetings"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCompletionTable renders per-person task completion rates, sorted by
// contact id for a stable order.
func writeCompletionTable(w io.Writer, rates map[string]float64) error {
	if len(rates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(rates))
	for id := range rates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Contact", "Completion"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, id := range ids {
		data = append(data, []string{id, formatRate(rates[id])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeAttentionTable renders the needs-attention list up to the configured
// result limit. Entries arrive pre-sorted by urgency.
func writeAttentionTable(w io.Writer, entries []schema.AttentionEntry, cfg *contract.Config) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Everyone is on track. 🎉")
		return err
	}

	shown := entries
	if cfg.ResultLimit > 0 && len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Contact", "Days Since", "Cadence", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, e := range shown {
		days := "-"
		if e.DaysSinceLastMeeting != schema.NeverMet {
			days = strconv.Itoa(e.DaysSinceLastMeeting)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.ContactName,
			days,
			strconv.Itoa(e.CadenceDays),
			getAttentionLabel(e, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(shown) < len(entries) {
		if _, err := fmt.Fprintf(w, "Showing top %d of %d contacts needing attention\n", len(shown), len(entries)); err != nil {
			return err
		}
	}
	return nil
}

// getAttentionLabel returns the status label for an entry, colored when the
// configuration allows it.
func getAttentionLabel(e schema.AttentionEntry, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorAttentionLabel(e)
	}
	return contract.GetPlainAttentionLabel(e)
}

// getTrendLabel renders the meeting trend with a direction glyph.
func getTrendLabel(trend schema.Trend) string {
	switch trend {
	case schema.TrendIncreasing:
		return "trend ↑"
	case schema.TrendDecreasing:
		return "trend ↓"
	default:
		return "trend →"
	}
}

// formatWeeklyCounts joins the weekly counts into a single display string.
func formatWeeklyCounts(counts []int) string {
	if len(counts) == 0 {
		return "-"
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, " ")
}
