package core

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var insightsNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func meetingAt(scheduled time.Time, category schema.Category, attendeeIDs ...string) schema.MeetingRecord {
	return schema.MeetingRecord{
		ScheduledAt: scheduled,
		Category:    category,
		AttendeeIDs: attendeeIDs,
	}
}

func TestBuildSnapshotCounts(t *testing.T) {
	contacts := []schema.Contact{
		{ID: "c1", Name: "Jane"},
		{ID: "c2", Name: "Bob"},
	}
	meetings := []schema.MeetingRecord{
		meetingAt(insightsNow.AddDate(0, 0, -2), schema.CategoryOneOnOne, "c1"),
		meetingAt(insightsNow.AddDate(0, 0, -6), schema.CategoryStandUp, "c1", "c2"),
		meetingAt(insightsNow.AddDate(0, 0, -20), schema.CategoryOneOnOne, "c2"),
		// Outside the month window entirely.
		meetingAt(insightsNow.AddDate(0, -2, 0), schema.CategoryPlanning, "c1"),
		// Future meetings never count toward this-week or this-month.
		meetingAt(insightsNow.Add(time.Hour), schema.CategoryTeamMeeting, "c1"),
	}

	snap := BuildSnapshot(insightsNow, contacts, meetings, nil, 4, 14)

	assert.Equal(t, 2, snap.TotalPeople)
	assert.Equal(t, 2, snap.MeetingsThisWeek)
	assert.Equal(t, 3, snap.MeetingsThisMonth)
	assert.Equal(t, 2, snap.MeetingsByCategory[schema.CategoryOneOnOne])
	assert.Equal(t, 1, snap.MeetingsByCategory[schema.CategoryStandUp])
	assert.Equal(t, 1, snap.MeetingsByCategory[schema.CategoryPlanning])
}

func TestBuildSnapshotWeeklyBuckets(t *testing.T) {
	meetings := []schema.MeetingRecord{
		// Week -4..-3 (oldest bucket).
		meetingAt(insightsNow.AddDate(0, 0, -22), schema.CategoryTeamMeeting),
		// Week -2..-1.
		meetingAt(insightsNow.AddDate(0, 0, -10), schema.CategoryTeamMeeting),
		meetingAt(insightsNow.AddDate(0, 0, -8), schema.CategoryTeamMeeting),
		// Most recent week, including the inclusive upper bound at now.
		meetingAt(insightsNow.AddDate(0, 0, -3), schema.CategoryTeamMeeting),
		meetingAt(insightsNow, schema.CategoryTeamMeeting),
		// Older than the window: not bucketed anywhere.
		meetingAt(insightsNow.AddDate(0, 0, -40), schema.CategoryTeamMeeting),
	}

	snap := BuildSnapshot(insightsNow, nil, meetings, nil, 4, 14)
	assert.Equal(t, []int{1, 0, 2, 2}, snap.WeeklyMeetingCounts)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		counts   []int
		expected schema.Trend
	}{
		{"rising above threshold", []int{2, 2, 2, 4}, schema.TrendIncreasing},
		{"falling below threshold", []int{4, 4, 4, 1}, schema.TrendDecreasing},
		{"within threshold", []int{3, 3, 3, 3}, schema.TrendFlat},
		{"small bump stays flat", []int{10, 10, 10, 11}, schema.TrendFlat},
		{"zero history with activity", []int{0, 0, 0, 2}, schema.TrendIncreasing},
		{"no activity at all", []int{0, 0, 0, 0}, schema.TrendFlat},
		{"single week", []int{5}, schema.TrendFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trend(tt.counts))
		})
	}
}

func TestBuildSnapshotCompletionRates(t *testing.T) {
	contacts := []schema.Contact{
		{ID: "c1", Name: "Jane"},
		{ID: "c2", Name: "Bob"},
		{ID: "c3", Name: "Ada"},
	}
	tasks := []schema.Task{
		{ID: "t1", ContactID: "c1", Done: true},
		{ID: "t2", ContactID: "c1", Done: false},
		{ID: "t3", ContactID: "c2", Done: false, DueAt: insightsNow.AddDate(0, 0, -1)},
		{ID: "t4", ContactID: "c2", Done: false, DueAt: insightsNow.AddDate(0, 0, 3)},
	}

	snap := BuildSnapshot(insightsNow, contacts, nil, tasks, 4, 14)

	assert.Equal(t, 3, snap.OpenTasks)
	assert.Equal(t, 1, snap.OverdueTasks)

	// Every contact appears, zero assigned tasks yields 0 rather than an
	// absent entry.
	require.Len(t, snap.CompletionRateByPerson, 3)
	assert.InDelta(t, 0.5, snap.CompletionRateByPerson["c1"], 1e-9)
	assert.InDelta(t, 0.0, snap.CompletionRateByPerson["c2"], 1e-9)
	assert.InDelta(t, 0.0, snap.CompletionRateByPerson["c3"], 1e-9)
}

func TestBuildSnapshotNeedsAttention(t *testing.T) {
	contacts := []schema.Contact{
		{ID: "c1", Name: "Jane", CadenceDays: 7},
		{ID: "c2", Name: "Bob"},               // default cadence
		{ID: "c3", Name: "Ada"},               // never met
		{ID: "c4", Name: "Zoe"},               // never met, sorts after Ada by name
		{ID: "c5", Name: "Eli", CadenceDays: 30}, // within cadence
	}
	meetings := []schema.MeetingRecord{
		meetingAt(insightsNow.AddDate(0, 0, -10), schema.CategoryOneOnOne, "c1"),
		meetingAt(insightsNow.AddDate(0, 0, -20), schema.CategoryOneOnOne, "c2"),
		meetingAt(insightsNow.AddDate(0, 0, -5), schema.CategoryOneOnOne, "c5"),
	}

	snap := BuildSnapshot(insightsNow, contacts, meetings, nil, 4, 14)

	require.Len(t, snap.NeedsAttention, 4)
	// Never-met contacts first, name ascending; then descending staleness.
	assert.Equal(t, "c3", snap.NeedsAttention[0].ContactID)
	assert.Equal(t, schema.NeverMet, snap.NeedsAttention[0].DaysSinceLastMeeting)
	assert.Equal(t, "c4", snap.NeedsAttention[1].ContactID)
	assert.Equal(t, "c2", snap.NeedsAttention[2].ContactID)
	assert.Equal(t, 20, snap.NeedsAttention[2].DaysSinceLastMeeting)
	assert.Equal(t, 14, snap.NeedsAttention[2].CadenceDays)
	assert.Equal(t, "c1", snap.NeedsAttention[3].ContactID)
	assert.Equal(t, 10, snap.NeedsAttention[3].DaysSinceLastMeeting)
}

func TestBuildSnapshotFutureMeetingsIgnoredForAttention(t *testing.T) {
	contacts := []schema.Contact{{ID: "c1", Name: "Jane", CadenceDays: 7}}
	meetings := []schema.MeetingRecord{
		meetingAt(insightsNow.AddDate(0, 0, 5), schema.CategoryOneOnOne, "c1"),
	}

	snap := BuildSnapshot(insightsNow, contacts, meetings, nil, 4, 14)

	require.Len(t, snap.NeedsAttention, 1)
	assert.Equal(t, schema.NeverMet, snap.NeedsAttention[0].DaysSinceLastMeeting)
}
