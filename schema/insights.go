package schema

import "time"

// Trend is the direction of the weekly meeting count relative to the
// preceding weeks in the window.
type Trend string

// All trend directions.
const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendFlat       Trend = "flat"
)

// NeverMet is the days-since-last-meeting sentinel for contacts with no
// recorded meeting at all.
const NeverMet = -1

// AttentionEntry is one row of the needs-attention list: a contact whose
// last meeting is older than their configured cadence, or who has never
// been met.
type AttentionEntry struct {
	ContactID            string `json:"contact_id"`
	ContactName          string `json:"contact_name"`
	DaysSinceLastMeeting int    `json:"days_since_last_meeting"` // NeverMet when no meeting exists
	CadenceDays          int    `json:"cadence_days"`
}

// TeamInsightsSnapshot is the derived read-side view over the meeting,
// task and contact collections. It has no identity of its own and is
// recomputed in full on demand; it goes stale after any mutation to the
// source collections.
type TeamInsightsSnapshot struct {
	GeneratedAt            time.Time          `json:"generated_at"`
	TotalPeople            int                `json:"total_people"`
	MeetingsThisWeek       int                `json:"meetings_this_week"`
	MeetingsThisMonth      int                `json:"meetings_this_month"`
	OpenTasks              int                `json:"open_tasks"`
	OverdueTasks           int                `json:"overdue_tasks"`
	WeeklyMeetingCounts    []int              `json:"weekly_meeting_counts"` // oldest week first
	MeetingTrend           Trend              `json:"meeting_trend"`
	MeetingsByCategory     map[Category]int   `json:"meetings_by_category"`
	CompletionRateByPerson map[string]float64 `json:"completion_rate_by_person"`
	NeedsAttention         []AttentionEntry   `json:"needs_attention"`
}
