package core

import (
	"sort"
	"time"

	"github.com/cadencehq/cadence/schema"
)

// trendThreshold is the relative deviation of the latest weekly count from
// the mean of the preceding weeks required to call a trend. The property
// that matters is monotonic comparison, not the literal value.
const trendThreshold = 0.15

// BuildSnapshot computes the derived team insights over the current
// meeting, task and contact collections. Pure read-side computation: no
// side effects, safe to call repeatedly. The snapshot goes stale after any
// mutation to the source collections until the next recompute.
//
// Weekly and monthly windows use calendar arithmetic (AddDate), so callers
// should treat the boundaries as calendar-day granularity rather than
// millisecond-precise offsets. defaultCadence applies to contacts without
// a configured cadence of their own.
func BuildSnapshot(
	now time.Time,
	contacts []schema.Contact,
	meetings []schema.MeetingRecord,
	tasks []schema.Task,
	windowWeeks int,
	defaultCadence int,
) *schema.TeamInsightsSnapshot {
	if windowWeeks < 2 {
		windowWeeks = 2
	}

	snap := &schema.TeamInsightsSnapshot{
		GeneratedAt:            now,
		TotalPeople:            len(contacts),
		MeetingsByCategory:     make(map[schema.Category]int),
		CompletionRateByPerson: make(map[string]float64),
	}

	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)
	lastMeeting := make(map[string]time.Time)

	for _, m := range meetings {
		snap.MeetingsByCategory[m.Category]++
		if !m.ScheduledAt.Before(weekAgo) && !m.ScheduledAt.After(now) {
			snap.MeetingsThisWeek++
		}
		if !m.ScheduledAt.Before(monthAgo) && !m.ScheduledAt.After(now) {
			snap.MeetingsThisMonth++
		}
		for _, id := range m.AttendeeIDs {
			if m.ScheduledAt.After(lastMeeting[id]) && !m.ScheduledAt.After(now) {
				lastMeeting[id] = m.ScheduledAt
			}
		}
	}

	snap.WeeklyMeetingCounts = weeklyCounts(now, meetings, windowWeeks)
	snap.MeetingTrend = trend(snap.WeeklyMeetingCounts)

	// Completion rates: every contact id is present in the mapping, and
	// zero assigned tasks means a rate of 0, not an absent entry.
	assigned := make(map[string]int)
	completed := make(map[string]int)
	for _, t := range tasks {
		assigned[t.ContactID]++
		if t.Done {
			completed[t.ContactID]++
		} else {
			snap.OpenTasks++
			if t.Overdue(now) {
				snap.OverdueTasks++
			}
		}
	}
	for _, c := range contacts {
		rate := 0.0
		if assigned[c.ID] > 0 {
			rate = float64(completed[c.ID]) / float64(assigned[c.ID])
		}
		snap.CompletionRateByPerson[c.ID] = rate
	}

	snap.NeedsAttention = needsAttention(now, contacts, lastMeeting, defaultCadence)
	return snap
}

// weeklyCounts buckets meetings into the trailing window of whole weeks,
// oldest week first. Week boundaries use calendar-day arithmetic.
func weeklyCounts(now time.Time, meetings []schema.MeetingRecord, windowWeeks int) []int {
	counts := make([]int, windowWeeks)
	for _, m := range meetings {
		for i := range windowWeeks {
			// Bucket i covers (now - (windowWeeks-i)*7d, now - (windowWeeks-i-1)*7d].
			lower := now.AddDate(0, 0, -7*(windowWeeks-i))
			upper := now.AddDate(0, 0, -7*(windowWeeks-i-1))
			if m.ScheduledAt.After(lower) && !m.ScheduledAt.After(upper) {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// trend compares the most recent weekly count to the mean of the
// preceding weeks in the window.
func trend(counts []int) schema.Trend {
	if len(counts) < 2 {
		return schema.TrendFlat
	}

	latest := float64(counts[len(counts)-1])
	sum := 0
	for _, c := range counts[:len(counts)-1] {
		sum += c
	}
	mean := float64(sum) / float64(len(counts)-1)

	if mean == 0 {
		if latest > 0 {
			return schema.TrendIncreasing
		}
		return schema.TrendFlat
	}

	switch ratio := (latest - mean) / mean; {
	case ratio > trendThreshold:
		return schema.TrendIncreasing
	case ratio < -trendThreshold:
		return schema.TrendDecreasing
	default:
		return schema.TrendFlat
	}
}

// needsAttention lists contacts with no meeting ever, or whose
// days-since-last-meeting exceeds their cadence. Never-met contacts sort
// first, then descending days-since; name breaks ties for stable output.
func needsAttention(
	now time.Time,
	contacts []schema.Contact,
	lastMeeting map[string]time.Time,
	defaultCadence int,
) []schema.AttentionEntry {
	var entries []schema.AttentionEntry
	for _, c := range contacts {
		cadence := c.CadenceDays
		if cadence <= 0 {
			cadence = defaultCadence
		}

		last, met := lastMeeting[c.ID]
		if !met {
			entries = append(entries, schema.AttentionEntry{
				ContactID:            c.ID,
				ContactName:          c.Name,
				DaysSinceLastMeeting: schema.NeverMet,
				CadenceDays:          cadence,
			})
			continue
		}

		days := int(now.Sub(last).Hours() / 24)
		if days > cadence {
			entries = append(entries, schema.AttentionEntry{
				ContactID:            c.ID,
				ContactName:          c.Name,
				DaysSinceLastMeeting: days,
				CadenceDays:          cadence,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		aNever := a.DaysSinceLastMeeting == schema.NeverMet
		bNever := b.DaysSinceLastMeeting == schema.NeverMet
		if aNever != bNever {
			return aNever
		}
		if a.DaysSinceLastMeeting != b.DaysSinceLastMeeting {
			return a.DaysSinceLastMeeting > b.DaysSinceLastMeeting
		}
		return a.ContactName < b.ContactName
	})
	return entries
}
