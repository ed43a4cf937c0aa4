package core

import (
	"time"

	"github.com/cadencehq/cadence/schema"
)

// DedupFilter decides whether a normalized event should be imported or
// skipped. The duplicate check runs against a snapshot of stored external
// ids taken once before the run starts, plus the ids committed earlier in
// the same run: two events in one batch sharing an external id import the
// first occurrence and skip the rest. The future-only check is an
// independent, caller-requested policy, not a hardcoded rule.
type DedupFilter struct {
	snapshot   map[string]struct{}
	committed  map[string]struct{}
	futureOnly bool
	now        time.Time
}

// NewDedupFilter builds a filter over the pre-run snapshot of external ids.
// When futureOnly is set, events whose start is not strictly after now are
// skipped as past.
func NewDedupFilter(snapshot map[string]struct{}, futureOnly bool, now time.Time) *DedupFilter {
	if snapshot == nil {
		snapshot = map[string]struct{}{}
	}
	return &DedupFilter{
		snapshot:   snapshot,
		committed:  make(map[string]struct{}),
		futureOnly: futureOnly,
		now:        now,
	}
}

// Check returns the skip disposition for the event, or ok=true when the
// event should proceed to import. Duplicates are checked before the
// future-only policy so a stale duplicate reports as a duplicate.
func (f *DedupFilter) Check(ev *schema.NormalizedEvent) (schema.Disposition, bool) {
	if _, dup := f.snapshot[ev.ExternalID]; dup {
		return schema.DispositionSkippedDuplicate, false
	}
	if _, dup := f.committed[ev.ExternalID]; dup {
		return schema.DispositionSkippedDuplicate, false
	}
	if f.futureOnly && !ev.StartDateTime.After(f.now) {
		return schema.DispositionSkippedPast, false
	}
	return "", true
}

// Commit registers an external id as imported earlier in this run.
func (f *DedupFilter) Commit(externalID string) {
	f.committed[externalID] = struct{}{}
}
