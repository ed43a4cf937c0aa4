package core

import (
	"sort"
	"strings"

	"github.com/cadencehq/cadence/schema"
)

// MatchAttendees resolves an event's participant list to known contact ids
// by email equality. Comparison is case-insensitive exact string equality
// after lowercasing both sides; there is no fuzzy name matching. Attendees
// with an absent or empty email cannot match and are ignored. Multiple
// attendees resolving to the same contact collapse to one id; the result
// is sorted for deterministic output.
func MatchAttendees(attendees []schema.EventAttendee, contacts []schema.Contact) []string {
	byEmail := make(map[string]string, len(contacts))
	for _, c := range contacts {
		if c.Email == "" {
			continue
		}
		byEmail[strings.ToLower(c.Email)] = c.ID
	}

	seen := make(map[string]struct{})
	for _, att := range attendees {
		if att.Email == "" {
			continue
		}
		if id, ok := byEmail[strings.ToLower(att.Email)]; ok {
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
