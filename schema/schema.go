// Package schema has configs, models and shared types for all parts of cadence.
package schema

import "time"

// SourceEvent is one raw event object decoded from a calendar export,
// before normalization. Field naming depends on the source system
// (PascalCase for Graph-style exports, camelCase for Google-style ones),
// so the normalizer probes candidate keys rather than binding to a struct.
type SourceEvent map[string]any

// EventAttendee is one participant entry on a normalized event.
// Name and Email keep their source casing; email comparison is done
// case-insensitively by the matcher, not here.
type EventAttendee struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// NormalizedEvent is the canonical event shape produced by the normalizer,
// independent of the source field-naming convention.
type NormalizedEvent struct {
	ExternalID    string          `json:"external_id"`
	Subject       string          `json:"subject"`
	StartDateTime time.Time       `json:"start_date_time"`
	EndDateTime   time.Time       `json:"end_date_time"`
	TimeZone      string          `json:"time_zone"`
	LocationName  string          `json:"location_name,omitempty"`
	BodyPreview   string          `json:"body_preview,omitempty"`
	Attendees     []EventAttendee `json:"attendees"`
	IsRecurring   bool            `json:"is_recurring"`
}

// Duration returns the event length. It is never negative for events
// that passed normalization.
func (e *NormalizedEvent) Duration() time.Duration {
	return e.EndDateTime.Sub(e.StartDateTime)
}
