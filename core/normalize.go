// Package core implements the calendar import pipeline and the team
// insights reporter.
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/cadencehq/cadence/schema"
)

// ErrMalformedEvent marks a source event that cannot be normalized.
// Events failing with this error are counted as Failed, not Skipped.
var ErrMalformedEvent = errors.New("malformed event")

// UntitledSubject is the fallback title for events with no subject field
// in any supported naming convention.
const UntitledSubject = "Untitled"

// Candidate key chains per logical field, probed in order. The PascalCase
// key comes first (Graph-style exports), then the camelCase key
// (Google-style exports). First present non-empty value wins.
var (
	externalIDKeys  = []string{"Id", "id", "ICalUId", "iCalUId", "iCalUID"}
	subjectKeys     = []string{"Subject", "subject", "Summary", "summary"}
	bodyKeys        = []string{"BodyPreview", "bodyPreview", "Description", "description"}
	timeZoneKeys    = []string{"TimeZone", "timeZone"}
	dateTimeKeys    = []string{"DateTime", "dateTime"}
	startObjKeys    = []string{"Start", "start"}
	endObjKeys      = []string{"End", "end"}
	startFlatKeys   = []string{"StartDateTime", "startDateTime"}
	endFlatKeys     = []string{"EndDateTime", "endDateTime"}
	locationObjKeys = []string{"Location", "location"}
	displayNameKeys = []string{"DisplayName", "displayName"}
	attendeeKeys    = []string{"Attendees", "attendees"}
	emailObjKeys    = []string{"EmailAddress", "emailAddress"}
	addressKeys     = []string{"Address", "address", "Email", "email"}
	nameKeys        = []string{"Name", "name", "DisplayName", "displayName"}
	recurrenceKeys  = []string{"Recurrence", "recurrence", "RecurringEventId", "recurringEventId"}
)

// Timestamp layouts tried in order: ISO-8601 with fractional seconds,
// ISO-8601 without, then a locale-independent fixed layout interpreted in
// the event's declared zone. First successful parse wins; there is no
// partial parsing.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
}

// zonelessLayout covers the Graph-style "2017-08-29T04:00:00.0000000"
// shape: no offset, optional fractional seconds, zone declared separately.
const zonelessLayout = "2006-01-02T15:04:05.999999999"

// Normalizer converts heterogeneous source event shapes into the canonical
// NormalizedEvent form.
type Normalizer struct {
	defaultZone *time.Location
}

// NewNormalizer returns a Normalizer that falls back to defaultZone for
// events that declare no time zone of their own.
func NewNormalizer(defaultZone *time.Location) *Normalizer {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &Normalizer{defaultZone: defaultZone}
}

// Normalize converts one raw source event into a NormalizedEvent.
// External id and both timestamps are critical: absence or an unparsable
// value rejects the whole event with ErrMalformedEvent. Non-critical
// fields fall back to defaults (subject to "Untitled", body and location
// to absent). Attendee casing is preserved verbatim; the matcher owns
// case folding.
func (n *Normalizer) Normalize(ev schema.SourceEvent) (*schema.NormalizedEvent, error) {
	externalID, ok := lookupString(ev, externalIDKeys)
	if !ok || externalID == "" {
		return nil, fmt.Errorf("%w: missing external id", ErrMalformedEvent)
	}

	subject, ok := lookupString(ev, subjectKeys)
	if !ok || subject == "" {
		subject = UntitledSubject
	}

	startRaw, startZone := lookupDateTime(ev, startObjKeys, startFlatKeys)
	endRaw, endZone := lookupDateTime(ev, endObjKeys, endFlatKeys)
	if startRaw == "" || endRaw == "" {
		return nil, fmt.Errorf("%w %q: missing start or end time", ErrMalformedEvent, externalID)
	}

	// The event-level zone applies to both boundaries unless each carries
	// its own declaration.
	eventZone, _ := lookupString(ev, timeZoneKeys)
	if startZone == "" {
		startZone = eventZone
	}
	if endZone == "" {
		endZone = eventZone
	}

	start, err := n.parseTimestamp(startRaw, startZone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: start time: %v", ErrMalformedEvent, externalID, err)
	}
	end, err := n.parseTimestamp(endRaw, endZone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: end time: %v", ErrMalformedEvent, externalID, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w %q: end time precedes start time", ErrMalformedEvent, externalID)
	}

	out := &schema.NormalizedEvent{
		ExternalID:    externalID,
		Subject:       subject,
		StartDateTime: start,
		EndDateTime:   end,
		TimeZone:      firstNonEmpty(startZone, eventZone),
		Attendees:     lookupAttendees(ev),
		IsRecurring:   lookupRecurring(ev),
	}
	if body, ok := lookupString(ev, bodyKeys); ok {
		out.BodyPreview = body
	}
	out.LocationName = lookupLocation(ev)

	return out, nil
}

// parseTimestamp tries the supported layouts in order. The zoneless
// fallback layout is interpreted in the event's declared zone, or the
// importer default when the zone is absent or unknown.
func (n *Normalizer) parseTimestamp(raw, zoneName string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	loc := n.defaultZone
	if zoneName != "" {
		if l, err := time.LoadLocation(zoneName); err == nil {
			loc = l
		}
	}
	if t, err := time.ParseInLocation(zonelessLayout, raw, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", raw)
}

// lookupString probes the candidate keys in order and returns the first
// present non-empty string value.
func lookupString(ev map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := ev[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// lookupObject probes the candidate keys in order for a nested object.
func lookupObject(ev map[string]any, keys []string) (map[string]any, bool) {
	for _, k := range keys {
		if v, ok := ev[k]; ok {
			if obj, ok := v.(map[string]any); ok {
				return obj, true
			}
		}
	}
	return nil, false
}

// lookupDateTime extracts a raw timestamp string and an optional zone name
// from either the nested shape ({Start: {DateTime, TimeZone}}) or the flat
// shape (StartDateTime).
func lookupDateTime(ev map[string]any, objKeys, flatKeys []string) (raw, zone string) {
	if obj, ok := lookupObject(ev, objKeys); ok {
		raw, _ = lookupString(obj, dateTimeKeys)
		zone, _ = lookupString(obj, timeZoneKeys)
		if raw != "" {
			return raw, zone
		}
	}
	raw, _ = lookupString(ev, flatKeys)
	return raw, ""
}

// lookupLocation accepts both the nested shape ({Location: {DisplayName}})
// and a plain string location.
func lookupLocation(ev map[string]any) string {
	if obj, ok := lookupObject(ev, locationObjKeys); ok {
		name, _ := lookupString(obj, displayNameKeys)
		return name
	}
	name, _ := lookupString(ev, locationObjKeys)
	return name
}

// lookupAttendees extracts the participant list. Graph-style entries nest
// the identity under EmailAddress; Google-style entries carry email and
// displayName at the top level. Entries that yield neither a name nor an
// email are dropped.
func lookupAttendees(ev map[string]any) []schema.EventAttendee {
	var rawList []any
	for _, k := range attendeeKeys {
		if v, ok := ev[k]; ok {
			if list, ok := v.([]any); ok {
				rawList = list
				break
			}
		}
	}

	var out []schema.EventAttendee
	for _, entry := range rawList {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var att schema.EventAttendee
		if emailObj, ok := lookupObject(obj, emailObjKeys); ok {
			att.Email, _ = lookupString(emailObj, addressKeys)
			att.Name, _ = lookupString(emailObj, nameKeys)
		} else {
			att.Email, _ = lookupString(obj, addressKeys)
			att.Name, _ = lookupString(obj, nameKeys)
		}
		if att.Email == "" && att.Name == "" {
			continue
		}
		out = append(out, att)
	}
	return out
}

// lookupRecurring reports whether the event is part of a recurring series
// in either source shape: a non-null Recurrence object (Graph) or a
// recurringEventId / recurrence list (Google).
func lookupRecurring(ev map[string]any) bool {
	for _, k := range recurrenceKeys {
		if v, ok := ev[k]; ok && v != nil {
			switch val := v.(type) {
			case string:
				if val != "" {
					return true
				}
			case []any:
				if len(val) > 0 {
					return true
				}
			case map[string]any:
				return true
			}
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
