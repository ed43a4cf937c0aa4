package feed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
	"github.com/emersion/go-ical"
)

// ICSFeed reads calendar events from iCalendar files. Each VEVENT is
// flattened into the same raw key/value shape the JSON feeds produce, so
// the rest of the pipeline never sees iCalendar structure.
type ICSFeed struct {
	path string
}

var _ contract.EventFeed = &ICSFeed{} // Compile-time check

// NewICSFeed returns a feed over the iCalendar export at path.
func NewICSFeed(path string) *ICSFeed {
	return &ICSFeed{path: path}
}

// Kind identifies the source flavor.
func (f *ICSFeed) Kind() schema.SourceKind {
	return schema.ICSSource
}

// Fetch decodes every calendar in every file and returns the VEVENTs in
// file order. Non-event components (VTIMEZONE, VTODO) are skipped.
func (f *ICSFeed) Fetch(ctx context.Context) ([]schema.SourceEvent, error) {
	files, err := collectFiles(f.path, ".ics")
	if err != nil {
		return nil, err
	}

	var events []schema.SourceEvent
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileEvents, err := readICSExport(file)
		if err != nil {
			return nil, err
		}
		events = append(events, fileEvents...)
	}
	return events, nil
}

func readICSExport(path string) ([]schema.SourceEvent, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read export file %q: %w", path, err)
	}
	defer func() { _ = fh.Close() }()

	decoder := ical.NewDecoder(fh)
	var events []schema.SourceEvent
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export file %q is not valid iCalendar data: %w", path, err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			events = append(events, flattenEvent(comp))
		}
	}
	return events, nil
}

// flattenEvent converts one VEVENT component into the raw event shape.
// Timestamps are re-emitted as RFC 3339 so the downstream parsing path is
// identical for all source flavors. Properties that fail to parse are
// left out; the normalizer decides whether the event is still usable.
func flattenEvent(comp *ical.Component) schema.SourceEvent {
	ev := schema.SourceEvent{}

	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		ev["id"] = prop.Value
	}
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		ev["subject"] = prop.Value
	}
	if prop := comp.Props.Get(ical.PropDescription); prop != nil {
		ev["description"] = prop.Value
	}
	if prop := comp.Props.Get(ical.PropLocation); prop != nil {
		ev["location"] = prop.Value
	}

	if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil {
		if t, err := prop.DateTime(time.UTC); err == nil {
			ev["start"] = map[string]any{"dateTime": t.Format(time.RFC3339)}
		}
	}
	if prop := comp.Props.Get(ical.PropDateTimeEnd); prop != nil {
		if t, err := prop.DateTime(time.UTC); err == nil {
			ev["end"] = map[string]any{"dateTime": t.Format(time.RFC3339)}
		}
	}

	if attendees := comp.Props[ical.PropAttendee]; len(attendees) > 0 {
		list := make([]any, 0, len(attendees))
		for _, prop := range attendees {
			entry := map[string]any{}
			if email := strings.TrimPrefix(strings.TrimPrefix(prop.Value, "mailto:"), "MAILTO:"); email != "" {
				entry["email"] = email
			}
			if name := prop.Params.Get(ical.ParamCommonName); name != "" {
				entry["name"] = name
			}
			if len(entry) > 0 {
				list = append(list, entry)
			}
		}
		if len(list) > 0 {
			ev["attendees"] = list
		}
	}

	if prop := comp.Props.Get(ical.PropRecurrenceRule); prop != nil {
		ev["recurrence"] = []any{prop.Value}
	}

	return ev
}
