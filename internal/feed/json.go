package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
)

// Wrapper keys used by the two JSON export flavors. Graph responses wrap
// the event list in "value"; Google exports wrap it in "items".
const (
	graphWrapperKey = "value"
	gcalWrapperKey  = "items"
)

// JSONFeed reads calendar events from JSON export files. It accepts a
// single file or a directory of .json files and leaves every event as the
// raw key/value shape the exporter produced; field naming differences are
// the normalizer's problem, not the feed's.
type JSONFeed struct {
	kind schema.SourceKind
	path string
}

var _ contract.EventFeed = &JSONFeed{} // Compile-time check

// NewJSONFeed returns a feed over the JSON export at path.
func NewJSONFeed(kind schema.SourceKind, path string) *JSONFeed {
	return &JSONFeed{kind: kind, path: path}
}

// Kind identifies the source flavor.
func (f *JSONFeed) Kind() schema.SourceKind {
	return f.kind
}

// Fetch reads every export file and concatenates their events in file
// order. Any unreadable or undecodable file fails the whole fetch.
func (f *JSONFeed) Fetch(ctx context.Context) ([]schema.SourceEvent, error) {
	files, err := collectFiles(f.path, ".json")
	if err != nil {
		return nil, err
	}

	var events []schema.SourceEvent
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileEvents, err := readJSONExport(file)
		if err != nil {
			return nil, err
		}
		events = append(events, fileEvents...)
	}
	return events, nil
}

// readJSONExport decodes one export file. Supported shapes: a bare array
// of events, a wrapper object holding the array under "value" or "items",
// or a single event object.
func readJSONExport(path string) ([]schema.SourceEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read export file %q: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("export file %q is not valid JSON: %w", path, err)
	}

	switch v := raw.(type) {
	case []any:
		return toEvents(path, v)
	case map[string]any:
		for _, key := range []string{graphWrapperKey, gcalWrapperKey} {
			if list, ok := v[key].([]any); ok {
				return toEvents(path, list)
			}
		}
		// A single bare event object.
		return []schema.SourceEvent{schema.SourceEvent(v)}, nil
	default:
		return nil, fmt.Errorf("export file %q: expected an event array or wrapper object", path)
	}
}

func toEvents(path string, list []any) ([]schema.SourceEvent, error) {
	events := make([]schema.SourceEvent, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("export file %q: entry %d is not an event object", path, i)
		}
		events = append(events, schema.SourceEvent(obj))
	}
	return events, nil
}

// sniffJSONKind peeks at one JSON export file and decides whether it is a
// Graph or Google flavor. Wrapper keys decide first; bare arrays fall back
// to the field casing of the first event.
func sniffJSONKind(path string) (schema.SourceKind, error) {
	events, err := readJSONExport(path)
	if err != nil {
		return schema.AutoSource, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema.AutoSource, fmt.Errorf("cannot read export file %q: %w", path, err)
	}
	var wrapper map[string]any
	if json.Unmarshal(data, &wrapper) == nil {
		if _, ok := wrapper[graphWrapperKey]; ok {
			return schema.GraphSource, nil
		}
		if _, ok := wrapper[gcalWrapperKey]; ok {
			return schema.GcalSource, nil
		}
	}

	if len(events) > 0 {
		for _, key := range []string{"Id", "Subject", "Start"} {
			if _, ok := events[0][key]; ok {
				return schema.GraphSource, nil
			}
		}
	}
	return schema.GcalSource, nil
}
