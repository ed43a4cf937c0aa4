package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cadencehq/cadence/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const graphExport = `{
	"value": [
		{"Id": "g-1", "Subject": "Weekly sync", "Start": {"DateTime": "2026-09-07T10:00:00.0000000", "TimeZone": "UTC"}},
		{"Id": "g-2", "Subject": "Planning", "Start": {"DateTime": "2026-09-08T10:00:00.0000000", "TimeZone": "UTC"}}
	]
}`

const gcalExport = `{
	"items": [
		{"id": "c-1", "summary": "Standup", "start": {"dateTime": "2026-09-07T09:00:00Z"}}
	]
}`

const icsExport = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Cadence//Test//EN
BEGIN:VEVENT
UID:uid-1
SUMMARY:Sprint Planning
DTSTART:20260907T100000Z
DTEND:20260907T110000Z
LOCATION:Room 4
ATTENDEE;CN=Jane Doe:mailto:jane@example.com
ATTENDEE:mailto:bob@example.com
RRULE:FREQ=WEEKLY
END:VEVENT
BEGIN:VEVENT
UID:uid-2
SUMMARY:Coffee chat
DTSTART:20260908T090000Z
DTEND:20260908T093000Z
END:VEVENT
END:VCALENDAR
`

func TestJSONFeedGraphWrapper(t *testing.T) {
	path := writeFile(t, t.TempDir(), "export.json", graphExport)

	f := NewJSONFeed(schema.GraphSource, path)
	events, err := f.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "g-1", events[0]["Id"])
	assert.Equal(t, "Planning", events[1]["Subject"])
	assert.Equal(t, schema.GraphSource, f.Kind())
}

func TestJSONFeedDirectoryConcatenatesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"id": "e-1"}]`)
	writeFile(t, dir, "b.json", `[{"id": "e-2"}, {"id": "e-3"}]`)
	writeFile(t, dir, "notes.txt", "ignored")

	f := NewJSONFeed(schema.GcalSource, dir)
	events, err := f.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, "e-1", events[0]["id"])
	assert.Equal(t, "e-3", events[2]["id"])
}

func TestJSONFeedSingleEventObject(t *testing.T) {
	path := writeFile(t, t.TempDir(), "one.json", `{"id": "solo", "summary": "Review"}`)

	events, err := NewJSONFeed(schema.GcalSource, path).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "solo", events[0]["id"])
}

func TestJSONFeedRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, dir, "broken.json", `{"value": [`)
		_, err := NewJSONFeed(schema.GraphSource, path).Fetch(context.Background())
		assert.ErrorContains(t, err, "not valid JSON")
	})

	t.Run("non-object entry", func(t *testing.T) {
		path := writeFile(t, dir, "scalar.json", `[42]`)
		_, err := NewJSONFeed(schema.GcalSource, path).Fetch(context.Background())
		assert.ErrorContains(t, err, "not an event object")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := NewJSONFeed(schema.GcalSource, filepath.Join(dir, "absent.json")).Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestICSFeed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "calendar.ics", icsExport)

	f := NewICSFeed(path)
	assert.Equal(t, schema.ICSSource, f.Kind())

	events, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "uid-1", first["id"])
	assert.Equal(t, "Sprint Planning", first["subject"])
	assert.Equal(t, "Room 4", first["location"])
	assert.Equal(t, map[string]any{"dateTime": "2026-09-07T10:00:00Z"}, first["start"])
	assert.Equal(t, map[string]any{"dateTime": "2026-09-07T11:00:00Z"}, first["end"])
	assert.Equal(t, []any{"FREQ=WEEKLY"}, first["recurrence"])

	attendees, ok := first["attendees"].([]any)
	require.True(t, ok)
	require.Len(t, attendees, 2)
	assert.Equal(t, map[string]any{"email": "jane@example.com", "name": "Jane Doe"}, attendees[0])
	assert.Equal(t, map[string]any{"email": "bob@example.com"}, attendees[1])

	second := events[1]
	assert.Equal(t, "uid-2", second["id"])
	assert.Nil(t, second["attendees"])
	assert.Nil(t, second["recurrence"])
}

func TestICSFeedRejectsGarbage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "junk.ics", "<html>not a calendar</html>")
	_, err := NewICSFeed(path).Fetch(context.Background())
	assert.Error(t, err)
}

func TestDetectKind(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "graph.json", graphExport)
	gcalPath := writeFile(t, dir, "gcal.json", gcalExport)
	icsPath := writeFile(t, dir, "cal.ics", icsExport)
	bareGraph := writeFile(t, dir, "bare.json", `[{"Id": "x", "Subject": "Sync"}]`)
	bareGcal := writeFile(t, dir, "bare2.json", `[{"id": "x", "summary": "Sync"}]`)

	tests := []struct {
		name     string
		path     string
		expected schema.SourceKind
	}{
		{"graph wrapper", graphPath, schema.GraphSource},
		{"gcal wrapper", gcalPath, schema.GcalSource},
		{"ics extension", icsPath, schema.ICSSource},
		{"bare array pascal case", bareGraph, schema.GraphSource},
		{"bare array camel case", bareGcal, schema.GcalSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := DetectKind(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}

	t.Run("unknown extension", func(t *testing.T) {
		path := writeFile(t, dir, "export.csv", "a,b")
		_, err := DetectKind(path)
		assert.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	icsPath := writeFile(t, dir, "cal.ics", icsExport)

	t.Run("auto detects ics", func(t *testing.T) {
		f, err := Open(schema.AutoSource, icsPath)
		require.NoError(t, err)
		assert.Equal(t, schema.ICSSource, f.Kind())
	})

	t.Run("explicit kind skips detection", func(t *testing.T) {
		f, err := Open(schema.GraphSource, filepath.Join(dir, "does-not-exist.json"))
		require.NoError(t, err)
		assert.Equal(t, schema.GraphSource, f.Kind())
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Open(schema.AutoSource, "")
		assert.Error(t, err)
	})
}
