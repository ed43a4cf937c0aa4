package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var importTestNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

// importTestContacts is the directory used across importer tests.
var importTestContacts = []schema.Contact{
	{ID: "c1", Name: "Jane", Email: "jane@example.com"},
	{ID: "c2", Name: "Bob", Email: "bob@example.com"},
}

// sourceEvent builds a camelCase-shaped event relative to importTestNow.
func sourceEvent(id, subject string, startOffset, duration time.Duration, emails ...string) schema.SourceEvent {
	attendees := make([]any, 0, len(emails))
	for _, e := range emails {
		attendees = append(attendees, map[string]any{"email": e})
	}
	start := importTestNow.Add(startOffset)
	return schema.SourceEvent{
		"id":        id,
		"subject":   subject,
		"start":     map[string]any{"dateTime": start.Format(time.RFC3339)},
		"end":       map[string]any{"dateTime": start.Add(duration).Format(time.RFC3339)},
		"attendees": attendees,
	}
}

func newTestImporter(
	cfg *contract.Config,
	feed *contract.MockEventFeed,
	store *contract.MockMeetingStore,
	opts ...ImporterOption,
) *Importer {
	directory := new(contract.MockContactDirectory)
	directory.On("ListContacts", mock.Anything).Return(importTestContacts, nil).Maybe()

	seq := 0
	base := []ImporterOption{
		WithClock(func() time.Time { return importTestNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("meeting-%d", seq)
		}),
	}
	return NewImporter(cfg, feed, store, directory, append(base, opts...)...)
}

// TestImporterMixedBatch runs the canonical three-event batch: one
// duplicate, one unparsable, one valid future standup with two matched
// attendees.
func TestImporterMixedBatch(t *testing.T) {
	events := []schema.SourceEvent{
		sourceEvent("dup-1", "Old sync", 2*time.Hour, 30*time.Minute),
		{
			"id":    "bad-1",
			"start": map[string]any{"dateTime": "not a time"},
			"end":   map[string]any{"dateTime": "2026-09-02T10:00:00Z"},
		},
		sourceEvent("new-1", "Standup", time.Hour, 30*time.Minute, "jane@example.com", "bob@example.com"),
	}

	feed := new(contract.MockEventFeed)
	feed.On("Fetch", mock.Anything).Return(events, nil)
	feed.On("Kind").Return(schema.GcalSource).Maybe()

	store := new(contract.MockMeetingStore)
	store.On("ExternalIDSnapshot", mock.Anything).Return(map[string]struct{}{"dup-1": {}}, nil)
	store.On("AppendMeeting", mock.Anything, mock.AnythingOfType("schema.MeetingRecord")).Return(nil)

	var states []schema.ImportState
	var progress []schema.Progress
	cfg := &contract.Config{TimeZone: time.UTC, FutureOnly: true}
	imp := newTestImporter(cfg, feed, store,
		WithStateObserver(func(sc schema.StateChange) { states = append(states, sc.To) }),
		WithProgressObserver(func(p schema.Progress) { progress = append(progress, p) }),
	)

	outcome, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.ImportedCount)
	assert.Equal(t, 1, outcome.SkippedCount)
	assert.Equal(t, 1, outcome.FailedCount)
	assert.Equal(t, 3, outcome.Total())

	require.Len(t, outcome.ImportedRecords, 1)
	rec := outcome.ImportedRecords[0]
	assert.Equal(t, "meeting-1", rec.ID)
	assert.Equal(t, "Standup", rec.Title)
	assert.Equal(t, schema.CategoryStandUp, rec.Category)
	assert.Equal(t, "new-1", rec.ExternalID)
	assert.Equal(t, int64(1800), rec.DurationSeconds)
	assert.Equal(t, []string{"c1", "c2"}, rec.AttendeeIDs)

	assert.Equal(t, []schema.ImportState{schema.StateExtracting, schema.StateImporting, schema.StateComplete}, states)

	require.Len(t, progress, 3)
	assert.Equal(t, schema.DispositionSkippedDuplicate, progress[0].Disposition)
	assert.Equal(t, schema.DispositionFailed, progress[1].Disposition)
	assert.Equal(t, schema.DispositionImported, progress[2].Disposition)
	assert.Equal(t, 3, progress[2].Completed)
	assert.Equal(t, 3, progress[2].Total)

	store.AssertNumberOfCalls(t, "AppendMeeting", 1)
}

// TestImporterIdempotence ensures a second run over the same batch skips
// every event once the ids are in the store snapshot.
func TestImporterIdempotence(t *testing.T) {
	events := []schema.SourceEvent{
		sourceEvent("a-1", "Planning", time.Hour, time.Hour),
		sourceEvent("a-2", "Quick chat", 2*time.Hour, 30*time.Minute),
	}

	feed := new(contract.MockEventFeed)
	feed.On("Fetch", mock.Anything).Return(events, nil)
	feed.On("Kind").Return(schema.GcalSource).Maybe()

	store := new(contract.MockMeetingStore)
	store.On("ExternalIDSnapshot", mock.Anything).Return(map[string]struct{}{"a-1": {}, "a-2": {}}, nil)

	cfg := &contract.Config{TimeZone: time.UTC}
	imp := newTestImporter(cfg, feed, store)

	outcome, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.ImportedCount)
	assert.Equal(t, 2, outcome.SkippedCount)
	assert.Equal(t, 0, outcome.FailedCount)
	store.AssertNotCalled(t, "AppendMeeting", mock.Anything, mock.Anything)
}

// TestImporterSameRunDuplicates covers the in-batch duplicate policy: the
// first occurrence imports, later ones skip against the just-committed id.
func TestImporterSameRunDuplicates(t *testing.T) {
	events := []schema.SourceEvent{
		sourceEvent("twin", "Pairing", time.Hour, time.Hour),
		sourceEvent("twin", "Pairing", time.Hour, time.Hour),
	}

	feed := new(contract.MockEventFeed)
	feed.On("Fetch", mock.Anything).Return(events, nil)
	feed.On("Kind").Return(schema.GraphSource).Maybe()

	store := new(contract.MockMeetingStore)
	store.On("ExternalIDSnapshot", mock.Anything).Return(map[string]struct{}{}, nil)
	store.On("AppendMeeting", mock.Anything, mock.AnythingOfType("schema.MeetingRecord")).Return(nil)

	cfg := &contract.Config{TimeZone: time.UTC}
	imp := newTestImporter(cfg, feed, store)

	outcome, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.ImportedCount)
	assert.Equal(t, 1, outcome.SkippedCount)
	store.AssertNumberOfCalls(t, "AppendMeeting", 1)
}

// TestImporterDryRun ensures preview mode runs the full pipeline without
// committing anything.
func TestImporterDryRun(t *testing.T) {
	events := []schema.SourceEvent{
		sourceEvent("p-1", "Retro", time.Hour, time.Hour),
	}

	feed := new(contract.MockEventFeed)
	feed.On("Fetch", mock.Anything).Return(events, nil)
	feed.On("Kind").Return(schema.GcalSource).Maybe()

	store := new(contract.MockMeetingStore)
	store.On("ExternalIDSnapshot", mock.Anything).Return(map[string]struct{}{}, nil)

	var states []schema.ImportState
	cfg := &contract.Config{TimeZone: time.UTC, DryRun: true}
	imp := newTestImporter(cfg, feed, store,
		WithStateObserver(func(sc schema.StateChange) { states = append(states, sc.To) }),
	)

	outcome, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.ImportedCount)
	require.Len(t, outcome.ImportedRecords, 1)
	assert.Equal(t, schema.CategoryRetrospective, outcome.ImportedRecords[0].Category)
	assert.Contains(t, states, schema.StatePreviewing)
	assert.NotContains(t, states, schema.StateImporting)
	store.AssertNotCalled(t, "AppendMeeting", mock.Anything, mock.Anything)
}

// TestImporterExtractionFailure ensures a fetch error aborts the run with
// no partial results and a Failed terminal state.
func TestImporterExtractionFailure(t *testing.T) {
	feed := new(contract.MockEventFeed)
	feed.On("Fetch", mock.Anything).Return(nil, errors.New("archive unreadable"))
	feed.On("Kind").Return(schema.ICSSource)

	store := new(contract.MockMeetingStore)

	var states []schema.ImportState
	cfg := &contract.Config{TimeZone: time.UTC}
	imp := newTestImporter(cfg, feed, store,
		WithStateObserver(func(sc schema.StateChange) { states = append(states, sc.To) }),
	)

	outcome, err := imp.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, outcome)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, schema.ICSSource, extErr.Source)

	assert.Equal(t, []schema.ImportState{schema.StateExtracting, schema.StateFailed}, states)
	store.AssertNotCalled(t, "ExternalIDSnapshot", mock.Anything)
}

// TestImporterStoreFailureCountsAsFailed ensures a per-event append error
// does not abort the run.
func TestImporterStoreFailureCountsAsFailed(t *testing.T) {
	events := []schema.SourceEvent{
		sourceEvent("s-1", "Design review", time.Hour, time.Hour),
		sourceEvent("s-2", "Quick chat", 2*time.Hour, time.Hour),
	}

	feed := new(contract.MockEventFeed)
	feed.On("Fetch", mock.Anything).Return(events, nil)
	feed.On("Kind").Return(schema.GcalSource).Maybe()

	store := new(contract.MockMeetingStore)
	store.On("ExternalIDSnapshot", mock.Anything).Return(map[string]struct{}{}, nil)
	store.On("AppendMeeting", mock.Anything, mock.AnythingOfType("schema.MeetingRecord")).Return(errors.New("disk full")).Once()
	store.On("AppendMeeting", mock.Anything, mock.AnythingOfType("schema.MeetingRecord")).Return(nil).Once()

	cfg := &contract.Config{TimeZone: time.UTC}
	imp := newTestImporter(cfg, feed, store)

	outcome, err := imp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.ImportedCount)
	assert.Equal(t, 1, outcome.FailedCount)
	assert.Equal(t, 0, outcome.SkippedCount)
}
