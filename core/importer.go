package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
	"github.com/google/uuid"
)

// ErrImportInProgress is returned when Run is called while another run is
// active. The meeting store is a single-writer resource: the dedup check
// reads a snapshot taken at run start, so concurrent imports must be
// serialized.
var ErrImportInProgress = errors.New("an import is already in progress")

// ExtractionError wraps a failure to obtain raw events from the source.
// It aborts the run before any per-event processing; there are no partial
// results.
type ExtractionError struct {
	Source schema.SourceKind
	Err    error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s source: %v", e.Source, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Importer drives one import run end to end: extract, normalize, filter,
// match, classify, persist, report. Events are processed sequentially in
// source order; each event's outcome is independent and one failure never
// aborts the run. Commits are incremental, so a run cancelled after
// importing has begun leaves already-processed events committed
// (at-least-once-partial semantics, no rollback).
type Importer struct {
	cfg       *contract.Config
	feed      contract.EventFeed
	meetings  contract.MeetingStore
	directory contract.ContactDirectory
	runs      contract.RunStore

	normalizer *Normalizer
	onState    func(schema.StateChange)
	onProgress func(schema.Progress)
	now        func() time.Time
	newID      func() string

	mu      sync.Mutex
	state   schema.ImportState
	running bool
}

// ImporterOption customizes an Importer.
type ImporterOption func(*Importer)

// WithStateObserver registers a callback invoked on every state
// transition. The callback runs synchronously on the importing goroutine.
func WithStateObserver(fn func(schema.StateChange)) ImporterOption {
	return func(imp *Importer) { imp.onState = fn }
}

// WithProgressObserver registers a callback invoked after each processed
// event with completed/total counts.
func WithProgressObserver(fn func(schema.Progress)) ImporterOption {
	return func(imp *Importer) { imp.onProgress = fn }
}

// WithRunStore enables import-run history tracking.
func WithRunStore(runs contract.RunStore) ImporterOption {
	return func(imp *Importer) { imp.runs = runs }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ImporterOption {
	return func(imp *Importer) { imp.now = now }
}

// WithIDGenerator overrides meeting id generation, for tests.
func WithIDGenerator(fn func() string) ImporterOption {
	return func(imp *Importer) { imp.newID = fn }
}

// NewImporter builds an Importer over the injected collaborators.
func NewImporter(
	cfg *contract.Config,
	feed contract.EventFeed,
	meetings contract.MeetingStore,
	directory contract.ContactDirectory,
	opts ...ImporterOption,
) *Importer {
	imp := &Importer{
		cfg:        cfg,
		feed:       feed,
		meetings:   meetings,
		directory:  directory,
		normalizer: NewNormalizer(cfg.TimeZone),
		now:        time.Now,
		newID:      uuid.NewString,
		state:      schema.StateIdle,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// State returns the current state of the import run.
func (imp *Importer) State() schema.ImportState {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	return imp.state
}

// setState transitions the state machine and notifies the observer.
func (imp *Importer) setState(to schema.ImportState, err error) {
	imp.mu.Lock()
	from := imp.state
	imp.state = to
	imp.mu.Unlock()

	if imp.onState != nil {
		imp.onState(schema.StateChange{From: from, To: to, Err: err})
	}
}

// Run executes one import run and returns its immutable outcome.
// In dry-run mode the pipeline runs in full but nothing is committed and
// no run history is recorded; the outcome shows what an import would do.
func (imp *Importer) Run(ctx context.Context) (*schema.ImportOutcome, error) {
	imp.mu.Lock()
	if imp.running {
		imp.mu.Unlock()
		return nil, ErrImportInProgress
	}
	imp.running = true
	imp.mu.Unlock()
	defer func() {
		imp.mu.Lock()
		imp.running = false
		imp.mu.Unlock()
	}()

	startedAt := imp.now()

	// --- 1. Extraction Phase ---
	imp.setState(schema.StateExtracting, nil)

	events, err := imp.feed.Fetch(ctx)
	if err != nil {
		extErr := &ExtractionError{Source: imp.feed.Kind(), Err: err}
		imp.setState(schema.StateFailed, extErr)
		return nil, extErr
	}

	snapshot, err := imp.meetings.ExternalIDSnapshot(ctx)
	if err != nil {
		extErr := &ExtractionError{Source: imp.feed.Kind(), Err: fmt.Errorf("reading stored ids: %w", err)}
		imp.setState(schema.StateFailed, extErr)
		return nil, extErr
	}

	contacts, err := imp.directory.ListContacts(ctx)
	if err != nil {
		extErr := &ExtractionError{Source: imp.feed.Kind(), Err: fmt.Errorf("reading contact directory: %w", err)}
		imp.setState(schema.StateFailed, extErr)
		return nil, extErr
	}

	// --- 2. Importing Phase ---
	if imp.cfg.DryRun {
		imp.setState(schema.StatePreviewing, nil)
	} else {
		imp.setState(schema.StateImporting, nil)
	}

	filter := NewDedupFilter(snapshot, imp.cfg.FutureOnly, startedAt)
	outcome := &schema.ImportOutcome{ImportedRecords: []schema.MeetingRecord{}}

	total := len(events)
	for i, raw := range events {
		// Cooperative cancellation between events. Already-committed
		// events stay committed.
		if ctx.Err() != nil {
			break
		}

		disposition := imp.processEvent(ctx, raw, filter, contacts, outcome)

		if imp.onProgress != nil {
			externalID, _ := lookupString(raw, externalIDKeys)
			imp.onProgress(schema.Progress{
				Completed:   i + 1,
				Total:       total,
				Disposition: disposition,
				ExternalID:  externalID,
			})
		}
	}

	// --- 3. Run Tracking ---
	if imp.runs != nil && !imp.cfg.DryRun {
		run := schema.ImportRun{
			StartedAt:  startedAt,
			FinishedAt: imp.now(),
			Source:     string(imp.feed.Kind()),
			Imported:   outcome.ImportedCount,
			Skipped:    outcome.SkippedCount,
			Failed:     outcome.FailedCount,
		}
		if _, err := imp.runs.RecordRun(ctx, run); err != nil {
			contract.LogWarn("Import run tracking failed", err)
		}
	}

	imp.setState(schema.StateComplete, nil)
	return outcome, nil
}

// processEvent applies the per-event pipeline steps and updates the
// outcome counters. It returns the event's disposition.
func (imp *Importer) processEvent(
	ctx context.Context,
	raw schema.SourceEvent,
	filter *DedupFilter,
	contacts []schema.Contact,
	outcome *schema.ImportOutcome,
) schema.Disposition {
	ev, err := imp.normalizer.Normalize(raw)
	if err != nil {
		contract.LogWarn("Event rejected", err)
		outcome.FailedCount++
		return schema.DispositionFailed
	}

	if disposition, ok := filter.Check(ev); !ok {
		outcome.SkippedCount++
		return disposition
	}

	rec := schema.MeetingRecord{
		ID:              imp.newID(),
		Title:           ev.Subject,
		ScheduledAt:     ev.StartDateTime,
		DurationSeconds: int64(ev.Duration() / time.Second),
		AttendeeIDs:     MatchAttendees(ev.Attendees, contacts),
		Category:        Classify(ev.Subject, len(ev.Attendees)),
		LocationName:    ev.LocationName,
		ExternalID:      ev.ExternalID,
		AgendaText:      ev.BodyPreview,
		CreatedAt:       imp.now(),
	}

	if !imp.cfg.DryRun {
		if err := imp.meetings.AppendMeeting(ctx, rec); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to store event %q", ev.ExternalID), err)
			outcome.FailedCount++
			return schema.DispositionFailed
		}
	}

	filter.Commit(ev.ExternalID)
	outcome.ImportedCount++
	outcome.ImportedRecords = append(outcome.ImportedRecords, rec)
	return schema.DispositionImported
}
