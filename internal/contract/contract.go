// Package contract provides interfaces and shared utilities for the Cadence CLI's internal architecture.
package contract

import (
	"context"

	"github.com/cadencehq/cadence/schema"
)

// EventFeed supplies the raw source events for one import run.
// Implementations cover file-based exports (Graph JSON, Google JSON, ICS);
// transport and authentication concerns live behind this boundary.
type EventFeed interface {
	// Fetch returns all raw events from the source in source order.
	// A non-nil error means extraction failed as a whole and the run
	// must not proceed to per-event processing.
	Fetch(ctx context.Context) ([]schema.SourceEvent, error)

	// Kind identifies the source flavor for run tracking.
	Kind() schema.SourceKind
}

// MeetingStore is the persistent meeting collection. The import pipeline
// treats it as append-only; reporting does full scans.
type MeetingStore interface {
	// ExternalIDSnapshot returns the set of external ids already stored.
	// The orchestrator takes this snapshot once, before the run starts.
	ExternalIDSnapshot(ctx context.Context) (map[string]struct{}, error)

	// AppendMeeting commits one imported record. Records are never
	// mutated by the pipeline after this call.
	AppendMeeting(ctx context.Context, rec schema.MeetingRecord) error

	// ListMeetings returns all stored meeting records.
	ListMeetings(ctx context.Context) ([]schema.MeetingRecord, error)
}

// ContactDirectory is the read-only contact lookup used for attendee
// matching, plus the management operations the CLI exposes.
type ContactDirectory interface {
	ListContacts(ctx context.Context) ([]schema.Contact, error)
	AddContact(ctx context.Context, c schema.Contact) error
}

// TaskStore holds per-contact action items that feed completion rates.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]schema.Task, error)
	AddTask(ctx context.Context, t schema.Task) error
	CompleteTask(ctx context.Context, id string) error
}

// RunStore records import-run history for trend tracking and export.
type RunStore interface {
	RecordRun(ctx context.Context, run schema.ImportRun) (int64, error)
	ListRuns(ctx context.Context) ([]schema.ImportRun, error)
}

// StoreManager bundles the store facets behind one lifecycle.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	Meetings() MeetingStore
	Contacts() ContactDirectory
	Tasks() TaskStore
	Runs() RunStore
	GetStatus() (schema.StoreStatus, error)
	Close() error
}
