package meetstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
)

// MemoryStore is the in-process StoreManager used for the none backend
// and for tests. Nothing survives process exit.
type MemoryStore struct {
	mu       sync.RWMutex
	meetings []schema.MeetingRecord
	contacts []schema.Contact
	tasks    []schema.Task
	runs     []schema.ImportRun
}

var _ contract.StoreManager = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Meetings returns the meeting store facet.
func (m *MemoryStore) Meetings() contract.MeetingStore { return m }

// Contacts returns the contact directory facet.
func (m *MemoryStore) Contacts() contract.ContactDirectory { return m }

// Tasks returns the task store facet.
func (m *MemoryStore) Tasks() contract.TaskStore { return m }

// Runs returns the import run history facet.
func (m *MemoryStore) Runs() contract.RunStore { return m }

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }

// GetStatus reports the in-memory collection sizes.
func (m *MemoryStore) GetStatus() (schema.StoreStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := schema.StoreStatus{
		Backend:       string(schema.NoneBackend),
		Connected:     true,
		TotalMeetings: len(m.meetings),
		TotalContacts: len(m.contacts),
		TotalTasks:    len(m.tasks),
		TotalRuns:     len(m.runs),
		TableSizes: map[string]int64{
			meetingsTable:   int64(len(m.meetings)),
			contactsTable:   int64(len(m.contacts)),
			tasksTable:      int64(len(m.tasks)),
			importRunsTable: int64(len(m.runs)),
		},
	}
	if n := len(m.runs); n > 0 {
		status.LastImportTime = m.runs[n-1].StartedAt
	}
	return status, nil
}

// ExternalIDSnapshot returns the set of external ids already stored.
func (m *MemoryStore) ExternalIDSnapshot(_ context.Context) (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]struct{}, len(m.meetings))
	for _, rec := range m.meetings {
		snapshot[rec.ExternalID] = struct{}{}
	}
	return snapshot, nil
}

// AppendMeeting commits one imported record.
func (m *MemoryStore) AppendMeeting(_ context.Context, rec schema.MeetingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.meetings {
		if existing.ExternalID == rec.ExternalID {
			return fmt.Errorf("meeting with external id %q already exists", rec.ExternalID)
		}
	}
	m.meetings = append(m.meetings, rec)
	return nil
}

// ListMeetings returns all stored meeting records in schedule order.
func (m *MemoryStore) ListMeetings(_ context.Context) ([]schema.MeetingRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schema.MeetingRecord, len(m.meetings))
	copy(out, m.meetings)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListContacts returns all contacts ordered by name.
func (m *MemoryStore) ListContacts(_ context.Context) ([]schema.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schema.Contact, len(m.contacts))
	copy(out, m.contacts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// AddContact inserts one contact into the directory.
func (m *MemoryStore) AddContact(_ context.Context, c schema.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.contacts {
		if existing.ID == c.ID {
			return fmt.Errorf("contact %q already exists", c.ID)
		}
	}
	m.contacts = append(m.contacts, c)
	return nil
}

// ListTasks returns all tasks in creation order.
func (m *MemoryStore) ListTasks(_ context.Context) ([]schema.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schema.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

// AddTask inserts one task.
func (m *MemoryStore) AddTask(_ context.Context, t schema.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = append(m.tasks, t)
	return nil
}

// CompleteTask marks one task as done.
func (m *MemoryStore) CompleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Done = true
			return nil
		}
	}
	return fmt.Errorf("task %q not found", id)
}

// RecordRun appends one import run to the history and returns its id.
func (m *MemoryStore) RecordRun(_ context.Context, run schema.ImportRun) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run.ID = int64(len(m.runs) + 1)
	m.runs = append(m.runs, run)
	return run.ID, nil
}

// ListRuns returns all import runs in insertion order.
func (m *MemoryStore) ListRuns(_ context.Context) ([]schema.ImportRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schema.ImportRun, len(m.runs))
	copy(out, m.runs)
	return out, nil
}
