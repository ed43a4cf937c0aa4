package schema

import "time"

// Contact is one person in the directory. Email is the matching key for
// attendee reconciliation and is compared case-insensitively; CadenceDays
// is the expected meeting frequency used by the needs-attention report.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	CadenceDays int       `json:"cadence_days"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task is one action item assigned to a contact. Completion state feeds
// the per-person completion rates in the insights snapshot.
type Task struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	DueAt     time.Time `json:"due_at,omitempty"`
	Done      bool      `json:"done"`
}

// Overdue reports whether the task has a due date in the past and is
// still open, relative to now.
func (t *Task) Overdue(now time.Time) bool {
	return !t.Done && !t.DueAt.IsZero() && t.DueAt.Before(now)
}
