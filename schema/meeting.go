package schema

import "time"

// Category is the inferred meeting type.
type Category string

// All meeting categories produced by the classifier.
const (
	CategoryOneOnOne      Category = "one_on_one"
	CategoryTeamMeeting   Category = "team_meeting"
	CategoryStandUp       Category = "stand_up"
	CategoryRetrospective Category = "retrospective"
	CategoryPlanning      Category = "planning"
	CategoryReview        Category = "review"
	CategoryBrainstorm    Category = "brainstorm"
	CategoryInterview     Category = "interview"
	CategoryTraining      Category = "training"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryStandUp,
	CategoryRetrospective,
	CategoryPlanning,
	CategoryReview,
	CategoryBrainstorm,
	CategoryInterview,
	CategoryTraining,
	CategoryOneOnOne,
	CategoryTeamMeeting,
}

// MeetingRecord is the durable result of importing one calendar event.
// It is immutable for the lifetime of the import pipeline; later edits
// (notes, agenda updates) happen outside this core.
type MeetingRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationSeconds int64     `json:"duration_seconds"`
	AttendeeIDs     []string  `json:"attendee_ids"`
	Category        Category  `json:"category"`
	LocationName    string    `json:"location_name,omitempty"`
	ExternalID      string    `json:"external_id"`
	AgendaText      string    `json:"agenda_text,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
