package schema

import "time"

// Disposition records what happened to a single source event during import.
type Disposition string

// All per-event dispositions.
const (
	DispositionImported         Disposition = "imported"
	DispositionSkippedDuplicate Disposition = "skipped_duplicate"
	DispositionSkippedPast      Disposition = "skipped_past"
	DispositionFailed           Disposition = "failed"
)

// Skipped reports whether the disposition is one of the skip variants.
// Skips are policy outcomes, not errors; failures are parse errors.
func (d Disposition) Skipped() bool {
	return d == DispositionSkippedDuplicate || d == DispositionSkippedPast
}

// ImportState is one phase of the import run state machine.
type ImportState string

// Import run states. Transitions are linear:
// Idle -> Extracting -> [Previewing] -> Importing -> Complete | Failed.
const (
	StateIdle       ImportState = "idle"
	StateExtracting ImportState = "extracting"
	StatePreviewing ImportState = "previewing"
	StateImporting  ImportState = "importing"
	StateComplete   ImportState = "complete"
	StateFailed     ImportState = "failed"
)

// StateChange is delivered to state observers on each transition.
// Err is set only when To == StateFailed.
type StateChange struct {
	From ImportState
	To   ImportState
	Err  error
}

// Progress is delivered to progress observers after each processed event.
type Progress struct {
	Completed   int
	Total       int
	Disposition Disposition
	ExternalID  string
}

// ImportOutcome is the immutable result of one import run.
type ImportOutcome struct {
	ImportedCount   int             `json:"imported_count"`
	SkippedCount    int             `json:"skipped_count"`
	FailedCount     int             `json:"failed_count"`
	ImportedRecords []MeetingRecord `json:"imported_records"`
}

// Total returns the number of source events the run looked at.
func (o *ImportOutcome) Total() int {
	return o.ImportedCount + o.SkippedCount + o.FailedCount
}

// ImportRun is the persisted history entry for one import invocation,
// used for trend tracking and Parquet export.
type ImportRun struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Source     string    `json:"source"`
	Imported   int       `json:"imported"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}
