package schema

import "time"

// StoreStatus represents the status of the meeting store.
type StoreStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalMeetings  int              `json:"total_meetings"`
	TotalContacts  int              `json:"total_contacts"`
	TotalTasks     int              `json:"total_tasks"`
	TotalRuns      int              `json:"total_runs"`
	LastImportTime time.Time        `json:"last_import_time"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}
