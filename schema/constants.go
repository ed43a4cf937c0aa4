package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// SourceKind represents the calendar export flavor being imported.
	SourceKind string

	// DatabaseBackend represents the database backend for the meeting store.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All source kinds supported.
const (
	AutoSource  SourceKind = "auto" // default: sniff per file
	GraphSource SourceKind = "graph"
	GcalSource  SourceKind = "gcal"
	ICSSource   SourceKind = "ics"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
}

// ValidSourceKinds lists all valid source kinds.
var ValidSourceKinds = map[SourceKind]struct{}{
	AutoSource:  {},
	GraphSource: {},
	GcalSource:  {},
	ICSSource:   {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
