package meetstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cadencehq/cadence/schema"
)

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("\"%s\"", name)
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite
		return fmt.Sprintf("\"%s\"", name)
	}
}

// rebind rewrites ?-style placeholders into the $n style PostgreSQL
// expects. SQLite and MySQL queries pass through unchanged.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatTime converts a time.Time to the appropriate argument for the
// backend. SQLite stores RFC 3339 text; MySQL and PostgreSQL take native
// datetime values.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}

// formatNullableTime is formatTime for columns where the zero time means
// NULL.
func formatNullableTime(t time.Time, backend schema.DatabaseBackend) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t, backend)
}

// timeField is a scan destination that resolves to a time.Time regardless
// of whether the backend stores text or native datetime values.
type timeField struct {
	backend schema.DatabaseBackend
	str     sql.NullString
	native  sql.NullTime
}

func newTimeField(backend schema.DatabaseBackend) *timeField {
	return &timeField{backend: backend}
}

// dest returns the pointer to hand to Scan for this backend.
func (f *timeField) dest() any {
	if f.backend == schema.SQLiteBackend {
		return &f.str
	}
	return &f.native
}

// value resolves the scanned column into a time.Time. NULL columns
// resolve to the zero time.
func (f *timeField) value() (time.Time, error) {
	if f.backend == schema.SQLiteBackend {
		if !f.str.Valid || f.str.String == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339Nano, f.str.String)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", f.str.String, err)
		}
		return t, nil
	}
	if !f.native.Valid {
		return time.Time{}, nil
	}
	return f.native.Time, nil
}

// scanTimeRow scans a single-column time row.
func scanTimeRow(row *sql.Row, backend schema.DatabaseBackend) (time.Time, error) {
	field := newTimeField(backend)
	if err := row.Scan(field.dest()); err != nil {
		return time.Time{}, err
	}
	return field.value()
}
