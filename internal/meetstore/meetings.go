package meetstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cadencehq/cadence/schema"
)

// ExternalIDSnapshot returns the set of external ids already stored.
func (s *SQLStore) ExternalIDSnapshot(ctx context.Context) (map[string]struct{}, error) {
	query := fmt.Sprintf("SELECT external_id FROM %s", quoteTableName(meetingsTable, s.backend))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query external ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snapshot := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan external id: %w", err)
		}
		snapshot[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating external ids: %w", err)
	}
	return snapshot, nil
}

// AppendMeeting commits one imported record. Attendee ids are stored as a
// JSON array in a single column; reporting always reads them back whole.
func (s *SQLStore) AppendMeeting(ctx context.Context, rec schema.MeetingRecord) error {
	attendeeJSON, err := json.Marshal(rec.AttendeeIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal attendee ids: %w", err)
	}

	query := rebind(fmt.Sprintf(`
		INSERT INTO %s (id, title, scheduled_at, duration_seconds, attendee_ids,
		                category, location_name, external_id, agenda_text, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, quoteTableName(meetingsTable, s.backend)), s.backend)

	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Title, formatTime(rec.ScheduledAt, s.backend), rec.DurationSeconds, string(attendeeJSON),
		string(rec.Category), rec.LocationName, rec.ExternalID, rec.AgendaText, rec.Notes,
		formatTime(rec.CreatedAt, s.backend),
	)
	if err != nil {
		return fmt.Errorf("failed to insert meeting %q: %w", rec.ExternalID, err)
	}
	return nil
}

// ListMeetings returns all stored meeting records in schedule order.
func (s *SQLStore) ListMeetings(ctx context.Context) ([]schema.MeetingRecord, error) {
	query := fmt.Sprintf(`SELECT id, title, scheduled_at, duration_seconds, attendee_ids,
		category, location_name, external_id, agenda_text, notes, created_at
		FROM %s ORDER BY scheduled_at, id`, quoteTableName(meetingsTable, s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.MeetingRecord
	for rows.Next() {
		var rec schema.MeetingRecord
		var category, attendeeJSON string
		scheduledAt := newTimeField(s.backend)
		createdAt := newTimeField(s.backend)

		if err := rows.Scan(&rec.ID, &rec.Title, scheduledAt.dest(), &rec.DurationSeconds, &attendeeJSON,
			&category, &rec.LocationName, &rec.ExternalID, &rec.AgendaText, &rec.Notes, createdAt.dest()); err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}

		if rec.ScheduledAt, err = scheduledAt.value(); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = createdAt.value(); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(attendeeJSON), &rec.AttendeeIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attendee ids for meeting %q: %w", rec.ID, err)
		}
		rec.Category = schema.Category(category)
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}
	return results, nil
}
