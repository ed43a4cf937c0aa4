package meetstore

import (
	"context"
	"fmt"

	"github.com/cadencehq/cadence/schema"
)

// ListContacts returns all contacts ordered by name.
func (s *SQLStore) ListContacts(ctx context.Context) ([]schema.Contact, error) {
	query := fmt.Sprintf(`SELECT id, name, email, cadence_days, created_at
		FROM %s ORDER BY name, id`, quoteTableName(contactsTable, s.backend))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Contact
	for rows.Next() {
		var c schema.Contact
		createdAt := newTimeField(s.backend)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CadenceDays, createdAt.dest()); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		if c.CreatedAt, err = createdAt.value(); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return results, nil
}

// AddContact inserts one contact into the directory.
func (s *SQLStore) AddContact(ctx context.Context, c schema.Contact) error {
	query := rebind(fmt.Sprintf(`
		INSERT INTO %s (id, name, email, cadence_days, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, quoteTableName(contactsTable, s.backend)), s.backend)

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.CadenceDays, formatTime(c.CreatedAt, s.backend))
	if err != nil {
		return fmt.Errorf("failed to insert contact %q: %w", c.Name, err)
	}
	return nil
}
