package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hazyhaar/scribe/dbopen"
)

// UpsertCustomType inserts or replaces a custom document type.
// Last writer wins on the template and description.
func (s *Store) UpsertCustomType(ctx context.Context, t *CustomType) error {
	now := time.Now().Unix()
	_, err := dbopen.Exec(ctx, s.DB, `
		INSERT INTO custom_types (id, description, template, created_at, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			template    = excluded.template,
			updated_at  = excluded.updated_at`,
		t.ID, t.Description, t.Template, now, now)
	if err != nil {
		return fmt.Errorf("store: upsert custom type %s: %w", t.ID, err)
	}
	return nil
}

// GetCustomType returns one custom type, or sql.ErrNoRows wrapped if absent.
func (s *Store) GetCustomType(ctx context.Context, id string) (*CustomType, error) {
	var t CustomType
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, description, template, created_at, updated_at
		FROM custom_types WHERE id = ?`, id).
		Scan(&t.ID, &t.Description, &t.Template, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("store: get custom type %s: %w", id, err)
	}
	return &t, nil
}

// ListCustomTypes returns all custom types ordered by id.
func (s *Store) ListCustomTypes(ctx context.Context) ([]*CustomType, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, description, template, created_at, updated_at
		FROM custom_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list custom types: %w", err)
	}
	defer rows.Close()

	var out []*CustomType
	for rows.Next() {
		var t CustomType
		if err := rows.Scan(&t.ID, &t.Description, &t.Template, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan custom type: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
