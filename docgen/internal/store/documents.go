package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hazyhaar/scribe/dbopen"
)

const documentColumns = `id, doc_type, title, filename, provider, model, context,
	prompt_tokens, completion_tokens, total_tokens, estimated_usage, created_at`

// InsertDocument records the metadata row for a freshly generated document.
// Ids are unique by construction, so a conflict is a hard error.
func (s *Store) InsertDocument(ctx context.Context, d *Document) error {
	_, err := dbopen.Exec(ctx, s.DB, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		d.ID, d.DocType, d.Title, d.Filename, d.Provider, d.Model, d.Context,
		d.PromptTokens, d.CompletionTokens, d.TotalTokens, d.EstimatedUsage, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert document %s: %w", d.ID, err)
	}
	return nil
}

// GetDocument returns one document's metadata, or sql.ErrNoRows if absent.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("store: get document %s: %w", id, err)
	}
	return d, nil
}

// ListDocuments returns document metadata, newest first. A non-empty docType
// filters by type.
func (s *Store) ListDocuments(ctx context.Context, docType string) ([]*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents`
	var args []any
	if docType != "" {
		query += ` WHERE doc_type = ?`
		args = append(args, docType)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	defer rows.Close()

	var out []*Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDocument removes a metadata row. Used to roll back when the body file
// was written but the insert failed, and by external cleanup.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	if _, err := dbopen.Exec(ctx, s.DB, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete document %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.DocType, &d.Title, &d.Filename, &d.Provider, &d.Model,
		&d.Context, &d.PromptTokens, &d.CompletionTokens, &d.TotalTokens, &d.EstimatedUsage,
		&d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
