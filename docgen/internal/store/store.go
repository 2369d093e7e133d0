// Package store provides the SQLite persistence layer for docgen: custom
// document types and generated-document metadata. Document bodies are not
// stored here; they live as markdown files next to the database.
package store

import (
	"database/sql"

	"github.com/hazyhaar/scribe/dbopen"
)

// Store is the docgen database handle.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the docgen SQLite database at path, applies the
// scribe pragmas and the docgen schema.
func Open(path string, opts ...dbopen.Option) (*Store, error) {
	allOpts := append([]dbopen.Option{
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	}, opts...)

	db, err := dbopen.Open(path, allOpts...)
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// NewStore wraps an already-opened database (tests use dbopen.OpenMemory).
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}
