package store

// Schema contains the complete DDL for the docgen tables.
const Schema = `
-- Custom document types registered at runtime (built-ins live in code)
CREATE TABLE IF NOT EXISTS custom_types (
    id          TEXT PRIMARY KEY,
    description TEXT NOT NULL DEFAULT '',
    template    TEXT NOT NULL,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);

-- Metadata for generated documents; bodies live as markdown files on disk
CREATE TABLE IF NOT EXISTS documents (
    id                TEXT PRIMARY KEY,
    doc_type          TEXT NOT NULL,
    title             TEXT NOT NULL,
    filename          TEXT NOT NULL,
    provider          TEXT NOT NULL,
    model             TEXT NOT NULL,
    context           TEXT NOT NULL DEFAULT '',
    prompt_tokens     INTEGER NOT NULL DEFAULT 0,
    completion_tokens INTEGER NOT NULL DEFAULT 0,
    total_tokens      INTEGER NOT NULL DEFAULT 0,
    estimated_usage   INTEGER NOT NULL DEFAULT 0,
    created_at        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_type ON documents(doc_type);
CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at DESC);
`
