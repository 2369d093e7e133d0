package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/scribe/dbopen"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	return NewStore(db)
}

func TestCustomType_UpsertAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := &CustomType{ID: "release_notes", Description: "Release notes", Template: "Notes for {title}: {content}"}
	if err := s.UpsertCustomType(ctx, in); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetCustomType(ctx, "release_notes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != in.Description || got.Template != in.Template {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCustomType_UpsertOverwrites(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.UpsertCustomType(ctx, &CustomType{ID: "x", Description: "first", Template: "a"})
	if err := s.UpsertCustomType(ctx, &CustomType{ID: "x", Description: "second", Template: "b"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.GetCustomType(ctx, "x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != "second" || got.Template != "b" {
		t.Fatalf("overwrite failed: %+v", got)
	}

	list, err := s.ListCustomTypes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("rows after overwrite: got %d, want 1", len(list))
	}
}

func TestCustomType_GetMissing(t *testing.T) {
	s := testStore(t)
	_, err := s.GetCustomType(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func docFixture(id, docType string, createdAt int64) *Document {
	return &Document{
		ID: id, DocType: docType, Title: "T", Filename: id + ".md",
		Provider: "openai", Model: "gpt-4o-mini",
		PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30,
		CreatedAt: createdAt,
	}
}

func TestDocuments_InsertGetList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now().Unix()

	if err := s.InsertDocument(ctx, docFixture("doc_1", "sop", now-2)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertDocument(ctx, docFixture("doc_2", "runbook", now-1)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertDocument(ctx, docFixture("doc_3", "sop", now)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.GetDocument(ctx, "doc_2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DocType != "runbook" || got.TotalTokens != 30 {
		t.Fatalf("get mismatch: %+v", got)
	}

	all, err := s.ListDocuments(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list: got %d, want 3", len(all))
	}
	// Newest first.
	if all[0].ID != "doc_3" || all[2].ID != "doc_1" {
		t.Fatalf("order: got %s..%s", all[0].ID, all[2].ID)
	}

	sops, err := s.ListDocuments(ctx, "sop")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(sops) != 2 {
		t.Fatalf("filtered: got %d, want 2", len(sops))
	}
}

func TestDocuments_InsertDuplicateID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.InsertDocument(ctx, docFixture("doc_1", "sop", 1)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertDocument(ctx, docFixture("doc_1", "sop", 2)); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestDocuments_Delete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.InsertDocument(ctx, docFixture("doc_1", "sop", 1))
	if err := s.DeleteDocument(ctx, "doc_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetDocument(ctx, "doc_1"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("after delete: got %v", err)
	}
}
