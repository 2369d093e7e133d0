package dbopen

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestOpen_AppliesSchema(t *testing.T) {
	db := OpenMemory(t, WithSchema(`CREATE TABLE things (id TEXT PRIMARY KEY, n INTEGER)`))

	if _, err := db.Exec(`INSERT INTO things (id, n) VALUES ('a', 1)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT n FROM things WHERE id = 'a'`).Scan(&n); err != nil {
		t.Fatalf("select: %v", err)
	}
	if n != 1 {
		t.Fatalf("n: got %d", n)
	}
}

func TestOpen_MkdirAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "test.db")
	db, err := Open(path, WithMkdirAll())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode: got %q, want wal", mode)
	}
}

func TestOpen_BadSchema(t *testing.T) {
	_, err := Open(":memory:", WithSchema("NOT VALID SQL"))
	if err == nil {
		t.Fatal("expected error for invalid schema")
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked"), true},
		{errors.New("SQLITE_BUSY: cannot start transaction"), true},
		{errors.New("database table is locked"), true},
		{errors.New("no such table"), false},
	}
	for _, tt := range tests {
		if got := IsBusy(tt.err); got != tt.want {
			t.Errorf("IsBusy(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRunTx_CommitAndRollback(t *testing.T) {
	db := OpenMemory(t, WithSchema(`CREATE TABLE t (id TEXT PRIMARY KEY)`))
	ctx := context.Background()

	if err := RunTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO t (id) VALUES ('x')`)
		return err
	}); err != nil {
		t.Fatalf("RunTx: %v", err)
	}

	failure := errors.New("abort")
	err := RunTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO t (id) VALUES ('y')`); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("RunTx error: got %v", err)
	}

	var count int
	db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&count)
	if count != 1 {
		t.Fatalf("rows after rollback: got %d, want 1", count)
	}
}
