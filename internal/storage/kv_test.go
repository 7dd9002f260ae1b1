package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"), logger)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestKV_SetGet(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.Set(ctx, "route_cache_cluj_brasov", `{"data":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := db.Get(ctx, "route_cache_cluj_brasov")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"data":1}` {
		t.Errorf("Get = %q", got)
	}
}

func TestKV_GetMissing(t *testing.T) {
	db := testDB(t)

	_, err := db.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestKV_Overwrite(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	db.Set(ctx, "k", "v1")
	db.Set(ctx, "k", "v2")

	got, err := db.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v2" {
		t.Errorf("Get = %q, want v2", got)
	}
}

func TestKV_Delete(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	db.Set(ctx, "k", "v")
	if err := db.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete err = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is a no-op.
	if err := db.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

func TestKV_PrefixScanAndDelete(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	db.Set(ctx, "route_cache_a_b", "1")
	db.Set(ctx, "route_cache_c_d", "2")
	db.Set(ctx, "search_cache_bran", "3")

	entries, err := db.EntriesWithPrefix(ctx, "route_cache_")
	if err != nil {
		t.Fatalf("EntriesWithPrefix: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d route entries, want 2", len(entries))
	}

	n, err := db.DeleteWithPrefix(ctx, "route_cache_")
	if err != nil {
		t.Fatalf("DeleteWithPrefix: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}

	remaining, err := db.EntriesWithPrefix(ctx, "")
	if err != nil {
		t.Fatalf("EntriesWithPrefix: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Key != "search_cache_bran" {
		t.Errorf("remaining = %+v, want only the search entry", remaining)
	}
}

func TestKV_ClosedDBReturnsError(t *testing.T) {
	db := testDB(t)
	db.Close()

	ctx := context.Background()
	if err := db.Set(ctx, "k", "v"); err == nil {
		t.Error("Set on closed db should return an error")
	}
	if _, err := db.Get(ctx, "k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Get on closed db err = %v, want a real error", err)
	}
}
