package db

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func testHandle(t *testing.T) *sql.DB {
	t.Helper()

	handle, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// One connection, or each statement may see a different :memory: db.
	handle.SetMaxOpenConns(1)
	t.Cleanup(func() { handle.Close() })
	return handle
}

func TestSyncMarkRoundTrip(t *testing.T) {
	handle := testHandle(t)
	ctx := context.Background()

	first := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	if err := SaveSyncMark(ctx, handle, "acme", "shopify", first); err != nil {
		t.Fatalf("SaveSyncMark failed: %v", err)
	}

	got, err := GetSyncMark(ctx, handle, "acme", "shopify")
	if err != nil {
		t.Fatalf("GetSyncMark failed: %v", err)
	}
	if !got.Equal(first) {
		t.Errorf("GetSyncMark = %v, want %v", got, first)
	}

	// A later run overwrites the mark for the same pair.
	second := first.Add(24 * time.Hour)
	if err := SaveSyncMark(ctx, handle, "acme", "shopify", second); err != nil {
		t.Fatalf("SaveSyncMark failed: %v", err)
	}
	got, err = GetSyncMark(ctx, handle, "acme", "shopify")
	if err != nil {
		t.Fatalf("GetSyncMark failed: %v", err)
	}
	if !got.Equal(second) {
		t.Errorf("GetSyncMark = %v, want %v", got, second)
	}
}

func TestGetSyncMarkUnknownPair(t *testing.T) {
	handle := testHandle(t)
	ctx := context.Background()

	if err := SaveSyncMark(ctx, handle, "acme", "shopify", time.Now()); err != nil {
		t.Fatalf("SaveSyncMark failed: %v", err)
	}

	got, err := GetSyncMark(ctx, handle, "acme", "klaviyo")
	if err != nil {
		t.Fatalf("GetSyncMark failed: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("GetSyncMark for unrecorded pair = %v, want zero time", got)
	}
}

func TestGetSyncMarkBeforeAnySync(t *testing.T) {
	handle := testHandle(t)

	// The metadata table does not exist yet on a fresh database file.
	got, err := GetSyncMark(context.Background(), handle, "acme", "shopify")
	if err != nil {
		t.Fatalf("GetSyncMark failed: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("GetSyncMark on fresh database = %v, want zero time", got)
	}
}
