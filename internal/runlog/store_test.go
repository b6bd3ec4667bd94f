package runlog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/runlog"
	"scribe/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []runlog.Run{
		{Input: "one.m4a", AssetID: "one", Status: runlog.StatusCompleted, OutputPath: "/out/one.txt", Segments: 5, Duration: 42 * time.Second, CreatedAt: base},
		{Input: "https://youtu.be/abc", AssetID: "abc", Status: runlog.StatusPartial, Segments: 5, FailedSegments: 2, CreatedAt: base.Add(time.Minute)},
		{Input: "bad.m4a", Status: runlog.StatusFailed, Error: "ingestion error: no such local file", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, run := range runs {
		if _, err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d runs", len(recent))
	}
	// Newest first.
	if recent[0].Input != "bad.m4a" || recent[2].Input != "one.m4a" {
		t.Errorf("order = %q, %q, %q", recent[0].Input, recent[1].Input, recent[2].Input)
	}
	if recent[2].Duration != 42*time.Second {
		t.Errorf("duration = %v", recent[2].Duration)
	}
	if recent[1].Status != runlog.StatusPartial || recent[1].FailedSegments != 2 {
		t.Errorf("partial run = %+v", recent[1])
	}
	if recent[0].Error == "" {
		t.Error("failed run lost its error text")
	}
}

func TestRecordFillsIDAndTimestamp(t *testing.T) {
	store := testsupport.MustOpenStore(t)

	run, err := store.Record(context.Background(), runlog.Run{Input: "a.m4a", AssetID: "a", Status: runlog.StatusCompleted})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if run.ID == "" {
		t.Error("ID not generated")
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt not filled")
	}
}

func TestRecentLimit(t *testing.T) {
	store := testsupport.MustOpenStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, runlog.Run{Input: "x.m4a", AssetID: "x", Status: runlog.StatusCompleted}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("got %d runs, want 2", len(recent))
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := runlog.Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := store.Record(context.Background(), runlog.Run{Input: "a.m4a", AssetID: "a", Status: runlog.StatusCompleted}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := runlog.Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer reopened.Close()
	recent, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("got %d runs after reopen", len(recent))
	}
}
