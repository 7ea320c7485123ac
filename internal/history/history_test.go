package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/assetforge/assetctl/internal/history"
	"github.com/assetforge/assetctl/internal/report"
)

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := history.Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	rep := &report.Report{}
	rep.Add(report.Success("core", "windows", "out/resource_core_win", "out/resource_core_win.manifest"))
	rep.Add(report.Failure("mods", "", errors.New("no files selected")))

	if err := store.Record(ctx, "20260830T120000Z", rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.RunID != "20260830T120000Z" {
			t.Errorf("unexpected run id %q", e.RunID)
		}
	}

	var byBundle = map[string]history.Entry{}
	for _, e := range entries {
		byBundle[e.Bundle] = e
	}
	if e := byBundle["core"]; !e.Ok || e.Archive != "out/resource_core_win" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e := byBundle["mods"]; e.Ok || e.Err != "no files selected" {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "history.db"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	for i := 0; i < 3; i++ {
		rep := &report.Report{}
		rep.Add(report.Success("core", "", "out/resource_core", "out/resource_core.manifest"))
		if err := store.Record(ctx, "run", rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestOpenTwice(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := history.Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.Close()

	// Reopening an initialized database must not fail on the schema.
	store, err = history.Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.Close()
}
