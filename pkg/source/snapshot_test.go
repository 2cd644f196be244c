package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// flaky returns data until broken is set.
type flaky struct {
	data   any
	broken bool
}

func (f *flaky) Name() string { return "flaky" }

func (f *flaky) Fetch(ctx context.Context) (any, error) {
	if f.broken {
		return nil, errors.New("unreachable")
	}
	return f.data, nil
}

func TestSnapshotServesLastGoodTree(t *testing.T) {
	dir := t.TempDir()
	src := &flaky{data: map[string]any{"list": []any{"a", 1.0}}}
	s := NewSnapshot(src, dir, nil)

	got, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff(src.data, got); diff != "" {
		t.Errorf("fresh fetch (-want +got):\n%s", diff)
	}

	src.broken = true
	got, err = s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch with stored snapshot: %v", err)
	}
	if diff := cmp.Diff(src.data, got); diff != "" {
		t.Errorf("stale fetch (-want +got):\n%s", diff)
	}

	// A second Snapshot over the same dir sees the stored tree.
	again := NewSnapshot(src, dir, nil)
	if _, ok := again.Last(); !ok {
		t.Error("Last() found nothing in a populated dir")
	}
}

func TestSnapshotWithoutStoredTreeFails(t *testing.T) {
	s := NewSnapshot(&flaky{broken: true}, t.TempDir(), nil)
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("expected the fetch error with nothing stored")
	}
}

func TestSnapshotLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewSnapshot(&flaky{data: "x"}, dir, nil)
	for i := 0; i < 3; i++ {
		if _, err := s.Fetch(context.Background()); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want one .json file", names)
	}
}

func TestSnapshotForwardsModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewSnapshot(NewFile(path), t.TempDir(), nil)
	if s.ModTime().IsZero() {
		t.Error("ModTime() is zero for an existing file")
	}
	if got := NewSnapshot(Static{Label: "s"}, t.TempDir(), nil).ModTime(); !got.IsZero() {
		t.Errorf("ModTime() = %v for a source without one", got)
	}
	if s.Name() != path {
		t.Errorf("Name() = %q, want %q", s.Name(), path)
	}
}
