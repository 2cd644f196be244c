package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// listDoc is the data tree every format below encodes.
var listDoc = map[string]any{
	"list": map[string]any{
		"items": []any{1.0, 2.0, 3.0},
	},
	"status": map[string]any{
		"text": "ok",
		"live": true,
	},
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{JSON, `{"list": {"items": [1, 2, 3]}, "status": {"text": "ok", "live": true}}`},
		{JSONC, `{
			// comments and trailing commas are allowed
			"list": {"items": [1, 2, 3,]},
			/* block */ "status": {"text": "ok", "live": true},
		}`},
		{YAML, "list:\n  items: [1, 2, 3]\nstatus:\n  text: ok\n  live: true\n"},
		{TOML, "[list]\nitems = [1, 2, 3]\n\n[status]\ntext = \"ok\"\nlive = true\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Decode(tt.format, []byte(tt.data))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(listDoc, got); diff != "" {
				t.Errorf("decoded tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range []Format{JSON, YAML, TOML} {
		got, err := Decode(f, []byte("  \n"))
		if err != nil || got != nil {
			t.Errorf("Decode(%s, blank) = %v, %v; want nil, nil", f, got, err)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{JSON, `{"list": `},
		{YAML, "list: [1, 2"},
		{TOML, "[list"},
	}
	for _, tt := range tests {
		if _, err := Decode(tt.format, []byte(tt.data)); err == nil {
			t.Errorf("Decode(%s, %q) should fail", tt.format, tt.data)
		}
	}

	var uf *UnsupportedFormatError
	if _, err := Decode("xml", []byte("<a/>")); !errors.As(err, &uf) {
		t.Errorf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"data.json":    JSON,
		"data.JSONC":   JSONC,
		"a/b/data.yml": YAML,
		"data.yaml":    YAML,
		"data.toml":    TOML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("data.csv"); err == nil {
		t.Error("expected error for .csv")
	}
}

func TestNormalize(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := map[string]any{
		"int":    int64(7),
		"uint":   uint8(3),
		"f32":    float32(0.5),
		"keys":   map[any]any{1: "one"},
		"tables": []map[string]any{{"a": 1}},
		"when":   ts,
		"nil":    nil,
	}
	want := map[string]any{
		"int":    7.0,
		"uint":   3.0,
		"f32":    0.5,
		"keys":   map[string]any{"1": "one"},
		"tables": []any{map[string]any{"a": 1.0}},
		"when":   "2026-01-02T03:04:05Z",
		"nil":    nil,
	}
	if diff := cmp.Diff(want, Normalize(in)); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestFileFetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	if err := os.WriteFile(path, []byte("list:\n  items: [a, b]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFile(path)
	if f.Name() != path {
		t.Errorf("Name = %q, want %q", f.Name(), path)
	}
	if f.ModTime().IsZero() {
		t.Error("ModTime of an existing file should not be zero")
	}

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := map[string]any{"list": map[string]any{"items": []any{"a", "b"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	missing := NewFile(filepath.Join(dir, "missing.json"))
	if _, err := missing.Fetch(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if !missing.ModTime().IsZero() {
		t.Error("ModTime of a missing file should be zero")
	}
}

func TestStatic(t *testing.T) {
	s := Static{Label: "fixture", Data: map[string]any{"a": 1.0}}
	got, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff(s.Data, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if s.Name() != "fixture" {
		t.Errorf("Name = %q", s.Name())
	}
}
