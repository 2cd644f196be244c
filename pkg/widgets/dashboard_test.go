package widgets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/emitter"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

func TestEndToEndListRefresh(t *testing.T) {
	d := load(t, config.CellConfig{Name: "list", Kind: "list"})

	data := map[string]any{
		"list": map[string]any{"items": []any{1.0, 2.0, 3.0}},
	}
	if err := d.Update(data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	list := find[*List](t, d, "/list")
	if diff := cmp.Diff(map[string]any{"items": []any{1.0, 2.0, 3.0}}, list.JSON()); diff != "" {
		t.Errorf("list json (-want +got):\n%s", diff)
	}
	box, ok := d.Box("list")
	if !ok {
		t.Fatal("no box for /list")
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, box.Lines()); diff != "" {
		t.Errorf("list lines (-want +got):\n%s", diff)
	}

	out := d.Render(12, surface.DefaultTheme())
	want := strings.Join([]string{
		"╭──────────╮",
		"│1         │",
		"│2         │",
		"│3         │",
		"╰──────────╯",
	}, "\n")
	if out != want {
		t.Errorf("render mismatch:\n%s\nwant:\n%s", out, want)
	}
}

func TestListSelectBubblesToRootOnce(t *testing.T) {
	d := load(t, config.CellConfig{
		Name: "main",
		Kind: "panel",
		Children: []config.CellConfig{
			{Name: "list", Kind: "list"},
		},
	})
	data := map[string]any{"main": map[string]any{"list": []any{"item-1", "item-2"}}}
	for i := 0; i < 3; i++ {
		if err := d.Update(data); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	var got [][]any
	_ = d.On(EventSelect, emitter.Func(func(args ...any) { got = append(got, args) }))

	list := find[*List](t, d, "main/list")
	if err := list.Select(1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := [][]any{{"item-2", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("root deliveries (-want +got):\n%s", diff)
	}
}

func TestDashboardUnknownKind(t *testing.T) {
	d := NewDashboard("app", []config.CellConfig{{Name: "x", Kind: "hologram"}}, nil)
	err := d.Load()
	var uk *UnknownKindError
	if !errors.As(err, &uk) {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
	if uk.Kind != "hologram" || uk.Path != "/x" {
		t.Errorf("unexpected error fields: %+v", uk)
	}
}

func TestDashboardNestedUnknownKindIsWrapped(t *testing.T) {
	d := NewDashboard("app", []config.CellConfig{{
		Name:     "p",
		Kind:     "panel",
		Children: []config.CellConfig{{Name: "x", Kind: "nope"}},
	}}, nil)
	err := d.Load()
	var uk *UnknownKindError
	if !errors.As(err, &uk) || uk.Path != "/p/x" {
		t.Fatalf("expected UnknownKindError at /p/x, got %v", err)
	}
}

func TestDashboardFromConfigPreset(t *testing.T) {
	cfg := config.DefaultConfig()
	d := FromConfig(cfg)
	if err := d.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Name() != "app" {
		t.Errorf("root name = %q", d.Name())
	}

	var paths []string
	_ = d.Walk(func(n cell.Node) error {
		paths = append(paths, n.Path())
		return nil
	})
	want := []string{"/status", "/overview", "/overview/cpu", "/overview/load", "/list"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("tree (-want +got):\n%s", diff)
	}

	data := map[string]any{
		"status":   "all good",
		"overview": map[string]any{"cpu": 42.0, "load": []any{1.0, 2.0, 3.0}},
		"list":     []any{"a", "b"},
	}
	if err := d.Update(data); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v, _ := find[*Gauge](t, d, "/overview/cpu").Value(); v != 42 {
		t.Errorf("cpu gauge = %v, want 42", v)
	}
	out := d.Render(60, surface.DefaultTheme())
	for _, want := range []string{"Status", "all good", "CPU", "42%", "Load", "Items", "a", "b"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestDashboardRenderBeforeLoad(t *testing.T) {
	d := NewDashboard("app", nil, nil)
	if got := d.Render(40, surface.DefaultTheme()); got != "" {
		t.Errorf("render before load = %q, want empty", got)
	}
	if _, ok := d.Box("list"); ok {
		t.Error("Box before load should report false")
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	want := []string{"auto", "gauge", "list", "panel", "sparkline", "text"}
	if diff := cmp.Diff(want, r.Kinds()); diff != "" {
		t.Errorf("kinds (-want +got):\n%s", diff)
	}

	r.Register("custom", func(def config.CellConfig, spec cell.Spec, _ *Registry) (cell.Node, error) {
		return NewText(spec, def), nil
	})
	n, err := r.New(config.CellConfig{Name: "c", Kind: "custom"}, cell.Spec{Path: "/c"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := n.(*Text); !ok {
		t.Errorf("custom factory returned %T", n)
	}
}
