// Package widgets provides the concrete cells a dashboard is built from.
// Each cell embeds *cell.Base, mounts a *surface.Box, and redraws that box
// from its node-local JSON after every refresh.
package widgets

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/components"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// Event types emitted by the built-in cells.
const (
	// EventSelect is emitted by a List when an item is chosen.
	EventSelect = "select"
	// EventCursor is emitted by a List when its highlight moves.
	EventCursor = "cursor"
)

// UnknownKindError is returned when a cell definition names a kind the
// registry has no factory for.
type UnknownKindError struct {
	Kind string
	Path string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("widgets: unknown cell kind %q at %s", e.Kind, e.Path)
}

// Factory constructs an unbuilt cell for def at spec. reg is passed so
// containers can construct their children.
type Factory func(def config.CellConfig, spec cell.Spec, reg *Registry) (cell.Node, error)

// Registry maps cell kinds to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with every built-in kind: text, list,
// gauge, sparkline, panel and auto.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("text", func(def config.CellConfig, spec cell.Spec, _ *Registry) (cell.Node, error) {
		return NewText(spec, def), nil
	})
	r.Register("list", func(def config.CellConfig, spec cell.Spec, _ *Registry) (cell.Node, error) {
		return NewList(spec, def), nil
	})
	r.Register("gauge", func(def config.CellConfig, spec cell.Spec, _ *Registry) (cell.Node, error) {
		return NewGauge(spec, def), nil
	})
	r.Register("sparkline", func(def config.CellConfig, spec cell.Spec, _ *Registry) (cell.Node, error) {
		return NewSparkline(spec, def), nil
	})
	r.Register("panel", func(def config.CellConfig, spec cell.Spec, reg *Registry) (cell.Node, error) {
		return NewPanel(spec, def, reg), nil
	})
	r.Register("auto", func(def config.CellConfig, spec cell.Spec, reg *Registry) (cell.Node, error) {
		return NewAutoPanel(spec, def, reg), nil
	})
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, f Factory) {
	r.factories[kind] = f
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// New constructs the cell def describes at spec.
func (r *Registry) New(def config.CellConfig, spec cell.Spec) (cell.Node, error) {
	f, ok := r.factories[def.Kind]
	if !ok {
		return nil, &UnknownKindError{Kind: def.Kind, Path: spec.Path}
	}
	return f(def, spec, r)
}

// newBox returns the box every built-in cell mounts.
func newBox(path string, def config.CellConfig, opts ...surface.Option) *surface.Box {
	base := []surface.Option{
		surface.WithTitle(def.Title),
		surface.WithColor(def.Color),
		surface.WithAlign(components.ParseAlign(def.Align)),
		surface.WithDirection(surface.ParseDirection(def.Direction)),
	}
	return surface.NewBox(path, append(base, opts...)...)
}

// field returns data[key] when data is an object holding key.
func field(data any, key string) (any, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// titleFrom returns the "title" string field of data, if any.
func titleFrom(data any) (string, bool) {
	v, ok := field(data, "title")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Label formats a JSON value for display on one line. Objects use their
// "label", "name", "title" or "text" field when present.
func Label(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return oneLine(x)
	case float64:
		return components.FormatValue(x)
	case bool:
		return strconv.FormatBool(x)
	case map[string]any:
		for _, k := range []string{"label", "name", "title", "text"} {
			if s, ok := x[k]; ok {
				return Label(s)
			}
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return oneLine(fmt.Sprint(v))
	}
	return string(b)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// number reads a JSON number, accepting numeric strings.
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}
