package widgets

import (
	"fmt"

	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// List shows one line per item and keeps a highlighted selection. Its data is
// an array, or an object with an "items" array and optional "title".
type List struct {
	*cell.Base
	def config.CellConfig
	box *surface.Box

	items    []any
	selected int
}

// NewList returns an unbuilt list cell.
func NewList(spec cell.Spec, def config.CellConfig) *List {
	l := &List{def: def, selected: -1}
	l.Base = cell.NewBase(spec, l)
	return l
}

// Build mounts the list box.
func (l *List) Build() (cell.Element, error) {
	l.box = newBox(l.Path(), l.def)
	if err := l.Mount(l.box); err != nil {
		return nil, err
	}
	return l.Seal()
}

// Refresh binds data and redraws the items. A selection past the new end is
// cleared.
func (l *List) Refresh(data any) error {
	if err := l.Base.Refresh(data); err != nil {
		return err
	}
	if title, ok := titleFrom(data); ok {
		l.box.SetTitle(title)
	}

	items, _ := data.([]any)
	if v, ok := field(data, "items"); ok {
		items, _ = v.([]any)
	}
	l.items = items
	if l.selected >= len(items) {
		l.selected = -1
	}
	l.redraw()
	return nil
}

func (l *List) redraw() {
	lines := make([]string, len(l.items))
	for i, it := range l.items {
		lines[i] = Label(it)
	}
	l.box.SetLines(lines...)
	l.box.SetSelected(l.selected)
}

// Items returns the current items.
func (l *List) Items() []any {
	return append([]any(nil), l.items...)
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Selected returns the highlighted index, or -1.
func (l *List) Selected() int { return l.selected }

// Select highlights item i and emits EventSelect with the item's label and
// index. The emit error of an ancestor handler is returned unchanged.
func (l *List) Select(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("widgets: %s: selection %d out of range [0,%d)", l.Path(), i, len(l.items))
	}
	l.selected = i
	l.box.SetSelected(i)
	return l.Emit(EventSelect, Label(l.items[i]), i)
}

// Activate emits EventSelect for the highlighted item. It does nothing when
// no item is highlighted.
func (l *List) Activate() error {
	if l.selected < 0 {
		return nil
	}
	return l.Select(l.selected)
}

// Next moves the highlight down one item, stopping at the last.
func (l *List) Next() error {
	return l.move(1)
}

// Prev moves the highlight up one item, stopping at the first.
func (l *List) Prev() error {
	return l.move(-1)
}

func (l *List) move(delta int) error {
	if len(l.items) == 0 {
		return nil
	}
	next := l.selected + delta
	if l.selected < 0 {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	if next >= len(l.items) {
		next = len(l.items) - 1
	}
	if next == l.selected {
		return nil
	}
	l.selected = next
	l.box.SetSelected(next)
	return l.Emit(EventCursor, Label(l.items[next]), next)
}
