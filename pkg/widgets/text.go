package widgets

import (
	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// Text shows one wrapped paragraph. Its data is a string or scalar, or an
// object with "text" and optional "title" fields.
type Text struct {
	*cell.Base
	def config.CellConfig
	box *surface.Box
}

// NewText returns an unbuilt text cell.
func NewText(spec cell.Spec, def config.CellConfig) *Text {
	t := &Text{def: def}
	t.Base = cell.NewBase(spec, t)
	return t
}

// Build mounts the text box.
func (t *Text) Build() (cell.Element, error) {
	t.box = newBox(t.Path(), t.def)
	if err := t.Mount(t.box); err != nil {
		return nil, err
	}
	return t.Seal()
}

// Refresh binds data and redraws the paragraph.
func (t *Text) Refresh(data any) error {
	if err := t.Base.Refresh(data); err != nil {
		return err
	}
	if title, ok := titleFrom(data); ok {
		t.box.SetTitle(title)
	}
	t.box.SetText(t.Text())
	return nil
}

// Text returns the paragraph the current data renders as.
func (t *Text) Text() string {
	data := t.JSON()
	if v, ok := field(data, "text"); ok {
		data = v
	}
	if s, ok := data.(string); ok {
		return s
	}
	return Label(data)
}
