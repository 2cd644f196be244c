package widgets

import (
	"sort"
	"strings"

	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// Panel groups the children its definition lists, laid out vertically or
// horizontally. Its own data may carry a "title"; every other key is handed
// to the child of the same name.
type Panel struct {
	*cell.Base
	def config.CellConfig
	reg *Registry
	box *surface.Box

	// auto panels grow a child for every data key they have not seen.
	auto bool
}

// NewPanel returns an unbuilt panel whose children come from def.Children.
func NewPanel(spec cell.Spec, def config.CellConfig, reg *Registry) *Panel {
	p := &Panel{def: def, reg: reg}
	p.Base = cell.NewBase(spec, p)
	return p
}

// NewAutoPanel returns a panel that, in addition to its configured children,
// attaches a cell for each new key in its data: a list for arrays, a panel
// of the same kind for objects, and text for everything else.
func NewAutoPanel(spec cell.Spec, def config.CellConfig, reg *Registry) *Panel {
	p := NewPanel(spec, def, reg)
	p.auto = true
	return p
}

// Build mounts the panel box and builds every configured child.
func (p *Panel) Build() (cell.Element, error) {
	p.box = newBox(p.Path(), p.def)
	if err := p.Mount(p.box); err != nil {
		return nil, err
	}
	for _, def := range p.def.Children {
		child, err := p.reg.New(def, p.ChildSpec(def.Name))
		if err != nil {
			return nil, err
		}
		if err := p.Attach(def.Name, child); err != nil {
			return nil, err
		}
	}
	return p.Seal()
}

// Refresh binds data and refreshes the children named by its keys. An auto
// panel first attaches cells for keys it has no child for.
func (p *Panel) Refresh(data any) error {
	if p.auto && p.State() == cell.Built {
		if err := p.grow(data); err != nil {
			return err
		}
	}
	if err := p.Base.Refresh(data); err != nil {
		return err
	}
	if title, ok := titleFrom(data); ok {
		p.box.SetTitle(title)
	}
	return nil
}

func (p *Panel) grow(data any) error {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		// Keys that cannot name a child stay reachable through JSON().
		if k == "" || k == "title" || strings.Contains(k, "/") {
			continue
		}
		if _, exists := p.Child(k); !exists {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		def := config.CellConfig{Name: k, Title: k, Kind: "text"}
		switch obj[k].(type) {
		case []any:
			def.Kind = "list"
		case map[string]any:
			def.Kind = "auto"
			def.Direction = p.def.Direction
		}
		child, err := p.reg.New(def, p.ChildSpec(k))
		if err != nil {
			return err
		}
		if err := p.Attach(k, child); err != nil {
			return err
		}
	}
	return nil
}
