package widgets

import (
	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// Dashboard is the root of a configured cell tree. Load builds one top-level
// cell per definition onto a vertical stack.
type Dashboard struct {
	*cell.Container
	cells []config.CellConfig
	reg   *Registry
	stack *surface.Box
}

// NewDashboard returns an unloaded dashboard called name. A nil reg uses
// DefaultRegistry.
func NewDashboard(name string, cells []config.CellConfig, reg *Registry, opts ...cell.Option) *Dashboard {
	if reg == nil {
		reg = DefaultRegistry()
	}
	d := &Dashboard{cells: cells, reg: reg}
	d.Container = cell.NewContainer(name, d, opts...)
	return d
}

// FromConfig returns an unloaded dashboard for cfg's layout.
func FromConfig(cfg *config.Config, opts ...cell.Option) *Dashboard {
	opts = append([]cell.Option{cell.WithFindCache(cfg.General.FindCacheSize)}, opts...)
	return NewDashboard(cfg.RootName(), cfg.Cells(), nil, opts...)
}

// Load mounts the stack and builds every top-level cell.
func (d *Dashboard) Load() error {
	d.stack = surface.NewStack("/", surface.Vertical)
	if err := d.Mount(d.stack); err != nil {
		return err
	}
	for _, def := range d.cells {
		node, err := d.reg.New(def, d.ChildSpec(def.Name))
		if err != nil {
			return err
		}
		if err := d.Attach(def.Name, node); err != nil {
			return err
		}
	}
	d.Logger().Info("dashboard loaded", "root", d.Name(), "cells", len(d.cells))
	return nil
}

// Render draws the whole tree at width.
func (d *Dashboard) Render(width int, th surface.Theme) string {
	if d.stack == nil {
		return ""
	}
	return d.stack.Render(width, th)
}

// Box returns the render box of the top-level cell called name.
func (d *Dashboard) Box(name string) (*surface.Box, bool) {
	n, ok := d.Child(name)
	if !ok {
		return nil, false
	}
	b, ok := n.Element().(*surface.Box)
	return b, ok
}
