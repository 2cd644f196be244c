package widgets

import (
	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/components"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// defaultGaugeMax is the scale used when neither the definition nor the
// data sets one.
const defaultGaugeMax = 100

// Gauge shows a value as a horizontal bar. Its data is a number, or an object
// with "value" and optional "max", "label" and "title" fields.
type Gauge struct {
	*cell.Base
	def config.CellConfig
	box *surface.Box

	value float64
	max   float64
	label string
}

// NewGauge returns an unbuilt gauge cell.
func NewGauge(spec cell.Spec, def config.CellConfig) *Gauge {
	g := &Gauge{def: def, max: def.Max}
	if g.max <= 0 {
		g.max = defaultGaugeMax
	}
	g.Base = cell.NewBase(spec, g)
	return g
}

// Build mounts the gauge box.
func (g *Gauge) Build() (cell.Element, error) {
	g.box = newBox(g.Path(), g.def)
	g.box.SetContent(g.lines)
	if err := g.Mount(g.box); err != nil {
		return nil, err
	}
	return g.Seal()
}

// Refresh binds data and updates the value, scale and label.
func (g *Gauge) Refresh(data any) error {
	if err := g.Base.Refresh(data); err != nil {
		return err
	}
	if title, ok := titleFrom(data); ok {
		g.box.SetTitle(title)
	}
	if v, ok := number(data); ok {
		g.value = v
		return nil
	}
	if v, ok := field(data, "value"); ok {
		g.value, _ = number(v)
	}
	if v, ok := field(data, "max"); ok {
		if m, ok := number(v); ok && m > 0 {
			g.max = m
		}
	}
	if v, ok := field(data, "label"); ok {
		g.label = Label(v)
	}
	return nil
}

// Value returns the current value and scale.
func (g *Gauge) Value() (value, max float64) { return g.value, g.max }

// Ratio returns the filled fraction in [0, 1].
func (g *Gauge) Ratio() float64 { return components.Ratio(g.value, g.max) }

func (g *Gauge) lines(width int) []string {
	style := components.DefaultGaugeStyle()
	style.Label = g.label
	if g.def.Color != "" {
		style.FilledColor = g.def.Color
	}

	// " 100%" is at most five cells.
	bar := width - 5
	if g.label != "" {
		bar -= components.VisibleLen(g.label) + 1
	}
	if bar < 1 {
		bar = 1
	}
	return []string{components.NewGauge(style).Render(g.value, g.max, bar)}
}
