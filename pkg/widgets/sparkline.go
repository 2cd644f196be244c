package widgets

import (
	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/components"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// defaultHistory bounds the points a sparkline keeps when its definition
// does not.
const defaultHistory = 60

// Sparkline shows a series of numbers. Its data is an array of numbers that
// replaces the series, a number appended to it, or an object with "values"
// or "value" and an optional "title".
type Sparkline struct {
	*cell.Base
	def config.CellConfig
	box *surface.Box

	history []float64
	limit   int
}

// NewSparkline returns an unbuilt sparkline cell.
func NewSparkline(spec cell.Spec, def config.CellConfig) *Sparkline {
	s := &Sparkline{def: def, limit: def.History}
	if s.limit <= 0 {
		s.limit = defaultHistory
	}
	s.Base = cell.NewBase(spec, s)
	return s
}

// Build mounts the sparkline box.
func (s *Sparkline) Build() (cell.Element, error) {
	s.box = newBox(s.Path(), s.def)
	s.box.SetContent(s.lines)
	if err := s.Mount(s.box); err != nil {
		return nil, err
	}
	return s.Seal()
}

// Refresh binds data and updates the series.
func (s *Sparkline) Refresh(data any) error {
	if err := s.Base.Refresh(data); err != nil {
		return err
	}
	if title, ok := titleFrom(data); ok {
		s.box.SetTitle(title)
	}

	if v, ok := field(data, "values"); ok {
		data = v
	} else if v, ok := field(data, "value"); ok {
		data = v
	}
	switch x := data.(type) {
	case []any:
		s.history = s.history[:0]
		for _, e := range x {
			if f, ok := number(e); ok {
				s.push(f)
			}
		}
	default:
		if f, ok := number(x); ok {
			s.push(f)
		}
	}
	return nil
}

func (s *Sparkline) push(v float64) {
	s.history = append(s.history, v)
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
}

// History returns a copy of the series.
func (s *Sparkline) History() []float64 {
	return append([]float64(nil), s.history...)
}

func (s *Sparkline) lines(width int) []string {
	if len(s.history) == 0 {
		return nil
	}
	style := components.DefaultSparklineStyle()
	if s.def.Color != "" {
		style.Color = s.def.Color
	}
	delta := components.Delta(s.history)
	glyphs := width - components.VisibleLen(delta) - 1
	if glyphs < 1 {
		return []string{components.NewSparkline(style).Render(s.history, width)}
	}
	return []string{components.NewSparkline(style).Render(s.history, glyphs) + " " + delta}
}
