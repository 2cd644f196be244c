// Package surface is the terminal render backend for cell trees. A Box is
// the render handle a cell mounts: it holds the cell's own lines and the
// boxes of its children, and renders itself with lipgloss at a given width.
package surface

import "strings"

// Default theme colors.
const (
	// ColorBorderDefault is the muted gray used for unfocused borders.
	ColorBorderDefault = "#6B7280"

	// ColorBorderFocus is the purple used for the focused cell's border.
	ColorBorderFocus = "#7C3AED"

	// ColorAccent is a softer purple for titles and highlights.
	ColorAccent = "#A78BFA"

	// ColorDim is used for de-emphasized text such as the status line.
	ColorDim = "#9CA3AF"

	// ColorError is used for error message text.
	ColorError = "#EF4444"
)

// Theme is the palette boxes render with.
type Theme struct {
	Border string
	Focus  string
	Accent string
	Dim    string
	Error  string
}

// DefaultTheme returns the built-in purple-on-gray palette.
func DefaultTheme() Theme {
	return Theme{
		Border: ColorBorderDefault,
		Focus:  ColorBorderFocus,
		Accent: ColorAccent,
		Dim:    ColorDim,
		Error:  ColorError,
	}
}

// Merge returns t with every empty color taken from fallback.
func (t Theme) Merge(fallback Theme) Theme {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return Theme{
		Border: pick(t.Border, fallback.Border),
		Focus:  pick(t.Focus, fallback.Focus),
		Accent: pick(t.Accent, fallback.Accent),
		Dim:    pick(t.Dim, fallback.Dim),
		Error:  pick(t.Error, fallback.Error),
	}
}

// Direction is the axis a box lays its children out along.
type Direction int

const (
	// Vertical stacks children top to bottom.
	Vertical Direction = iota
	// Horizontal places children side by side, sharing the width.
	Horizontal
)

// ParseDirection maps "horizontal"/"row" to Horizontal and everything else
// to Vertical.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "row":
		return Horizontal
	default:
		return Vertical
	}
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}
