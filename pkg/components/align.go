// Package components provides the ANSI-aware text primitives the terminal
// surface and the concrete cells render with: width measurement, padding,
// truncation, wrapping, and the compact gauge and sparkline glyph runs.
package components

import "strings"

// Align controls horizontal text alignment within a line.
type Align int

const (
	// AlignLeft aligns text to the left edge (default).
	AlignLeft Align = iota
	// AlignCenter centers text horizontally.
	AlignCenter
	// AlignRight aligns text to the right edge.
	AlignRight
)

// ParseAlign maps "left", "center" and "right" to an Align. Anything else is
// AlignLeft.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// String returns the lower-case alignment name.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}
