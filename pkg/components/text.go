package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible character width of s in terminal cells.
// ANSI escape sequences are ignored and wide characters count as two.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to at most maxWidth visible characters, preserving
// escape sequences that appear before the cut point.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "")
}

// TruncateWithTail truncates s to at most maxWidth visible characters,
// ending in tail when anything was cut. The tail counts toward maxWidth.
func TruncateWithTail(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// Pad pads s with spaces to width visible cells according to align. Odd
// centering padding goes on the right. Wider strings are returned unchanged.
func Pad(s string, width int, align Align) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	total := width - vis
	switch align {
	case AlignRight:
		return strings.Repeat(" ", total) + s
	case AlignCenter:
		left := total / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
	default:
		return s + strings.Repeat(" ", total)
	}
}

// Fit truncates or pads s to exactly width visible cells. Truncation marks
// the cut with an ellipsis.
func Fit(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	if VisibleLen(s) > width {
		return TruncateWithTail(s, width, "…")
	}
	return Pad(s, width, align)
}

// Wrap word-wraps s at width, respecting escape sequences and wide
// characters. Lines are broken at spaces and hyphens; words longer than
// width are hard-wrapped.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	wrapped := ansi.Wrap(s, width, "")
	return strings.Split(wrapped, "\n")
}
