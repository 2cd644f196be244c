package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ValidHex reports whether hex is a "#RRGGBB" or "RRGGBB" color.
func ValidHex(hex string) bool {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}

// normalizeHex returns hex with a leading '#', or "" when it is malformed.
func normalizeHex(hex string) string {
	if !ValidHex(hex) {
		return ""
	}
	return "#" + strings.TrimPrefix(hex, "#")
}

// Foreground returns a style painting text in hex. A malformed color yields
// the unstyled default.
func Foreground(hex string) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c := normalizeHex(hex); c != "" {
		st = st.Foreground(lipgloss.Color(c))
	}
	return st
}

// Paint renders s in the hex foreground color. Under a monochrome color
// profile the text is returned without escapes.
func Paint(s, hex string) string {
	if s == "" {
		return ""
	}
	return Foreground(hex).Render(s)
}

// Bold renders s in bold.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

// Dim renders s faint.
func Dim(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}

// Reverse renders s with foreground and background swapped. Lists use it for
// the selected row.
func Reverse(s string) string {
	return lipgloss.NewStyle().Reverse(true).Render(s)
}
