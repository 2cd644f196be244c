package components

import (
	"fmt"
	"math"
	"strings"
)

// Block characters for sub-cell precision (8 levels per cell).
var gaugeBlocks = [9]rune{
	' ', // 0/8
	'▏', // 1/8
	'▎', // 2/8
	'▍', // 3/8
	'▌', // 4/8
	'▋', // 5/8
	'▊', // 6/8
	'▉', // 7/8
	'█', // 8/8
}

// Default gauge colors.
const (
	GaugeColorFilled   = "#4CAF50"
	GaugeColorWarning  = "#FF9800"
	GaugeColorCritical = "#F44336"
)

// GaugeStyle configures the appearance of a horizontal bar gauge.
type GaugeStyle struct {
	Width             int     // bar width in cells
	ShowPercent       bool    // append "73%"
	ShowValue         bool    // append "7.3/10.0"
	Label             string  // optional left label
	LabelWidth        int     // fixed label column width (0 = label plus one space)
	FilledColor       string  // hex color for the filled portion
	WarningThreshold  float64 // ratio (0-1) where the warning color starts
	CriticalThreshold float64 // ratio (0-1) where the critical color starts
	WarningColor      string
	CriticalColor     string
}

// DefaultGaugeStyle returns a GaugeStyle with a 20-cell bar, a percent label
// and warning/critical colors at 70% and 90%.
func DefaultGaugeStyle() GaugeStyle {
	return GaugeStyle{
		Width:             20,
		ShowPercent:       true,
		FilledColor:       GaugeColorFilled,
		WarningThreshold:  0.7,
		CriticalThreshold: 0.9,
		WarningColor:      GaugeColorWarning,
		CriticalColor:     GaugeColorCritical,
	}
}

// Gauge renders horizontal bar gauges with sub-cell precision.
type Gauge struct {
	style GaugeStyle
}

// NewGauge creates a new Gauge with the given style.
func NewGauge(style GaugeStyle) *Gauge {
	return &Gauge{style: style}
}

// Ratio returns value/maxValue clamped to [0, 1]. A non-positive maxValue
// yields 0.
func Ratio(value, maxValue float64) float64 {
	if maxValue <= 0 || math.IsNaN(value) {
		return 0
	}
	return math.Max(0, math.Min(1, value/maxValue))
}

// Render renders a gauge line whose bar is width cells wide. A non-positive
// width falls back to the style width.
func (g *Gauge) Render(value, maxValue float64, width int) string {
	if width <= 0 {
		width = g.style.Width
	}
	if width <= 0 {
		width = 20
	}
	ratio := Ratio(value, maxValue)

	var b strings.Builder
	if g.style.Label != "" {
		labelW := g.style.LabelWidth
		if labelW <= 0 {
			labelW = VisibleLen(g.style.Label) + 1
		}
		b.WriteString(Pad(g.style.Label, labelW, AlignLeft))
	}
	b.WriteString(Paint(Bar(ratio, width), g.fillColor(ratio)))
	if g.style.ShowPercent {
		fmt.Fprintf(&b, " %d%%", int(math.Round(ratio*100)))
	}
	if g.style.ShowValue {
		fmt.Fprintf(&b, " %.1f/%.1f", value, maxValue)
	}
	return b.String()
}

// fillColor selects the bar color for ratio from the style thresholds.
func (g *Gauge) fillColor(ratio float64) string {
	s := g.style
	switch {
	case s.CriticalThreshold > 0 && ratio >= s.CriticalThreshold:
		return firstNonEmpty(s.CriticalColor, GaugeColorCritical)
	case s.WarningThreshold > 0 && ratio >= s.WarningThreshold:
		return firstNonEmpty(s.WarningColor, GaugeColorWarning)
	default:
		return firstNonEmpty(s.FilledColor, GaugeColorFilled)
	}
}

// Bar returns an uncolored run of exactly width cells filled to ratio, using
// eighth blocks for the boundary cell.
func Bar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	total := width * 8
	filled := int(math.Round(math.Max(0, math.Min(1, ratio)) * float64(total)))

	full, partial := filled/8, filled%8
	empty := width - full
	if partial > 0 {
		empty--
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(string(gaugeBlocks[8]), full))
	if partial > 0 {
		b.WriteRune(gaugeBlocks[partial])
	}
	b.WriteString(strings.Repeat(" ", empty))
	return b.String()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
