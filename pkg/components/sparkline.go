package components

import (
	"fmt"
	"math"
	"strings"
)

// Sparkline block characters: 8 vertical levels per cell.
var sparkBlocks = [8]rune{
	'▁', // 1/8
	'▂', // 2/8
	'▃', // 3/8
	'▄', // 4/8
	'▅', // 5/8
	'▆', // 6/8
	'▇', // 7/8
	'█', // 8/8
}

// SparklineStyle configures the appearance of a sparkline.
type SparklineStyle struct {
	Width      int      // number of cells to display
	Color      string   // hex color for the glyphs
	ShowMinMax bool     // flank the glyphs with the min and max values
	MinY       *float64 // fixed minimum (nil = auto-scale)
	MaxY       *float64 // fixed maximum (nil = auto-scale)
	Label      string   // optional prefix label
}

// DefaultSparklineStyle returns a 20-cell light-blue SparklineStyle.
func DefaultSparklineStyle() SparklineStyle {
	return SparklineStyle{
		Width: 20,
		Color: "#64B5F6",
	}
}

// Sparkline renders inline sparkline charts using Unicode block elements.
type Sparkline struct {
	style SparklineStyle
}

// NewSparkline creates a new Sparkline with the given style.
func NewSparkline(style SparklineStyle) *Sparkline {
	return &Sparkline{style: style}
}

// Render renders the last width points of data. A non-positive width falls
// back to the style width.
func (s *Sparkline) Render(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	if width <= 0 {
		width = s.style.Width
	}
	if width <= 0 {
		width = 20
	}
	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	minY, maxY := sparkRange(points)
	if s.style.MinY != nil {
		minY = *s.style.MinY
	}
	if s.style.MaxY != nil {
		maxY = *s.style.MaxY
	}

	var parts []string
	if s.style.Label != "" {
		parts = append(parts, s.style.Label)
	}
	if s.style.ShowMinMax {
		parts = append(parts, FormatValue(minY))
	}
	parts = append(parts, Paint(Spark(points, minY, maxY), s.style.Color))
	if s.style.ShowMinMax {
		parts = append(parts, FormatValue(maxY))
	}
	return strings.Join(parts, " ")
}

// RenderWithDelta renders the sparkline followed by the percentage change
// between the last two points, marked with an up, down or right arrow.
func (s *Sparkline) RenderWithDelta(data []float64, width int) string {
	base := s.Render(data, width)
	if base == "" {
		return ""
	}
	return base + " " + Delta(data)
}

// Delta formats the change between the last two points of data.
func Delta(data []float64) string {
	if len(data) < 2 {
		return "→0.0%"
	}
	prev, curr := data[len(data)-2], data[len(data)-1]

	var delta float64
	switch {
	case prev != 0:
		delta = (curr - prev) / math.Abs(prev) * 100
	case curr > 0:
		delta = 100
	case curr < 0:
		delta = -100
	}

	switch {
	case delta > 0:
		return fmt.Sprintf("↑%.1f%%", delta)
	case delta < 0:
		return fmt.Sprintf("↓%.1f%%", -delta)
	default:
		return "→0.0%"
	}
}

// Spark maps each point onto one of eight block heights between minY and
// maxY. A flat range renders at mid-height.
func Spark(data []float64, minY, maxY float64) string {
	var b strings.Builder
	span := maxY - minY
	for _, v := range data {
		idx := 3
		if span > 0 {
			n := math.Max(0, math.Min(1, (v-minY)/span))
			idx = int(math.Round(n * 7))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func sparkRange(data []float64) (minY, maxY float64) {
	if len(data) == 0 {
		return 0, 0
	}
	minY, maxY = data[0], data[0]
	for _, v := range data[1:] {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	return minY, maxY
}

// FormatValue formats v compactly: integers without decimals, everything
// else with one.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e6 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
