package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/components"
)

var (
	_ cell.Element = (*Box)(nil)
	_ cell.Remover = (*Box)(nil)
)

// DefaultWidth is the width String and Lines render at.
const DefaultWidth = 80

// Renderer is anything a Box can lay out as a child.
type Renderer interface {
	Render(width int, th Theme) string
}

// Option configures a Box.
type Option func(*Box)

// WithTitle sets the title shown on the box's first line.
func WithTitle(title string) Option {
	return func(b *Box) { b.title = title }
}

// WithBorder turns the rounded border on or off.
func WithBorder(on bool) Option {
	return func(b *Box) { b.border = on }
}

// WithDirection sets the child layout axis.
func WithDirection(d Direction) Option {
	return func(b *Box) { b.direction = d }
}

// WithColor sets the foreground color of the box's own lines.
func WithColor(hex string) Option {
	return func(b *Box) { b.color = hex }
}

// WithAlign sets the alignment of the box's own lines.
func WithAlign(a components.Align) Option {
	return func(b *Box) { b.align = a }
}

// Box is the render handle of one cell. Its own content is either a list of
// lines, truncated to the render width, or a paragraph wrapped to it. Child
// boxes follow the content along the box's direction.
type Box struct {
	id        string
	title     string
	border    bool
	direction Direction
	color     string
	align     components.Align

	text     string
	wrap     bool
	lines    []string
	content  func(width int) []string
	selected int
	focused  bool

	children []Renderer
}

// NewBox returns a bordered, vertical box. id is the owning cell's path.
func NewBox(id string, opts ...Option) *Box {
	b := &Box{id: id, border: true, selected: -1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewStack returns a borderless box that only lays out children.
func NewStack(id string, d Direction) *Box {
	return NewBox(id, WithBorder(false), WithDirection(d))
}

// ID returns the box's identifier.
func (b *Box) ID() string { return b.id }

// Title returns the box title.
func (b *Box) Title() string { return b.title }

// SetTitle replaces the box title.
func (b *Box) SetTitle(title string) { b.title = title }

// SetText replaces the box content with a paragraph wrapped at render time.
func (b *Box) SetText(s string) {
	b.text = s
	b.wrap = true
	b.lines = nil
	b.content = nil
}

// SetLines replaces the box content with fixed lines.
func (b *Box) SetLines(lines ...string) {
	b.lines = append([]string(nil), lines...)
	b.text = ""
	b.wrap = false
	b.content = nil
	if b.selected >= len(b.lines) {
		b.selected = -1
	}
}

// SetContent replaces the box content with lines produced at render time
// for the interior width.
func (b *Box) SetContent(fn func(width int) []string) {
	b.content = fn
	b.lines = nil
	b.text = ""
	b.wrap = false
	b.selected = -1
}

// Lines returns the box's own content lines, unwrapped. Render-time content
// is produced at DefaultWidth.
func (b *Box) Lines() []string {
	if b.content != nil {
		return b.content(DefaultWidth)
	}
	if b.wrap {
		return strings.Split(b.text, "\n")
	}
	return append([]string(nil), b.lines...)
}

// SetSelected highlights line i. A negative index clears the highlight.
func (b *Box) SetSelected(i int) {
	if i >= len(b.lines) {
		i = -1
	}
	b.selected = i
}

// Selected returns the highlighted line index, or -1.
func (b *Box) Selected() int { return b.selected }

// SetFocused marks the box as focused; focused boxes use the theme's focus
// color for their border.
func (b *Box) SetFocused(on bool) { b.focused = on }

// Focused reports whether the box is focused.
func (b *Box) Focused() bool { return b.focused }

// Append adds a child. Elements that cannot render are ignored.
func (b *Box) Append(child cell.Element) {
	if r, ok := child.(Renderer); ok {
		b.children = append(b.children, r)
	}
}

// Remove drops a previously appended child.
func (b *Box) Remove(child cell.Element) {
	r, ok := child.(Renderer)
	if !ok {
		return
	}
	for i, c := range b.children {
		if c == r {
			b.children = append(b.children[:i:i], b.children[i+1:]...)
			return
		}
	}
}

// Len returns the number of children.
func (b *Box) Len() int { return len(b.children) }

// Render draws the box at the given outer width.
func (b *Box) Render(width int, th Theme) string {
	inner := width
	if b.border {
		inner -= 2
	}
	if inner < 1 {
		inner = 1
	}

	var blocks []string
	if b.title != "" {
		blocks = append(blocks, components.Bold(components.Paint(components.Fit(b.title, inner, components.AlignLeft), th.Accent)))
	}
	for i, line := range b.contentLines(inner) {
		line = components.Fit(line, inner, b.align)
		if i == b.selected {
			line = components.Reverse(line)
		} else if b.color != "" {
			line = components.Paint(line, b.color)
		}
		blocks = append(blocks, line)
	}
	if kids := b.renderChildren(inner, th); kids != "" {
		blocks = append(blocks, kids)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	if !b.border {
		return body
	}

	borderColor := th.Border
	if b.focused {
		borderColor = th.Focus
	}
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(inner)
	if components.ValidHex(borderColor) {
		st = st.BorderForeground(lipgloss.Color(borderColor))
	}
	return st.Render(body)
}

// String renders the box at DefaultWidth with the default theme.
func (b *Box) String() string {
	return b.Render(DefaultWidth, DefaultTheme())
}

func (b *Box) contentLines(width int) []string {
	if b.content != nil {
		return b.content(width)
	}
	if !b.wrap {
		return b.lines
	}
	if b.text == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(b.text, "\n") {
		out = append(out, components.Wrap(para, width)...)
	}
	return out
}

func (b *Box) renderChildren(width int, th Theme) string {
	if len(b.children) == 0 {
		return ""
	}
	parts := make([]string, 0, len(b.children))
	if b.direction == Vertical {
		for _, c := range b.children {
			parts = append(parts, c.Render(width, th))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	n := len(b.children)
	share := width / n
	if share < 1 {
		share = 1
	}
	for i, c := range b.children {
		w := share
		if i == n-1 {
			w = width - share*(n-1)
			if w < 1 {
				w = 1
			}
		}
		parts = append(parts, c.Render(w, th))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
