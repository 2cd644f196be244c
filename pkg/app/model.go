package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/components"
	"gitlab.com/tinyland/lab/cells/pkg/emitter"
	"gitlab.com/tinyland/lab/cells/pkg/source"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
)

// EventClick is emitted on a top-level cell when it is clicked.
const EventClick = "click"

// Navigable is implemented by cells that keep a movable selection.
type Navigable interface {
	Next() error
	Prev() error
	Activate() error
}

// Focusable is implemented by render handles that draw a focus state.
type Focusable interface {
	SetFocused(on bool)
}

// Options configures a Model.
type Options struct {
	// Source is fetched on Init, on every tick and on reload. Nil disables
	// fetching.
	Source source.Source
	// PollInterval is the tick period. Zero fetches once.
	PollInterval time.Duration
	Theme        surface.Theme
	Keys         *KeyMap
	Logger       *slog.Logger
}

// status is shared between copies of the Model so root subscriptions
// registered once keep writing to the live model.
type status struct {
	event   string
	err     error
	updated time.Time
	modTime time.Time
}

// Model is the bubbletea model hosting a loaded root.
type Model struct {
	root     cell.Root
	src      source.Source
	interval time.Duration
	theme    surface.Theme
	keys     KeyMap
	help     help.Model
	zones    *zone.Manager
	logger   *slog.Logger

	order    []string
	focused  string
	status   *status
	showHelp bool
	quitting bool

	width, height int
}

// NewModel returns a model for root, which must already be loaded. It
// subscribes to every event that reaches the root.
func NewModel(root cell.Root, opts Options) Model {
	keys := DefaultKeyMap
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		root:     root,
		src:      opts.Source,
		interval: opts.PollInterval,
		theme:    opts.Theme.Merge(surface.DefaultTheme()),
		keys:     keys,
		help:     help.New(),
		zones:    zone.New(),
		logger:   logger,
		order:    root.ChildNames(),
		status:   &status{},
	}
	if len(m.order) > 0 {
		m.focus(m.order[0])
	}

	st := m.status
	_ = root.On(cell.Wildcard, emitter.Func(func(args ...any) {
		st.event = formatEvent(args)
	}))
	return m
}

// Init fetches data and starts the ticker.
func (m Model) Init() tea.Cmd {
	if m.src == nil {
		return nil
	}
	if m.interval <= 0 {
		return FetchCmd(m.src)
	}
	return tea.Batch(FetchCmd(m.src), TickCmd(m.interval))
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case DataUpdateEvent:
		m.applyData(msg)
		return m, nil

	case TickEvent:
		var cmds []tea.Cmd
		if m.src != nil && m.changed() {
			cmds = append(cmds, FetchCmd(m.src))
		}
		if m.interval > 0 {
			cmds = append(cmds, TickCmd(m.interval))
		}
		return m, tea.Batch(cmds...)

	case FocusEvent:
		m.FocusCell(msg.Name)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyData(ev DataUpdateEvent) {
	if ev.Err != nil {
		m.status.err = ev.Err
		m.logger.Warn("data fetch failed", "source", ev.Source, "error", ev.Err)
		return
	}
	if err := m.root.Update(ev.Data); err != nil {
		m.status.err = err
		m.logger.Warn("refresh failed", "source", ev.Source, "error", err)
		return
	}
	m.status.err = nil
	m.status.updated = ev.Timestamp
	m.logger.Debug("refreshed", "source", ev.Source)
}

// changed reports whether the source may hold new data. Sources that expose
// a modification time are skipped while it is unchanged.
func (m *Model) changed() bool {
	mt, ok := m.src.(interface{ ModTime() time.Time })
	if !ok {
		return true
	}
	t := mt.ModTime()
	if t.IsZero() || !t.Equal(m.status.modTime) {
		m.status.modTime = t
		return true
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Next):
		m.CycleFocusForward()
	case key.Matches(msg, m.keys.Prev):
		m.CycleFocusBackward()
	case key.Matches(msg, m.keys.Reload):
		if m.src != nil {
			m.status.modTime = time.Time{}
			return m, FetchCmd(m.src)
		}
	case key.Matches(msg, m.keys.Up):
		m.navigate(Navigable.Prev)
	case key.Matches(msg, m.keys.Down):
		m.navigate(Navigable.Next)
	case key.Matches(msg, m.keys.Select):
		m.navigate(Navigable.Activate)
	}
	return m, nil
}

// navigate applies op to the first navigable cell in the focused subtree.
func (m *Model) navigate(op func(Navigable) error) {
	n, ok := m.focusedNavigable()
	if !ok {
		return
	}
	if err := op(n); err != nil {
		m.status.err = err
		m.logger.Warn("cell handler failed", "focus", m.focused, "error", err)
	}
}

func (m *Model) focusedNavigable() (Navigable, bool) {
	top, ok := m.root.Child(m.focused)
	if !ok {
		return nil, false
	}
	var found Navigable
	_ = walkNode(top, func(n cell.Node) error {
		if nav, ok := n.(Navigable); ok {
			found = nav
			return errStopWalk
		}
		return nil
	})
	return found, found != nil
}

var errStopWalk = errors.New("stop walk")

func walkNode(n cell.Node, fn func(cell.Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, name := range n.ChildNames() {
		child, ok := n.Child(name)
		if !ok {
			continue
		}
		if err := walkNode(child, fn); err != nil {
			return err
		}
	}
	return nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for _, name := range m.order {
		z := m.zones.Get(cell.JoinPath("", name))
		if z == nil || !z.InBounds(msg) {
			continue
		}
		m.Click(name)
		break
	}
	return m, nil
}

// Click focuses the top-level cell called name and emits EventClick on it.
func (m *Model) Click(name string) {
	node, ok := m.root.Child(name)
	if !ok {
		return
	}
	m.FocusCell(name)
	if err := node.Emit(EventClick, node.Path()); err != nil {
		m.status.err = err
	}
}

// View renders every top-level cell, the status line and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	var blocks []string
	for _, name := range m.order {
		node, ok := m.root.Child(name)
		if !ok {
			continue
		}
		r, ok := node.Element().(surface.Renderer)
		if !ok {
			continue
		}
		blocks = append(blocks, m.zones.Mark(node.Path(), r.Render(m.width, m.theme)))
	}
	blocks = append(blocks, m.statusLine(), m.help.View(m.keys))
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (m Model) statusLine() string {
	if m.status.err != nil {
		return components.Paint(components.Fit("error: "+m.status.err.Error(), m.width, components.AlignLeft), m.theme.Error)
	}
	var parts []string
	if m.status.event != "" {
		parts = append(parts, m.status.event)
	}
	if !m.status.updated.IsZero() {
		parts = append(parts, "updated "+m.status.updated.Format("15:04:05"))
	}
	return components.Paint(components.Fit(strings.Join(parts, " · "), m.width, components.AlignLeft), m.theme.Dim)
}

// formatEvent renders a wildcard delivery (type, args...) for the status line.
func formatEvent(args []any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}

// Close releases the mouse zone tracker.
func (m Model) Close() {
	m.zones.Close()
}

// Width returns the terminal width.
func (m Model) Width() int { return m.width }

// Height returns the terminal height.
func (m Model) Height() int { return m.height }

// Quitting reports whether quit was requested.
func (m Model) Quitting() bool { return m.quitting }

// HelpVisible reports whether the full help is shown.
func (m Model) HelpVisible() bool { return m.showHelp }

// LastEvent returns the last event that reached the root, formatted.
func (m Model) LastEvent() string { return m.status.event }

// Err returns the last fetch, refresh or handler error, nil after a
// successful refresh.
func (m Model) Err() error { return m.status.err }

// Root returns the hosted root.
func (m Model) Root() cell.Root { return m.root }
