package app

// CycleFocusForward moves focus to the next top-level cell, wrapping around
// to the first after the last.
func (m *Model) CycleFocusForward() {
	if len(m.order) == 0 {
		return
	}
	idx := (m.focusedIndex() + 1) % len(m.order)
	m.focus(m.order[idx])
}

// CycleFocusBackward moves focus to the previous top-level cell, wrapping
// around to the last before the first.
func (m *Model) CycleFocusBackward() {
	if len(m.order) == 0 {
		return
	}
	idx := (m.focusedIndex() - 1 + len(m.order)) % len(m.order)
	m.focus(m.order[idx])
}

// FocusCell moves focus to the top-level cell called name. Unknown names
// leave focus unchanged.
func (m *Model) FocusCell(name string) {
	if _, ok := m.root.Child(name); ok {
		m.focus(name)
	}
}

// Focused returns the name of the focused top-level cell.
func (m Model) Focused() string { return m.focused }

func (m *Model) focus(name string) {
	if prev, ok := m.root.Child(m.focused); ok {
		if f, ok := prev.Element().(Focusable); ok {
			f.SetFocused(false)
		}
	}
	m.focused = name
	if next, ok := m.root.Child(name); ok {
		if f, ok := next.Element().(Focusable); ok {
			f.SetFocused(true)
		}
	}
}

// focusedIndex returns the position of the focused cell in the order list,
// or 0 if nothing is focused.
func (m *Model) focusedIndex() int {
	for i, name := range m.order {
		if name == m.focused {
			return i
		}
	}
	return 0
}
