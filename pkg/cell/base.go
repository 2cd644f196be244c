package cell

import (
	"strings"

	"gitlab.com/tinyland/lab/cells/pkg/emitter"
)

// Base implements Node for everything except a concrete Build. Concrete
// cells embed *Base, create it with NewBase, and build through Mount, Attach
// and Seal:
//
//	func (c *Label) Build() (cell.Element, error) {
//		if err := c.Mount(surface.NewBox(c.Path())); err != nil {
//			return nil, err
//		}
//		if err := c.Attach("icon", NewIcon(c.ChildSpec("icon"))); err != nil {
//			return nil, err
//		}
//		return c.Seal()
//	}
type Base struct {
	family

	events    *emitter.Emitter
	self      Node
	path      string
	container *Container

	json    any
	element Element
	state   State
}

// NewBase returns the base for a node described by spec. self is the
// outermost node value (the concrete cell embedding this Base); Find returns
// it and bubbled events are re-emitted through it. A nil self makes the Base
// its own outer node.
func NewBase(spec Spec, self Node) *Base {
	path := spec.Path
	if path == "" {
		path = "/"
	}
	b := &Base{
		events:    emitter.New(),
		self:      self,
		path:      path,
		container: spec.Container,
	}
	b.family = newFamily(relayTo(func(typ string, args ...any) error {
		return b.outer().Emit(typ, args...)
	}))
	return b
}

func (b *Base) outer() Node {
	if b.self != nil {
		return b.self
	}
	return b
}

// On registers h for events of type typ on this node.
func (b *Base) On(typ string, h *emitter.Handler) error {
	return b.events.On(typ, h)
}

// Off removes every registration of h under typ.
func (b *Base) Off(typ string, h *emitter.Handler) {
	b.events.Off(typ, h)
}

// Emit delivers an event to this node's typ handlers and then to its
// Wildcard subscribers, which is how the event reaches the parent.
func (b *Base) Emit(typ string, args ...any) error {
	return dispatch(b.events, typ, args)
}

// Build reports that no concrete build was supplied.
func (b *Base) Build() (Element, error) {
	return nil, &NotImplementedError{Op: "build", Path: b.path}
}

// Mount records el as the node's render handle and starts the build.
func (b *Base) Mount(el Element) error {
	switch b.state {
	case Disposed:
		return lifecycleError(ErrDisposed, b.path, "mount")
	case Building, Built:
		return lifecycleError(ErrAlreadyBuilt, b.path, "")
	}
	if el == nil {
		return lifecycleError(ErrNilElement, b.path, "mount")
	}
	b.element = el
	b.state = Building
	return nil
}

// ChildSpec returns the construction spec for a child called name.
func (b *Base) ChildSpec(name string) Spec {
	return Spec{Path: JoinPath(b.path, name), Container: b.container}
}

// Attach builds child, appends its element to this node's element and
// records it under name. It is valid while building and, for children that
// appear with data, after Seal.
func (b *Base) Attach(name string, child Node) error {
	switch b.state {
	case Unbuilt:
		return lifecycleError(ErrNotBuilt, b.path, "attach before mount")
	case Disposed:
		return lifecycleError(ErrDisposed, b.path, "attach")
	}
	if err := b.adopt(b.element, b.path, name, child); err != nil {
		return err
	}
	if b.state == Built {
		b.bind()
	}
	b.container.invalidate()
	return nil
}

// Detach removes and disposes the child called name.
func (b *Base) Detach(name string) error {
	if b.state == Disposed {
		return lifecycleError(ErrDisposed, b.path, "detach")
	}
	if !b.release(b.element, name) {
		return &PathNotFoundError{Path: JoinPath(b.path, name), Segment: name, At: b.path}
	}
	b.container.invalidate()
	return nil
}

// Seal finishes the build, wires bubbling and returns the render handle.
func (b *Base) Seal() (Element, error) {
	switch b.state {
	case Unbuilt:
		return nil, lifecycleError(ErrNotBuilt, b.path, "seal before mount")
	case Built:
		return nil, lifecycleError(ErrAlreadyBuilt, b.path, "")
	case Disposed:
		return nil, lifecycleError(ErrDisposed, b.path, "seal")
	}
	b.state = Built
	b.bind()
	return b.element, nil
}

// Refresh stores json as the node's data and refreshes every child whose
// name is a key of json. Children without a key keep their previous data.
func (b *Base) Refresh(json any) error {
	switch b.state {
	case Disposed:
		return lifecycleError(ErrDisposed, b.path, "refresh")
	case Unbuilt, Building:
		return lifecycleError(ErrNotBuilt, b.path, "refresh")
	}
	b.json = json
	if err := b.refreshFrom(json); err != nil {
		return err
	}
	b.bind()
	return nil
}

// Find resolves path relative to this node. "" and "/" return the node.
func (b *Base) Find(path string) (Node, error) {
	next, child, rest, err := resolve(b, b.path, path)
	if err != nil {
		return nil, err
	}
	if next == "" {
		return b.outer(), nil
	}
	return child.Find(rest)
}

// Dispose releases the subtree and drops every handler registered on this
// node. Subsequent builds and refreshes fail with ErrDisposed.
func (b *Base) Dispose() {
	if b.state == Disposed {
		return
	}
	b.disposeAll()
	b.events.Clear()
	b.state = Disposed
	b.container.invalidate()
}

// Path returns the node's root-relative path.
func (b *Base) Path() string { return b.path }

// Name returns the last component of the node's path.
func (b *Base) Name() string {
	if i := strings.LastIndex(b.path, "/"); i >= 0 {
		return b.path[i+1:]
	}
	return b.path
}

// Element returns the render handle, nil before Mount.
func (b *Base) Element() Element { return b.element }

// JSON returns the data bound by the last refresh.
func (b *Base) JSON() any { return b.json }

// State returns the lifecycle state.
func (b *Base) State() State { return b.state }

// Container returns the owning root, which may be nil for detached trees.
func (b *Base) Container() *Container { return b.container }
