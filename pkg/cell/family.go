package cell

import (
	"fmt"

	"gitlab.com/tinyland/lab/cells/pkg/emitter"
)

// family is the owned, named, ordered child set shared by Base and
// Container. Children are kept in attach order so refresh and traversal are
// deterministic.
type family struct {
	children map[string]Node
	order    []string

	// forward is the single bubbling handler this owner registers on every
	// child under Wildcard. Reusing one *Handler is what makes bind
	// idempotent.
	forward *emitter.Handler
}

func newFamily(relay emitter.HandlerFunc) family {
	return family{
		children: make(map[string]Node),
		forward:  emitter.NewHandler(relay),
	}
}

// Child returns the child called name.
func (f *family) Child(name string) (Node, bool) {
	c, ok := f.children[name]
	return c, ok
}

// Children returns a copy of the child map.
func (f *family) Children() map[string]Node {
	out := make(map[string]Node, len(f.children))
	for k, v := range f.children {
		out[k] = v
	}
	return out
}

// ChildNames returns child names in attach order.
func (f *family) ChildNames() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// bind (re)wires bubbling from every child. Off before On keeps repeated
// calls from stacking duplicate registrations.
func (f *family) bind() {
	for _, name := range f.order {
		child := f.children[name]
		child.Off(Wildcard, f.forward)
		_ = child.On(Wildcard, f.forward)
	}
}

// adopt validates, builds and records child under name, appending its
// element to parent.
func (f *family) adopt(parent Element, at, name string, child Node) error {
	if !validName(name) {
		return lifecycleError(ErrInvalidName, at, fmt.Sprintf("%q", name))
	}
	if child == nil {
		return lifecycleError(ErrNilElement, at, fmt.Sprintf("nil child %q", name))
	}
	if _, exists := f.children[name]; exists {
		return lifecycleError(ErrDuplicateChild, at, name)
	}
	if want := JoinPath(at, name); child.Path() != want {
		return lifecycleError(ErrPathMismatch, at, fmt.Sprintf("child %q has path %q, want %q", name, child.Path(), want))
	}

	el, err := child.Build()
	if err != nil {
		return fmt.Errorf("build %s: %w", child.Path(), err)
	}
	if el == nil {
		return lifecycleError(ErrNilElement, child.Path(), "build returned no element")
	}
	parent.Append(el)

	f.children[name] = child
	f.order = append(f.order, name)
	return nil
}

// release removes the child called name, unhooks bubbling, detaches its
// element from parent when parent supports it and disposes it.
func (f *family) release(parent Element, name string) bool {
	child, ok := f.children[name]
	if !ok {
		return false
	}
	child.Off(Wildcard, f.forward)
	if r, ok := parent.(Remover); ok && child.Element() != nil {
		r.Remove(child.Element())
	}
	child.Dispose()

	delete(f.children, name)
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i:i], f.order[i+1:]...)
			break
		}
	}
	return true
}

// refreshFrom pushes json[name] into every child whose name is a key of
// json. Absent keys leave the child's bound JSON untouched.
func (f *family) refreshFrom(json any) error {
	obj, ok := json.(map[string]any)
	if !ok {
		return nil
	}
	for _, name := range f.ChildNames() {
		child, ok := f.children[name]
		if !ok {
			continue
		}
		slice, present := obj[name]
		if !present {
			continue
		}
		if err := child.Refresh(slice); err != nil {
			return err
		}
	}
	return nil
}

// disposeAll releases every child.
func (f *family) disposeAll() {
	for _, name := range f.order {
		child := f.children[name]
		child.Off(Wildcard, f.forward)
		child.Dispose()
	}
	f.children = make(map[string]Node)
	f.order = nil
}

// dispatch emits typ on events and then, unless typ is itself the wildcard,
// re-emits (typ, args...) to the wildcard subscribers. A failing typ handler
// stops the wildcard fan-out.
func dispatch(events *emitter.Emitter, typ string, args []any) error {
	if err := events.Emit(typ, args...); err != nil {
		return err
	}
	if typ == Wildcard {
		return nil
	}
	wild := make([]any, 0, len(args)+1)
	wild = append(wild, typ)
	wild = append(wild, args...)
	return events.Emit(Wildcard, wild...)
}

// relayTo returns the handler body that re-emits a wildcard delivery on
// emit, unchanged.
func relayTo(emit func(typ string, args ...any) error) emitter.HandlerFunc {
	return func(args ...any) error {
		if len(args) == 0 {
			return fmt.Errorf("cell: wildcard delivery without event type")
		}
		typ, ok := args[0].(string)
		if !ok {
			return fmt.Errorf("cell: wildcard delivery with %T event type", args[0])
		}
		return emit(typ, args[1:]...)
	}
}
