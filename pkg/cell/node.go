// Package cell implements the component tree protocol: addressable nodes
// ("cells") arranged under a root container, each bound to a slice of a JSON
// data tree and owning an opaque render handle.
//
// A tree is assembled once and refreshed many times:
//
//	root.Load()           // builds every top-level cell, pre-order
//	root.Update(json)     // pushes json[name] into each top-level cell
//
// Events emitted anywhere in a subtree bubble up unchanged to every ancestor
// and finally to the root, where application code subscribes.
//
// Concrete cells embed *Base and supply Build; concrete roots embed
// *Container and supply Load. Overrides call the embedded implementation
// explicitly, e.g. c.Base.Refresh(json).
package cell

import "gitlab.com/tinyland/lab/cells/pkg/emitter"

// Wildcard is the event type a parent subscribes to on each child to receive
// every event the child emits. Handlers registered under Wildcard receive the
// original event type as their first argument.
const Wildcard = "*"

// Element is the render handle produced by Build. The core only requires that
// a node can attach a child's handle to its own.
type Element interface {
	Append(child Element)
}

// Remover is implemented by elements that support removing a previously
// appended child. Detach uses it when available.
type Remover interface {
	Remove(child Element)
}

// Spec carries what a node needs at construction time.
type Spec struct {
	// Path is the node's root-relative address. Empty means "/".
	Path string

	// Container is the owning root. It is a relation, not ownership.
	Container *Container
}

// Tree is what nodes and roots share: an emitter plus a named set of owned
// children and the JSON currently bound to them.
type Tree interface {
	On(typ string, h *emitter.Handler) error
	Off(typ string, h *emitter.Handler)
	Emit(typ string, args ...any) error

	Child(name string) (Node, bool)
	Children() map[string]Node
	ChildNames() []string
	JSON() any
}

// Node is a single addressable tree element.
type Node interface {
	Tree

	// Build materializes the render handle, constructs and builds the
	// children and returns the handle. It runs at most once per instance.
	Build() (Element, error)

	// Refresh binds json to the node and recurses into every child whose
	// name is a key of json.
	Refresh(json any) error

	// Find resolves a '/'-separated path relative to this node.
	Find(path string) (Node, error)

	Path() string
	Name() string
	Element() Element
	State() State
	Container() *Container

	// Dispose releases the subtree. It is idempotent.
	Dispose()
}

// Root is the entry point of a tree.
type Root interface {
	Tree

	Name() string

	// Load constructs, builds and mounts the top-level nodes.
	Load() error

	// Refresh pushes the root's current JSON into the top-level nodes.
	Refresh() error

	// Update replaces the root's JSON and refreshes.
	Update(json any) error

	// Find resolves a path; the root-referring path returns the root itself.
	Find(path string) (Tree, error)

	// FindNode resolves a path that must name a node.
	FindNode(path string) (Node, error)

	Walk(fn func(Node) error) error
	Surface() Element
	Dispose()
}

// State is a node's lifecycle position.
type State int

const (
	// Unbuilt nodes have been constructed but not built.
	Unbuilt State = iota
	// Building nodes have a render handle and are attaching children.
	Building
	// Built nodes accept refreshes.
	Built
	// Disposed nodes have been released by their owner.
	Disposed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Unbuilt:
		return "unbuilt"
	case Building:
		return "building"
	case Built:
		return "built"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}
