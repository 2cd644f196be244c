package cell

import (
	"io"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"gitlab.com/tinyland/lab/cells/pkg/emitter"
)

// DefaultFindCacheSize is the number of resolved paths a Container memoizes
// unless WithFindCache says otherwise.
const DefaultFindCacheSize = 256

var (
	_ Node = (*Base)(nil)
	_ Root = (*Container)(nil)
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for load and refresh diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFindCache sets the size of the resolved-path cache. A size of zero or
// less disables caching.
func WithFindCache(size int) Option {
	return func(c *Container) {
		c.cacheSize = size
	}
}

// Container implements Root for everything except a concrete Load. It owns
// the top-level nodes and the top-level JSON, and it is the sink for every
// event bubbled out of the tree.
//
// Concrete roots embed *Container and implement Load:
//
//	func (d *Dashboard) Load() error {
//		if err := d.Mount(surface.NewStack("/", surface.Vertical)); err != nil {
//			return err
//		}
//		return d.Attach("list", NewList(d.ChildSpec("list")))
//	}
type Container struct {
	family

	events *emitter.Emitter
	self   Root
	name   string

	json     any
	surface  Element
	mounted  bool
	disposed bool

	cacheSize int
	cache     *lru.Cache[string, Node]
	logger    *slog.Logger
}

// NewContainer returns the base for a root called name. self is the concrete
// root embedding the Container; Find returns it for the root path.
func NewContainer(name string, self Root, opts ...Option) *Container {
	c := &Container{
		events:    emitter.New(),
		self:      self,
		name:      name,
		cacheSize: DefaultFindCacheSize,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	c.family = newFamily(relayTo(func(typ string, args ...any) error {
		return c.outer().Emit(typ, args...)
	}))
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		c.cache, _ = lru.New[string, Node](c.cacheSize)
	}
	return c
}

func (c *Container) outer() Root {
	if c.self != nil {
		return c.self
	}
	return c
}

// Name returns the root's name.
func (c *Container) Name() string { return c.name }

// Logger returns the root's logger. Cells use it through their back-reference.
func (c *Container) Logger() *slog.Logger {
	if c == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}

// On registers h for events of type typ on the root.
func (c *Container) On(typ string, h *emitter.Handler) error {
	return c.events.On(typ, h)
}

// Off removes every registration of h under typ.
func (c *Container) Off(typ string, h *emitter.Handler) {
	c.events.Off(typ, h)
}

// Emit delivers an event to the root's typ handlers, then to its Wildcard
// subscribers.
func (c *Container) Emit(typ string, args ...any) error {
	return dispatch(c.events, typ, args)
}

// Load reports that no concrete load was supplied.
func (c *Container) Load() error {
	return &NotImplementedError{Op: "load", Path: c.name}
}

// Mount records the surface top-level nodes are attached to.
func (c *Container) Mount(surface Element) error {
	if c.disposed {
		return lifecycleError(ErrDisposed, c.name, "mount")
	}
	if c.mounted {
		return lifecycleError(ErrAlreadyBuilt, c.name, "")
	}
	if surface == nil {
		return lifecycleError(ErrNilElement, c.name, "mount")
	}
	c.surface = surface
	c.mounted = true
	return nil
}

// Surface returns the mounted surface, nil before Mount.
func (c *Container) Surface() Element { return c.surface }

// ChildSpec returns the construction spec for a top-level node called name.
func (c *Container) ChildSpec(name string) Spec {
	return Spec{Path: JoinPath("", name), Container: c}
}

// Attach builds a top-level node, appends its element to the surface and
// wires its events to bubble up to the root.
func (c *Container) Attach(name string, node Node) error {
	if c.disposed {
		return lifecycleError(ErrDisposed, c.name, "attach")
	}
	if !c.mounted {
		return lifecycleError(ErrNotBuilt, c.name, "attach before mount")
	}
	if err := c.adopt(c.surface, "/", name, node); err != nil {
		return err
	}
	c.bind()
	c.invalidate()
	c.logger.Debug("attached cell", "root", c.name, "path", node.Path())
	return nil
}

// Detach removes and disposes the top-level node called name.
func (c *Container) Detach(name string) error {
	if !c.release(c.surface, name) {
		return &PathNotFoundError{Path: JoinPath("", name), Segment: name, At: "/"}
	}
	c.invalidate()
	return nil
}

// SetJSON replaces the root's data without refreshing.
func (c *Container) SetJSON(json any) { c.json = json }

// JSON returns the root's data.
func (c *Container) JSON() any { return c.json }

// Refresh refreshes every top-level node whose name is a key of the root's
// data. Nodes without a key keep their previous data.
func (c *Container) Refresh() error {
	if c.disposed {
		return lifecycleError(ErrDisposed, c.name, "refresh")
	}
	if !c.mounted {
		return lifecycleError(ErrNotBuilt, c.name, "refresh before load")
	}
	if err := c.refreshFrom(c.json); err != nil {
		c.logger.Debug("refresh failed", "root", c.name, "error", err)
		return err
	}
	c.bind()
	c.logger.Debug("refreshed", "root", c.name, "cells", len(c.order))
	return nil
}

// Update replaces the root's data and refreshes.
func (c *Container) Update(json any) error {
	c.SetJSON(json)
	return c.outer().Refresh()
}

// Find resolves path against the root. "" and "/" return the root itself.
func (c *Container) Find(path string) (Tree, error) {
	if next, _ := SplitPath(path); next == "" {
		return c.outer(), nil
	}
	return c.FindNode(path)
}

// FindNode resolves path to a node. Resolved paths are memoized until the
// tree's structure changes.
func (c *Container) FindNode(path string) (Node, error) {
	key := "/" + trimPath(path)
	if c.cache != nil {
		if n, ok := c.cache.Get(key); ok && n.State() != Disposed {
			return n, nil
		}
	}

	next, child, rest, err := resolve(c, "/", path)
	if err != nil {
		return nil, err
	}
	if next == "" {
		return nil, &PathNotFoundError{Path: "/", Segment: "", At: "/"}
	}
	n, err := child.Find(rest)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Add(key, n)
	}
	return n, nil
}

// Walk calls fn for every node in the tree, pre-order, children in attach
// order. A non-nil error from fn stops the walk and is returned.
func (c *Container) Walk(fn func(Node) error) error {
	for _, name := range c.ChildNames() {
		child, ok := c.Child(name)
		if !ok {
			continue
		}
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(n Node, fn func(Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, name := range n.ChildNames() {
		child, ok := n.Child(name)
		if !ok {
			continue
		}
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Dispose releases every top-level node and every root subscription.
func (c *Container) Dispose() {
	if c.disposed {
		return
	}
	c.disposeAll()
	c.events.Clear()
	c.disposed = true
	c.invalidate()
}

// invalidate forgets memoized paths after a structural change. It is safe on
// a nil Container so detached trees need no special casing.
func (c *Container) invalidate() {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.Purge()
}

// trimPath normalizes path to its components joined by '/'.
func trimPath(path string) string {
	return strings.Join(Components(path), "/")
}
