// Package emitter provides the per-node publish/subscribe registry that every
// cell and container in the tree composes. Handlers are registered per event
// type and invoked synchronously in registration order.
//
// The emitter has no wildcard semantics. A "*" subscription is an ordinary
// event type here; the cell package layers catch-all forwarding on top.
package emitter

import (
	"fmt"
	"sync"
)

// HandlerFunc is the callback signature carried by a Handler. A returned
// error stops the fan-out and is handed back to the caller of Emit.
type HandlerFunc func(args ...any) error

// Handler is a registered callback. Go functions are not comparable, so the
// *Handler pointer is the identity Off removes by.
type Handler struct {
	fn HandlerFunc
}

// NewHandler wraps fn in a Handler. A nil fn yields a Handler that On rejects.
func NewHandler(fn HandlerFunc) *Handler {
	return &Handler{fn: fn}
}

// Func returns a Handler for a callback that cannot fail.
func Func(fn func(args ...any)) *Handler {
	if fn == nil {
		return &Handler{}
	}
	return &Handler{fn: func(args ...any) error {
		fn(args...)
		return nil
	}}
}

// Callable reports whether h can be invoked.
func (h *Handler) Callable() bool {
	return h != nil && h.fn != nil
}

// Call invokes the handler with args.
func (h *Handler) Call(args ...any) error {
	if !h.Callable() {
		return fmt.Errorf("emitter: call of non-callable handler")
	}
	return h.fn(args...)
}

// slot is one registration. Off tombstones the slot so an Emit already
// iterating a snapshot skips it.
type slot struct {
	h       *Handler
	removed bool
}

// Emitter maps event types to ordered handler registrations. The zero value
// is ready to use. The lock is never held while a handler runs, so handlers
// may call On, Off and Emit re-entrantly.
type Emitter struct {
	mu       sync.Mutex
	handlers map[string][]*slot
}

// New returns an empty Emitter.
func New() *Emitter {
	return &Emitter{handlers: make(map[string][]*slot)}
}

// On registers h for events of type typ. Registering the same handler more
// than once retains every registration.
func (e *Emitter) On(typ string, h *Handler) error {
	if !h.Callable() {
		return &InvalidHandlerError{Type: typ}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handlers == nil {
		e.handlers = make(map[string][]*slot)
	}
	// Copy on write: an Emit in progress keeps iterating its own snapshot.
	cur := e.handlers[typ]
	next := make([]*slot, len(cur), len(cur)+1)
	copy(next, cur)
	e.handlers[typ] = append(next, &slot{h: h})
	return nil
}

// Off removes every registration of h under typ. Unknown types and handlers
// that were never registered are a no-op.
func (e *Emitter) Off(typ string, h *Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, ok := e.handlers[typ]
	if !ok {
		return
	}

	kept := make([]*slot, 0, len(cur))
	for _, s := range cur {
		if s.h == h {
			s.removed = true
			continue
		}
		kept = append(kept, s)
	}

	if len(kept) == 0 {
		delete(e.handlers, typ)
		return
	}
	e.handlers[typ] = kept
}

// Emit invokes every handler registered for typ, in registration order,
// passing args. The first handler error is returned unchanged and the
// remaining handlers are not called. Handlers registered while Emit runs are
// not invoked in this round; handlers removed while it runs are skipped.
func (e *Emitter) Emit(typ string, args ...any) error {
	e.mu.Lock()
	snapshot := e.handlers[typ]
	e.mu.Unlock()

	for _, s := range snapshot {
		if e.isRemoved(s) {
			continue
		}
		if err := s.h.fn(args...); err != nil {
			return err
		}
	}
	return nil
}

// isRemoved reads a slot's tombstone under the lock.
func (e *Emitter) isRemoved(s *slot) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.removed
}

// Handlers returns a copy of the handlers registered for typ, in
// registration order.
func (e *Emitter) Handlers(typ string) []*Handler {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.handlers[typ]
	out := make([]*Handler, 0, len(cur))
	for _, s := range cur {
		out = append(out, s.h)
	}
	return out
}

// Count returns the number of registrations for typ.
func (e *Emitter) Count(typ string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[typ])
}

// Clear drops every registration for every type.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, slots := range e.handlers {
		for _, s := range slots {
			s.removed = true
		}
	}
	e.handlers = make(map[string][]*slot)
}
