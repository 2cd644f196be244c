package cell

import (
	"errors"
	"fmt"
)

// Lifecycle violations. They are wrapped with the offending node's path, so
// match them with errors.Is.
var (
	ErrAlreadyBuilt   = errors.New("cell: already built")
	ErrNotBuilt       = errors.New("cell: not built")
	ErrDisposed       = errors.New("cell: disposed")
	ErrDuplicateChild = errors.New("cell: duplicate child")
	ErrPathMismatch   = errors.New("cell: child path mismatch")
	ErrInvalidName    = errors.New("cell: invalid child name")
	ErrNilElement     = errors.New("cell: nil element")
)

// PathNotFoundError is returned when a path component names no child.
type PathNotFoundError struct {
	// Path is the absolute path that failed to resolve.
	Path string
	// Segment is the component with no matching child.
	Segment string
	// At is the path of the node (or root) where the lookup failed.
	At string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("cell: path %q not found: no child %q under %q", e.Path, e.Segment, e.At)
}

// NotImplementedError is returned by Build or Load on a node or root that has
// not supplied a concrete implementation.
type NotImplementedError struct {
	Op   string
	Path string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("cell: %s must be implemented: %s", e.Op, e.Path)
}

func lifecycleError(sentinel error, path, detail string) error {
	if detail == "" {
		return fmt.Errorf("%w: %s", sentinel, path)
	}
	return fmt.Errorf("%w: %s: %s", sentinel, path, detail)
}
