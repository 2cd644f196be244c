package emitter

import "fmt"

// InvalidHandlerError is returned by On when the handler is nil or wraps a
// nil function.
type InvalidHandlerError struct {
	Type string
}

func (e *InvalidHandlerError) Error() string {
	return fmt.Sprintf("emitter: handler for %q is not callable", e.Type)
}
