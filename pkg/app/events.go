// Package app hosts a cell tree in a bubbletea program. The model owns a
// loaded root, refreshes it from a data source on a ticker, routes keys and
// mouse clicks to the focused top-level cell, and shows the last event that
// bubbled up to the root.
package app

import "time"

// DataUpdateEvent carries a freshly fetched data tree back into the
// bubbletea update loop.
type DataUpdateEvent struct {
	Source    string // source name, usually the data file path
	Data      any    // decoded data tree, nil when Err is set
	Err       error  // non-nil if the fetch failed
	Timestamp time.Time
}

// TickEvent is sent periodically to trigger a refetch.
type TickEvent struct {
	Time time.Time
}

// FocusEvent requests that focus move to the top-level cell called Name.
type FocusEvent struct {
	Name string
}
