package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/cells/pkg/source"
)

// fetchTimeout bounds a single data source fetch.
const fetchTimeout = 10 * time.Second

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// DataFetchCmd returns a Cmd that runs fetchFn in a goroutine and delivers
// the result as a DataUpdateEvent. If fetchFn returns an error, the event's
// Err field is set and Data is nil.
func DataFetchCmd(name string, fetchFn func() (any, error)) tea.Cmd {
	return func() tea.Msg {
		data, err := fetchFn()
		if err != nil {
			data = nil
		}
		return DataUpdateEvent{
			Source:    name,
			Data:      data,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
}

// FetchCmd fetches src with a bounded context.
func FetchCmd(src source.Source) tea.Cmd {
	return DataFetchCmd(src.Name(), func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return src.Fetch(ctx)
	})
}
