package widgets

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/config"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// load returns a loaded dashboard called "app" with the given cells.
func load(t *testing.T, cells ...config.CellConfig) *Dashboard {
	t.Helper()
	d := NewDashboard("app", cells, nil)
	if err := d.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d
}

// find resolves path on d and asserts the concrete cell type.
func find[T cell.Node](t *testing.T, d *Dashboard, path string) T {
	t.Helper()
	n, err := d.FindNode(path)
	if err != nil {
		t.Fatalf("FindNode(%q): %v", path, err)
	}
	c, ok := n.(T)
	if !ok {
		t.Fatalf("FindNode(%q) returned %T", path, n)
	}
	return c
}
