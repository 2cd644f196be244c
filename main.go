// cells renders a tree of addressable UI cells bound to a JSON data file.
//
// The cell tree comes from the [layout] section of the configuration (or a
// named preset). Each top-level cell receives the value stored under its name
// in the data file; nested cells receive the value under their own name
// within their parent's value. The data file is re-read on every poll tick.
//
// Usage:
//
//	cells [flags]
//
// Flags:
//
//	-c, --config string   Path to configuration file (default: $XDG_CONFIG_HOME/cells/config.toml)
//	-d, --data string     Data file (json, jsonc, yaml or toml)
//	-p, --preset string   Layout preset (dashboard|minimal|list)
//	    --once            Render once to stdout and exit
//	    --width int       Render width for --once (0 = terminal width)
//	-v, --verbose         Enable debug logging
//	    --version         Print version and exit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"gitlab.com/tinyland/lab/cells/pkg/app"
	"gitlab.com/tinyland/lab/cells/pkg/cell"
	"gitlab.com/tinyland/lab/cells/pkg/config"
	"gitlab.com/tinyland/lab/cells/pkg/source"
	"gitlab.com/tinyland/lab/cells/pkg/surface"
	"gitlab.com/tinyland/lab/cells/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.StringP("config", "c", "", "Path to configuration file")
		dataPath    = flag.StringP("data", "d", "", "Data file (json, jsonc, yaml or toml)")
		preset      = flag.StringP("preset", "p", "", "Layout preset ("+strings.Join(config.PresetNames(), "|")+")")
		once        = flag.Bool("once", false, "Render once to stdout and exit")
		width       = flag.Int("width", 0, "Render width for --once (0 = terminal width)")
		verbose     = flag.BoolP("verbose", "v", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("cells %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.General.DataFile = *dataPath
	}
	if *preset != "" {
		cfg.Layout.Preset = *preset
		cfg.Layout.Cells = nil
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Without a terminal on stdout there is nothing to drive the program.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		*once = true
	}

	logger, closeLog, err := newLogger(cfg, *verbose, *once)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	for _, key := range cfg.Undecoded {
		logger.Warn("unknown config key", "key", key)
	}

	root := widgets.FromConfig(cfg, cell.WithLogger(logger))
	if err := root.Load(); err != nil {
		logger.Error("failed to build cell tree", "error", err)
		os.Exit(1)
	}
	defer root.Dispose()

	var src source.Source
	if cfg.General.DataFile != "" {
		src = source.NewFile(cfg.General.DataFile)
		if cfg.General.SnapshotDir != "" {
			src = source.NewSnapshot(src, cfg.General.SnapshotDir, logger)
		}
	}
	theme := cfg.Theme.Resolve()

	if *once {
		if err := renderOnce(root, src, theme, *width); err != nil {
			logger.Error("render failed", "error", err)
			os.Exit(1)
		}
		return
	}

	model := app.NewModel(root, app.Options{
		Source:       src,
		PollInterval: cfg.General.PollInterval.Duration,
		Theme:        theme,
		Logger:       logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads path when given, otherwise the first config file on the
// XDG search path.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// newLogger writes to stderr in --once mode and to the configured log file
// in both modes. The TUI owns the terminal, so it never logs to stderr.
func newLogger(cfg *config.Config, verbose, once bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.General.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	var writers []io.Writer
	if once {
		writers = append(writers, os.Stderr)
	}
	closeFn := func() {}
	if cfg.General.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, f)
		closeFn = func() { f.Close() }
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	logger := slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closeFn, nil
}

// renderOnce fetches src, refreshes root and prints it at width, or at the
// terminal width when width is zero.
func renderOnce(root *widgets.Dashboard, src source.Source, theme surface.Theme, width int) error {
	if src != nil {
		data, err := src.Fetch(context.Background())
		if err != nil {
			return err
		}
		if err := root.Update(data); err != nil {
			return err
		}
	}
	if width <= 0 {
		width = surface.DefaultWidth
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w
		}
	}
	fmt.Println(root.Render(width, theme))
	return nil
}
