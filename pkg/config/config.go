// Package config provides TOML-based configuration for cells: logging, the
// data file the dashboard refreshes from, the color theme, and the cell tree
// layout.
package config

// Config is the top-level configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Theme   ThemeConfig   `toml:"theme"`
	Layout  LayoutConfig  `toml:"layout"`

	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string `toml:"-"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	LogLevel      string   `toml:"log_level"`
	LogFile       string   `toml:"log_file"`
	DataFile      string   `toml:"data_file"`
	SnapshotDir   string   `toml:"snapshot_dir"` // last good data tree; empty disables
	PollInterval  Duration `toml:"poll_interval"`
	FindCacheSize int      `toml:"find_cache_size"`
}

// ThemeConfig selects a named palette and optionally overrides its colors.
type ThemeConfig struct {
	Name   string `toml:"name"`
	Border string `toml:"border"`
	Focus  string `toml:"focus"`
	Accent string `toml:"accent"`
	Dim    string `toml:"dim"`
	Error  string `toml:"error"`
}

// LayoutConfig describes the cell tree. Cells, when present, replace the
// named preset.
type LayoutConfig struct {
	Preset string       `toml:"preset"`
	Name   string       `toml:"name"`
	Cells  []CellConfig `toml:"cells"`
}

// CellConfig defines one cell and, recursively, its children.
type CellConfig struct {
	Name      string       `toml:"name"`
	Kind      string       `toml:"kind"`
	Title     string       `toml:"title"`
	Direction string       `toml:"direction"`
	Align     string       `toml:"align"`
	Color     string       `toml:"color"`
	Max       float64      `toml:"max"`
	Width     int          `toml:"width"`
	History   int          `toml:"history"`
	Children  []CellConfig `toml:"children"`
}

// RootName returns the configured root name, "app" when unset.
func (c *Config) RootName() string {
	if c.Layout.Name != "" {
		return c.Layout.Name
	}
	return "app"
}

// Cells returns the cell definitions to build: the explicit [[layout.cells]]
// when any are configured, otherwise the preset's.
func (c *Config) Cells() []CellConfig {
	if len(c.Layout.Cells) > 0 {
		return c.Layout.Cells
	}
	return LayoutPreset(c.Layout.Preset).Cells
}
