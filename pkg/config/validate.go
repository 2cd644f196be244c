package config

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/cells/pkg/components"
)

// Validate checks the configuration for values the runtime would reject and
// returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.General.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("general.log_level: unknown level %q", c.General.LogLevel))
	}
	if c.General.FindCacheSize < 0 {
		errs = append(errs, fmt.Errorf("general.find_cache_size: must not be negative, got %d", c.General.FindCacheSize))
	}

	colors := map[string]string{
		"theme.border": c.Theme.Border,
		"theme.focus":  c.Theme.Focus,
		"theme.accent": c.Theme.Accent,
		"theme.dim":    c.Theme.Dim,
		"theme.error":  c.Theme.Error,
	}
	for _, key := range []string{"theme.border", "theme.focus", "theme.accent", "theme.dim", "theme.error"} {
		if v := colors[key]; v != "" && !components.ValidHex(v) {
			errs = append(errs, fmt.Errorf("%s: invalid color %q", key, v))
		}
	}

	if strings.Contains(c.Layout.Name, "/") {
		errs = append(errs, fmt.Errorf("layout.name: %q must not contain '/'", c.Layout.Name))
	}
	errs = append(errs, validateCells("layout.cells", c.Cells())...)

	return errors.Join(errs...)
}

func validateCells(at string, cells []CellConfig) []error {
	var errs []error
	seen := make(map[string]bool, len(cells))
	for i, def := range cells {
		where := fmt.Sprintf("%s[%d]", at, i)
		switch {
		case def.Name == "":
			errs = append(errs, fmt.Errorf("%s: name is required", where))
		case strings.Contains(def.Name, "/"):
			errs = append(errs, fmt.Errorf("%s: name %q must not contain '/'", where, def.Name))
		case seen[def.Name]:
			errs = append(errs, fmt.Errorf("%s: duplicate name %q", where, def.Name))
		}
		seen[def.Name] = true

		if def.Kind == "" {
			errs = append(errs, fmt.Errorf("%s: kind is required", where))
		}
		if def.Color != "" && !components.ValidHex(def.Color) {
			errs = append(errs, fmt.Errorf("%s: invalid color %q", where, def.Color))
		}
		if def.Max < 0 || def.Width < 0 || def.History < 0 {
			errs = append(errs, fmt.Errorf("%s: max, width and history must not be negative", where))
		}
		errs = append(errs, validateCells(where+".children", def.Children)...)
	}
	return errs
}
