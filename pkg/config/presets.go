package config

import "gitlab.com/tinyland/lab/cells/pkg/surface"

// LayoutPreset returns the layout configuration for a named preset.
// If the name is not recognized, the "dashboard" preset is returned.
func LayoutPreset(name string) LayoutConfig {
	switch name {
	case "minimal":
		return minimalPreset()
	case "list":
		return listPreset()
	default:
		return dashboardPreset()
	}
}

// PresetNames lists the built-in layout presets.
func PresetNames() []string {
	return []string{"dashboard", "minimal", "list"}
}

// dashboardPreset returns the default layout.
//
//	/status          text
//	/overview        panel (horizontal)
//	  /overview/cpu  gauge
//	  /overview/load sparkline
//	/list            list
func dashboardPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "dashboard",
		Name:   "app",
		Cells: []CellConfig{
			{Name: "status", Kind: "text", Title: "Status"},
			{
				Name:      "overview",
				Kind:      "panel",
				Title:     "Overview",
				Direction: "horizontal",
				Children: []CellConfig{
					{Name: "cpu", Kind: "gauge", Title: "CPU", Max: 100},
					{Name: "load", Kind: "sparkline", Title: "Load", History: 30},
				},
			},
			{Name: "list", Kind: "list", Title: "Items"},
		},
	}
}

// minimalPreset returns a status line over a list.
//
//	/status text
//	/list   list
func minimalPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "minimal",
		Name:   "app",
		Cells: []CellConfig{
			{Name: "status", Kind: "text"},
			{Name: "list", Kind: "list"},
		},
	}
}

// listPreset returns a single list at /list.
func listPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "list",
		Name:   "app",
		Cells: []CellConfig{
			{Name: "list", Kind: "list", Title: "Items"},
		},
	}
}

// ThemePreset returns the named palette. Unknown names get the default.
func ThemePreset(name string) surface.Theme {
	switch name {
	case "nord":
		return surface.Theme{
			Border: "#4C566A",
			Focus:  "#88C0D0",
			Accent: "#81A1C1",
			Dim:    "#D8DEE9",
			Error:  "#BF616A",
		}
	case "mono":
		return surface.Theme{
			Border: "#808080",
			Focus:  "#FFFFFF",
			Accent: "#C0C0C0",
			Dim:    "#808080",
			Error:  "#FFFFFF",
		}
	default:
		return surface.DefaultTheme()
	}
}

// Resolve returns the named palette with any explicit colors applied on top.
func (t ThemeConfig) Resolve() surface.Theme {
	return surface.Theme{
		Border: t.Border,
		Focus:  t.Focus,
		Accent: t.Accent,
		Dim:    t.Dim,
		Error:  t.Error,
	}.Merge(ThemePreset(t.Name))
}
