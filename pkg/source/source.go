// Package source loads the JSON data tree a root refreshes from. Files may be
// JSON, JSONC (JSON with comments and trailing commas), YAML or TOML; every
// format is normalized to the JSON data model: map[string]any, []any,
// float64, string, bool and nil.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format names a data file encoding.
type Format string

// Supported formats.
const (
	JSON  Format = "json"
	JSONC Format = "jsonc"
	YAML  Format = "yaml"
	TOML  Format = "toml"
)

// UnsupportedFormatError is returned for file extensions or format names no
// decoder handles.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("source: unsupported format %q", e.Format)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json":
		return JSON, nil
	case "jsonc":
		return JSONC, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return "", &UnsupportedFormatError{Format: ext}
	}
}

// Load reads path and decodes it by extension.
func Load(path string) (any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	v, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Decode decodes data in the given format into the JSON data model. Empty
// input decodes to nil.
func Decode(format Format, data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var v any
	switch format {
	case JSON, JSONC:
		// JSON is a subset of JSONC, so both go through the comment stripper.
		if err := json.Unmarshal(jsonc.ToJSON(data), &v); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", format, err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case TOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
		v = m
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	return Normalize(v), nil
}
