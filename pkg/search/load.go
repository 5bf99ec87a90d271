package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

// Config document formats understood by ParseConfig.
const (
	FormatYAML  = "yaml"
	FormatJSON5 = "json5"
)

// FormatForPath picks the document format from a file extension. JSON files
// are read as JSON5, which is a superset.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON5
	}
}

// LoadConfigFile reads a host configuration document and returns its
// tools.web.search slice. A document without that slice yields an empty
// Config, which behaves like the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data, FormatForPath(path))
}

// ParseConfig decodes a configuration document in the given format.
func ParseConfig(data []byte, format string) (*Config, error) {
	var root Root
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing yaml config: %w", err)
		}
	case FormatJSON5:
		if err := json5.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("parsing json5 config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if root.Tools.Web.Search == nil {
		return &Config{}, nil
	}
	return root.Tools.Web.Search, nil
}

// documentToJSON re-encodes a configuration document as plain JSON so it can
// be checked against the schema.
func documentToJSON(data []byte, format string) ([]byte, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml config: %w", err)
		}
	case FormatJSON5:
		if err := json5.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing json5 config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}
