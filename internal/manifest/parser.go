package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads and decodes the manifest at path.
func Parse(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes decodes manifest YAML. The name is only used in error messages.
func ParseBytes(data []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}
	if m.Type == "" {
		return nil, fmt.Errorf("manifest %s missing required 'type' field", name)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("manifest %s missing required 'version' field", name)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
