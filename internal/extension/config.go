package extension

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// SettingsFile is the filename of the settings file inside the extensions root.
const SettingsFile = "extensions.yaml"

// Settings represents the extensions.yaml file.
type Settings struct {
	Extensions []Entry       `yaml:"extensions"`
	Sources    []SourceEntry `yaml:"sources,omitempty"`
}

// Entry holds per-extension overrides.
type Entry struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// SourceEntry declares an additional directory searched for extensions.
type SourceEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LoadSettings reads extensions.yaml. A missing file yields empty settings,
// meaning every discovered extension is enabled.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return &s, nil
}

// SaveSettings writes the settings back to path.
func SaveSettings(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// Find returns the entry for name, or nil if none is recorded.
func (s *Settings) Find(name string) *Entry {
	for i := range s.Extensions {
		if s.Extensions[i].Name == name {
			return &s.Extensions[i]
		}
	}
	return nil
}

// IsEnabled reports whether name is enabled. Extensions without an entry are enabled.
func (s *Settings) IsEnabled(name string) bool {
	if e := s.Find(name); e != nil {
		return e.Enabled
	}
	return true
}

// SetEnabled records the enabled state for name, adding an entry if needed.
func (s *Settings) SetEnabled(name string, enabled bool) {
	if e := s.Find(name); e != nil {
		e.Enabled = enabled
		return
	}
	s.Extensions = append(s.Extensions, Entry{Name: name, Enabled: enabled})
}

// Remove drops the entry for name. Returns an error if there is none.
func (s *Settings) Remove(name string) error {
	for i, e := range s.Extensions {
		if e.Name == name {
			s.Extensions = append(s.Extensions[:i], s.Extensions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("extension %q not found in settings", name)
}
