package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/extensiond/internal/registry"
	"github.com/google/go-cmp/cmp"
)

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFile)

	content := `extensions:
  - name: sales-chart
    enabled: false
  - name: audit-hook
    enabled: true
sources:
  - name: vendor
    path: /opt/vendor
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if len(s.Extensions) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(s.Extensions))
	}
	if s.IsEnabled("sales-chart") {
		t.Error("expected sales-chart to be disabled")
	}
	if !s.IsEnabled("audit-hook") {
		t.Error("expected audit-hook to be enabled")
	}
	if !s.IsEnabled("never-mentioned") {
		t.Error("expected extensions without an entry to be enabled")
	}
	if len(s.Sources) != 1 || s.Sources[0].Path != "/opt/vendor" {
		t.Errorf("Sources = %+v, want one vendor source", s.Sources)
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), SettingsFile))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if len(s.Extensions) != 0 {
		t.Errorf("expected empty settings, got %+v", s)
	}
}

func TestLoadSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	if err := os.WriteFile(path, []byte("extensions: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("expected error for malformed settings, got nil")
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)

	original := &Settings{
		Extensions: []Entry{{Name: "alpha", Enabled: false}, {Name: "beta", Enabled: true}},
		Sources:    []SourceEntry{{Name: "vendor", Path: "vendor"}},
	}
	if err := SaveSettings(path, original); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSetEnabledAndRemove(t *testing.T) {
	s := &Settings{Extensions: []Entry{{Name: "alpha", Enabled: true}}}

	s.SetEnabled("alpha", false)
	s.SetEnabled("beta", false)
	if len(s.Extensions) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s.Extensions))
	}
	if s.IsEnabled("alpha") || s.IsEnabled("beta") {
		t.Error("expected alpha and beta to be disabled")
	}

	if err := s.Remove("alpha"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !s.IsEnabled("alpha") {
		t.Error("expected alpha to be enabled once its entry is removed")
	}
	if err := s.Remove("alpha"); err == nil {
		t.Fatal("expected error removing a missing entry, got nil")
	}
}

func TestBuildSources(t *testing.T) {
	s := &Settings{Sources: []SourceEntry{
		{Name: "vendor", Path: "/opt/vendor"},
		{Name: "shared", Path: "shared-dir"},
		{Name: "implicit"},
		{Name: LocalSource, Path: "/ignored"},
	}}

	got := BuildSources(s, "/srv/extensions")
	want := []registry.Source{
		{Name: LocalSource, BasePath: "/srv/extensions"},
		{Name: "vendor", BasePath: "/opt/vendor"},
		{Name: "shared", BasePath: filepath.Join("/srv/extensions", "shared-dir")},
		{Name: "implicit", BasePath: filepath.Join("/srv/extensions", "implicit")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildSources mismatch (-want +got):\n%s", diff)
	}
}
