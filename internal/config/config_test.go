package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestResolve_Defaults(t *testing.T) {
	home := setupHome(t)
	Load()

	s, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	wantExt := filepath.Join(home, ".extensiond", "extensions")
	if s.ExtensionsPath != wantExt {
		t.Errorf("ExtensionsPath = %q, want %q", s.ExtensionsPath, wantExt)
	}
	if s.BundlePath != filepath.Join(wantExt, "dist") {
		t.Errorf("BundlePath = %q, want %q", s.BundlePath, filepath.Join(wantExt, "dist"))
	}
	if !s.CacheTTL.Disabled() {
		t.Errorf("CacheTTL = %v, want disabled", s.CacheTTL)
	}
	if s.ListenAddr != ":8055" {
		t.Errorf("ListenAddr = %q, want :8055", s.ListenAddr)
	}
	if s.WatchDebounce != 500*time.Millisecond {
		t.Errorf("WatchDebounce = %v, want 500ms", s.WatchDebounce)
	}
	if s.CacheSkip {
		t.Error("CacheSkip = true, want false by default")
	}
}

func TestResolve_Environment(t *testing.T) {
	setupHome(t)
	t.Setenv("EXTENSIOND_EXTENSIONS_CACHE_TTL", "1h")
	t.Setenv("EXTENSIOND_BUNDLE_PATH", "/srv/dist")
	t.Setenv("EXTENSIOND_WATCH", "true")
	t.Setenv("EXTENSIOND_CACHE_SKIP_ALLOWED", "true")
	Load()

	s, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s.CacheTTL.Seconds() != 3600 {
		t.Errorf("CacheTTL = %v, want 1h", s.CacheTTL)
	}
	if s.BundlePath != "/srv/dist" {
		t.Errorf("BundlePath = %q, want /srv/dist", s.BundlePath)
	}
	if !s.Watch {
		t.Error("Watch = false, want true")
	}
	if !s.CacheSkip {
		t.Error("CacheSkip = false, want true")
	}
}

func TestResolve_InvalidTTL(t *testing.T) {
	setupHome(t)
	t.Setenv("EXTENSIOND_EXTENSIONS_CACHE_TTL", "forever")
	Load()

	if _, err := Resolve(); err == nil {
		t.Fatal("expected error for invalid ttl, got nil")
	}
}

func TestSetAndGet(t *testing.T) {
	home := setupHome(t)
	Load()

	if err := Set(KeyHostVersion, "10.8.3"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if FilePath() != filepath.Join(home, ".extensiond", "config.yaml") {
		t.Errorf("FilePath() = %q", FilePath())
	}

	viper.Reset()
	Load()
	if got := Get(KeyHostVersion); got != "10.8.3" {
		t.Errorf("Get(%s) = %q, want 10.8.3", KeyHostVersion, got)
	}
}
