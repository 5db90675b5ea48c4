package bundle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// stampAt writes the build stamp with the given modification time.
func stampAt(t *testing.T, dir string, at time.Time) {
	t.Helper()
	path := filepath.Join(dir, StampFile)
	writeFile(t, path, "")
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EntryID), "console.log(1)")
	writeFile(t, filepath.Join(dir, ChunksDir, "panel-3f2a.js"), "export const a = 1")
	writeFile(t, filepath.Join(dir, ChunksDir, "hook-99bc.js"), "export const b = 2")
	writeFile(t, filepath.Join(dir, ChunksDir, "panel-3f2a.js.map"), "{}")
	stampAt(t, dir, time.Now().Add(time.Minute))

	b, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	want := &Build{
		Entry: "console.log(1)",
		Chunks: map[string]string{
			"panel-3f2a.js": "export const a = 1",
			"hook-99bc.js":  "export const b = 2",
		},
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("LoadDir mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDir_NoChunks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EntryID), "x")
	stampAt(t, dir, time.Now().Add(time.Minute))

	b, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(b.Chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(b.Chunks))
	}
}

func TestLoadDir_NotBuilt(t *testing.T) {
	stamped := t.TempDir()
	stampAt(t, stamped, time.Now())

	for name, dir := range map[string]string{
		"missing dir":         filepath.Join(t.TempDir(), "dist"),
		"empty dir":           t.TempDir(),
		"stamp without entry": stamped,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadDir(dir); !errors.Is(err, ErrNotBuilt) {
				t.Fatalf("LoadDir() error = %v, want ErrNotBuilt", err)
			}
		})
	}
}

func TestLoadDir_Incomplete(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name: "no stamp yet",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, EntryID), "console.log(1)")
				writeFile(t, filepath.Join(dir, ChunksDir, "c.js"), "cons")
			},
		},
		{
			name: "chunk rewritten after stamp",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, EntryID), "console.log(1)")
				stampAt(t, dir, time.Now().Add(-time.Hour))
				writeFile(t, filepath.Join(dir, ChunksDir, "c.js"), "cons")
			},
		},
		{
			name: "entry rewritten after stamp",
			setup: func(t *testing.T, dir string) {
				stampAt(t, dir, time.Now().Add(-time.Hour))
				writeFile(t, filepath.Join(dir, EntryID), "console")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)
			if _, err := LoadDir(dir); !errors.Is(err, ErrBuildIncomplete) {
				t.Fatalf("LoadDir() error = %v, want ErrBuildIncomplete", err)
			}
		})
	}
}
