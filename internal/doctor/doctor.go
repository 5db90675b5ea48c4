// Package doctor checks that the extensions directory, its settings and the
// bundle output are usable, optionally repairing what it can.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentx-labs/extensiond/internal/bundle"
	"github.com/agentx-labs/extensiond/internal/extension"
	"github.com/agentx-labs/extensiond/internal/registry"
	"github.com/samber/lo"
)

// Options locate what is checked.
type Options struct {
	ExtensionsPath string
	BundlePath     string
	HostVersion    string
	Fix            bool
}

// Report counts the findings of a check.
type Report struct {
	Failures int
	Warnings int
}

// OK reports whether nothing failed.
func (r *Report) OK() bool { return r.Failures == 0 }

// Check writes one line per finding to w.
func Check(w io.Writer, opts Options) *Report {
	rep := &Report{}

	fmt.Fprintln(w, "Extensions check:")
	if !checkDir(w, rep, opts.ExtensionsPath, opts.Fix) {
		return rep
	}

	settingsPath := filepath.Join(opts.ExtensionsPath, extension.SettingsFile)
	settings, err := extension.LoadSettings(settingsPath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		rep.Failures++
		return rep
	}
	if _, statErr := os.Stat(settingsPath); statErr == nil {
		fmt.Fprintf(w, "  [ OK ] %s (%d entries)\n", settingsPath, len(settings.Extensions))
	}

	sources := extension.BuildSources(settings, opts.ExtensionsPath)
	descs, warnings := registry.Discover(sources, registry.DiscoverOptions{
		HostVersion: opts.HostVersion,
		IsEnabled:   settings.IsEnabled,
	})
	for _, msg := range warnings {
		fmt.Fprintf(w, "  [WARN] %s\n", msg)
		rep.Warnings++
	}
	fmt.Fprintf(w, "  [ OK ] %d extensions discovered in %d sources\n", len(descs), len(sources))

	for _, e := range settings.Extensions {
		name := e.Name
		if !lo.ContainsBy(descs, func(d registry.Descriptor) bool { return d.Name == name }) {
			fmt.Fprintf(w, "  [WARN] %s has settings but is not installed\n", e.Name)
			rep.Warnings++
		}
	}

	fmt.Fprintln(w, "Bundle check:")
	build, err := bundle.LoadDir(opts.BundlePath)
	switch {
	case errors.Is(err, bundle.ErrNotBuilt):
		fmt.Fprintf(w, "  [MISS] no build output in %s; bundle requests return 404\n", opts.BundlePath)
		rep.Warnings++
	case errors.Is(err, bundle.ErrBuildIncomplete):
		fmt.Fprintf(w, "  [WARN] %v\n", err)
		rep.Warnings++
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		rep.Failures++
	default:
		if pubErr := bundle.NewStore().Publish(build); pubErr != nil {
			fmt.Fprintf(w, "  [FAIL] %v\n", pubErr)
			rep.Failures++
			break
		}
		fmt.Fprintf(w, "  [ OK ] %s (entry %d bytes, %d chunks)\n", opts.BundlePath, len(build.Entry), len(build.Chunks))
	}

	return rep
}

func checkDir(w io.Writer, rep *Report, path string, fix bool) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			rep.Failures++
			return false
		}
		if mkErr := os.MkdirAll(path, 0755); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			rep.Failures++
			return false
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		rep.Failures++
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		rep.Failures++
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}
