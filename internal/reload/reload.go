// Package reload rebuilds the extension registry and the bundle store from
// disk. It is the single writer for both.
package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/agentx-labs/extensiond/internal/bundle"
	"github.com/agentx-labs/extensiond/internal/extension"
	"github.com/agentx-labs/extensiond/internal/registry"
)

// Options locate the data a reload reads.
type Options struct {
	ExtensionsPath string
	BundlePath     string
	HostVersion    string
}

// Result summarizes one reload.
type Result struct {
	Generation       uint64
	Extensions       int
	BundleGeneration uint64
	Built            bool
	Warnings         []string
}

// Reloader serializes rebuilds of a registry and a bundle store.
type Reloader struct {
	mu       sync.Mutex
	opts     Options
	registry *registry.Registry
	bundles  *bundle.Store
	logger   *slog.Logger
}

// New returns a Reloader writing to reg and store.
func New(opts Options, reg *registry.Registry, store *bundle.Store, logger *slog.Logger) *Reloader {
	return &Reloader{opts: opts, registry: reg, bundles: store, logger: logger}
}

// Reload rediscovers extensions, publishes a new registry snapshot, and
// publishes the current build output if there is one. A missing or
// unfinished build keeps the store as it was. A build that would change a served chunk is rejected
// and reported as an error; the registry snapshot is still replaced.
func (r *Reloader) Reload(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := extension.LoadSettings(filepath.Join(r.opts.ExtensionsPath, extension.SettingsFile))
	if err != nil {
		return nil, fmt.Errorf("loading extension settings: %w", err)
	}

	descs, warnings := registry.Discover(
		extension.BuildSources(settings, r.opts.ExtensionsPath),
		registry.DiscoverOptions{HostVersion: r.opts.HostVersion, IsEnabled: settings.IsEnabled},
	)
	for _, w := range warnings {
		r.logger.Warn("Skipping extension", "reason", w)
	}
	snap := r.registry.Rebuild(descs)

	res := &Result{
		Generation: snap.Generation,
		Extensions: snap.Len(),
		Warnings:   warnings,
	}
	r.logger.Info("Registry rebuilt", "generation", snap.Generation, "extensions", snap.Len())

	build, err := bundle.LoadDir(r.opts.BundlePath)
	switch {
	case errors.Is(err, bundle.ErrNotBuilt):
		r.logger.Debug("No extension bundle built yet", "path", r.opts.BundlePath)
	case errors.Is(err, bundle.ErrBuildIncomplete):
		r.logger.Info("Extension bundle build in progress, keeping current build", "path", r.opts.BundlePath, "reason", err)
	case err != nil:
		return res, fmt.Errorf("loading extension bundle: %w", err)
	default:
		if err := r.bundles.Publish(build); err != nil {
			return res, fmt.Errorf("publishing extension bundle: %w", err)
		}
		res.Built = true
		r.logger.Info("Extension bundle published", "generation", r.bundles.Generation(), "chunks", len(build.Chunks))
	}
	res.BundleGeneration = r.bundles.Generation()
	return res, nil
}
