package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentx-labs/extensiond/internal/bundle"
	"github.com/agentx-labs/extensiond/internal/config"
	"github.com/agentx-labs/extensiond/internal/logging"
	"github.com/agentx-labs/extensiond/internal/registry"
	"github.com/agentx-labs/extensiond/internal/reload"
	"github.com/agentx-labs/extensiond/internal/server"
	"github.com/agentx-labs/extensiond/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func init() {
	flags := serveCmd.Flags()
	flags.String("addr", "", "Listen address (overrides "+config.KeyListenAddr+")")
	flags.Bool("watch", false, "Reload when extensions or bundles change (overrides "+config.KeyWatch+")")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extension registry and bundles over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.FromCommand(cmd)
		if err != nil {
			return err
		}

		config.Load()
		if err := bindFlag(cmd, "addr", config.KeyListenAddr); err != nil {
			return err
		}
		if err := bindFlag(cmd, "watch", config.KeyWatch); err != nil {
			return err
		}
		settings, err := config.Resolve()
		if err != nil {
			return fmt.Errorf("resolving configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, settings, logger)
	},
}

func bindFlag(cmd *cobra.Command, flag, key string) error {
	f := cmd.Flags().Lookup(flag)
	if f == nil || !f.Changed {
		return nil
	}
	if err := viper.BindPFlag(key, f); err != nil {
		return fmt.Errorf("binding --%s: %w", flag, err)
	}
	return nil
}

func serve(ctx context.Context, settings *config.Settings, logger *slog.Logger) error {
	if settings.Watch {
		// The watcher falls back to the closest existing parent, which must
		// not be the home directory.
		if err := os.MkdirAll(settings.ExtensionsPath, 0o755); err != nil {
			return fmt.Errorf("creating extensions directory: %w", err)
		}
	}

	extensions := registry.New()
	bundles := bundle.NewStore()

	reloader := reload.New(reload.Options{
		ExtensionsPath: settings.ExtensionsPath,
		BundlePath:     settings.BundlePath,
		HostVersion:    settings.HostVersion,
	}, extensions, bundles, logger)
	if _, err := reloader.Reload(ctx); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	srv := server.New(server.Options{
		Registry:         extensions,
		Bundles:          bundles,
		CacheTTL:         settings.CacheTTL,
		CacheSkipAllowed: settings.CacheSkip,
		Logger:           logger,
	})
	logger.Info("Serving extensions",
		"extensions_path", settings.ExtensionsPath,
		"bundle_path", settings.BundlePath,
		"cache_ttl", settings.CacheTTL.String(),
		"cache_skip_allowed", settings.CacheSkip,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, settings.ListenAddr)
	})
	if settings.Watch {
		g.Go(func() error {
			paths := []string{settings.ExtensionsPath, settings.BundlePath}
			return watcher.Watch(gctx, paths, settings.WatchDebounce, logger, func(ctx context.Context) {
				if _, err := reloader.Reload(ctx); err != nil {
					logger.Error("Reload failed", "error", err)
				}
			})
		})
	}
	return g.Wait()
}
