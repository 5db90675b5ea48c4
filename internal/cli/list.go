package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/agentx-labs/extensiond/internal/bundle"
	"github.com/agentx-labs/extensiond/internal/config"
	"github.com/agentx-labs/extensiond/internal/exttype"
	"github.com/agentx-labs/extensiond/internal/logging"
	"github.com/agentx-labs/extensiond/internal/registry"
	"github.com/agentx-labs/extensiond/internal/reload"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "List installed extensions",
	Long: `List the extensions found in the extensions directory, in the order the
server returns them. The optional type accepts singular or plural names
(panel, panels).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var raw *string
	if len(args) == 1 {
		raw = &args[0]
	}
	typ, err := exttype.Resolve(raw)
	if err != nil {
		return fmt.Errorf("%w: %s (valid: %s)", err, *raw, typeNames())
	}

	logger, err := logging.FromCommand(cmd)
	if err != nil {
		return err
	}
	config.Load()
	settings, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("resolving configuration: %w", err)
	}

	reg, res, err := loadRegistry(cmd.Context(), settings, logging.Discard())
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		logger.Warn("Skipping extension", "reason", w)
	}

	descs := reg.List(typ)
	if listJSON {
		return printJSON(cmd.OutOrStdout(), descs)
	}
	if len(descs) == 0 {
		if typ != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No %s installed.\n", typ.Plural())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No extensions installed yet.")
		}
		return nil
	}
	return printDescriptorTable(cmd.OutOrStdout(), descs)
}

// loadRegistry runs one reload into a fresh registry. The bundle output is
// loaded too, so a build that fails to publish is reported.
func loadRegistry(ctx context.Context, settings *config.Settings, logger *slog.Logger) (*registry.Registry, *reload.Result, error) {
	reg := registry.New()
	r := reload.New(reload.Options{
		ExtensionsPath: settings.ExtensionsPath,
		BundlePath:     settings.BundlePath,
		HostVersion:    settings.HostVersion,
	}, reg, bundle.NewStore(), logger)
	res, err := r.Reload(ctx)
	if err != nil {
		return nil, nil, err
	}
	return reg, res, nil
}

func printDescriptorTable(out io.Writer, descs []registry.Descriptor) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tVERSION\tENABLED\tSOURCE")
	for _, d := range descs {
		version := d.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", d.Type, d.Name, version, d.Enabled, d.Source)
	}
	return w.Flush()
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func typeNames() string {
	return strings.Join(lo.Map(exttype.All(), func(t exttype.Type, _ int) string {
		return t.String()
	}), ", ")
}
