package cli

import (
	"fmt"

	"github.com/agentx-labs/extensiond/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage service settings",
	Long: `Read and write settings stored in the config file. Every key can also be
set through the environment, e.g. EXTENSIOND_LISTEN_ADDR.

Keys:
  listen_addr            address the HTTP server listens on
  extensions_path        directory holding installed extensions
  bundle_path            directory holding the compiled bundle output
  extensions_cache_ttl   cache lifetime of served bundles ("1h", "3600", "disabled")
  cache_skip_allowed     honor "Cache-Control: no-store" from clients (true, false)
  host_version           host version checked against each extension's host range
  watch                  reload on file changes (true, false)
  watch_debounce         quiet period before a reload ("500ms")`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		if _, err := config.Resolve(); err != nil {
			return fmt.Errorf("config saved but invalid: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
