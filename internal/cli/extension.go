package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/extensiond/internal/config"
	"github.com/agentx-labs/extensiond/internal/extension"
	"github.com/agentx-labs/extensiond/internal/logging"
	"github.com/agentx-labs/extensiond/internal/registry"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	extensionCmd.AddCommand(extensionEnableCmd)
	extensionCmd.AddCommand(extensionDisableCmd)
	extensionCmd.AddCommand(extensionResetCmd)
	extensionCmd.AddCommand(extensionListCmd)
	rootCmd.AddCommand(extensionCmd)
}

var extensionCmd = &cobra.Command{
	Use:     "extension",
	Aliases: []string{"ext"},
	Short:   "Enable, disable and inspect installed extensions",
	Long: `Manage per-extension settings stored in ` + extension.SettingsFile + ` inside the
extensions directory. A running server picks up changes on its next reload.`,
}

var extensionEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Mark an extension as enabled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setExtensionEnabled(cmd, args[0], true)
	},
}

var extensionDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Mark an extension as disabled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setExtensionEnabled(cmd, args[0], false)
	},
}

var extensionResetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Drop the settings of an extension so it is enabled by default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := extensionsRoot()
		if err != nil {
			return err
		}
		path := filepath.Join(root, extension.SettingsFile)
		s, err := extension.LoadSettings(path)
		if err != nil {
			return err
		}
		if err := s.Remove(args[0]); err != nil {
			return err
		}
		if err := extension.SaveSettings(path, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Extension %q reset.\n", args[0])
		return nil
	},
}

var extensionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed extensions and whether they are enabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		descs := reg.List(nil)
		if len(descs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No extensions installed yet.")
			return nil
		}
		if err := printDescriptorTable(cmd.OutOrStdout(), descs); err != nil {
			return err
		}
		enabled := lo.CountBy(descs, func(d registry.Descriptor) bool { return d.Enabled })
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d extensions, %d enabled.\n", len(descs), enabled)
		return nil
	},
}

func setExtensionEnabled(cmd *cobra.Command, name string, enabled bool) error {
	root, err := extensionsRoot()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("creating extensions directory: %w", err)
	}

	path := filepath.Join(root, extension.SettingsFile)
	s, err := extension.LoadSettings(path)
	if err != nil {
		return err
	}
	s.SetEnabled(name, enabled)
	if err := extension.SaveSettings(path, s); err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Extension %q %s.\n", name, state)
	return nil
}

func extensionsRoot() (string, error) {
	config.Load()
	settings, err := config.Resolve()
	if err != nil {
		return "", fmt.Errorf("resolving configuration: %w", err)
	}
	return settings.ExtensionsPath, nil
}
