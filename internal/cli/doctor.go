package cli

import (
	"fmt"

	"github.com/agentx-labs/extensiond/internal/config"
	"github.com/agentx-labs/extensiond/internal/doctor"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create the extensions directory if it is missing")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the extensions directory and bundle output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		settings, err := config.Resolve()
		if err != nil {
			return fmt.Errorf("resolving configuration: %w", err)
		}

		rep := doctor.Check(cmd.OutOrStdout(), doctor.Options{
			ExtensionsPath: settings.ExtensionsPath,
			BundlePath:     settings.BundlePath,
			HostVersion:    settings.HostVersion,
			Fix:            doctorFix,
		})
		if !rep.OK() {
			return fmt.Errorf("%d problems found", rep.Failures)
		}
		return nil
	},
}
