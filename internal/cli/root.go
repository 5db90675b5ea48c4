package cli

import (
	"github.com/agentx-labs/extensiond/internal/branding"
	"github.com/agentx-labs/extensiond/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps a registry of the extensions installed for the host
application and serves their compiled client bundles over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	logging.RegisterFlags(rootCmd.PersistentFlags())
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}
