package cli

import (
	"fmt"

	"github.com/agentx-labs/extensiond/internal/exttype"
	"github.com/agentx-labs/extensiond/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	createDescription string
	createHost        string
)

var createCmd = &cobra.Command{
	Use:   "create <type> <name>",
	Short: "Create a new extension in the extensions directory",
	Long: `Create a new extension from the built-in template. The extension is written
to <extensions_path>/<types>/<name>/ with a manifest and a src/index.js entry.

Example:
  extensiond create panel sales-chart
  extensiond create hooks audit --host ">=10.0.0"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := exttype.Resolve(&args[0])
		if err != nil {
			return fmt.Errorf("%w: %s (valid: %s)", err, args[0], typeNames())
		}
		root, err := extensionsRoot()
		if err != nil {
			return err
		}

		data := scaffold.NewData(args[1], *typ)
		if createDescription != "" {
			data.Description = createDescription
		}
		data.Host = createHost

		res, err := scaffold.Generate(root, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q in %s\n", data.Type, data.Name, res.OutputDir)
		for _, f := range res.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "Extension description")
	createCmd.Flags().StringVar(&createHost, "host", "", "Host version range the extension supports")
	rootCmd.AddCommand(createCmd)
}
