package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/extensiond/internal/manifest"
	"github.com/spf13/cobra"
)

var validateHostVersion string

// errInvalidManifest is returned once all issues have been printed.
var errInvalidManifest = errors.New("manifest is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <manifest|dir>",
	Short: "Validate an extension manifest",
	Long: `Validate an extension manifest against the extension schema. A directory
argument validates the ` + manifest.FileName + ` inside it. With --host-version the
manifest's host range is checked as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateHostVersion, "host-version", "", "Host version to check the manifest's host range against")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	res, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !res.Valid {
		for _, issue := range res.Issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
		return fmt.Errorf("%s: %w", path, errInvalidManifest)
	}

	m, err := manifest.Parse(path)
	if err != nil {
		return err
	}
	if validateHostVersion != "" {
		ok, err := m.HostCompatible(validateHostVersion)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			return fmt.Errorf("%s: host range %q does not match host version %s", path, m.Host, validateHostVersion)
		}
	}

	fmt.Fprintf(out, "%s: valid %s %q\n", path, m.Type, m.Name)
	return nil
}
