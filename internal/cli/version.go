package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/branding"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), versionFormat, currentVersion())
	},
}

func init() {
	versionCmd.Flags().StringVarP(&versionFormat, "output", "o", "text", "Output format: text, short or json")
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Repo    string `json:"repo"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version: buildVersion,
		Commit:  buildCommit,
		Date:    buildDate,
		Repo:    "https://github.com/" + branding.GitHubRepo(),
	}
}

func writeVersion(out io.Writer, format string, v versionInfo) error {
	switch format {
	case "short":
		_, err := fmt.Fprintln(out, v.Version)
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text", "":
		_, err := fmt.Fprintf(out, "%s %s (commit %s, built %s)\n%s\n", branding.CLIName(), v.Version, v.Commit, v.Date, v.Repo)
		return err
	}
	return fmt.Errorf("unknown output format %q (want text, short or json)", format)
}
