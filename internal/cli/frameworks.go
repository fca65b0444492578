package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/framework"
)

var frameworksJSON bool

var frameworksCmd = &cobra.Command{
	Use:     "frameworks",
	Aliases: []string{"ls"},
	Short:   "List the frameworks the wizard can create",
	Long: `List the built-in frameworks together with any descriptors found in the
configured descriptors_dir.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := framework.Load(currentSettings().DescriptorsDir)
		if err != nil {
			return fmt.Errorf("loading frameworks: %w", err)
		}
		if frameworksJSON {
			return printFrameworksJSON(cmd.OutOrStdout(), reg.All())
		}
		return printFrameworksTable(cmd.OutOrStdout(), reg.All())
	},
}

func init() {
	frameworksCmd.Flags().BoolVar(&frameworksJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(frameworksCmd)
}

type frameworkEntry struct {
	Name            string   `json:"name"`
	DisplayName     string   `json:"display_name"`
	Description     string   `json:"description,omitempty"`
	PackageManagers []string `json:"package_managers"`
	Node            string   `json:"node,omitempty"`
	Source          string   `json:"source"`
}

func toEntries(ds []*framework.Descriptor) []frameworkEntry {
	entries := make([]frameworkEntry, 0, len(ds))
	for _, d := range ds {
		entries = append(entries, frameworkEntry{
			Name:            d.Name,
			DisplayName:     d.DisplayName,
			Description:     d.Description,
			PackageManagers: d.PackageManagers,
			Node:            d.Node,
			Source:          d.Source,
		})
	}
	return entries
}

func printFrameworksTable(out io.Writer, ds []*framework.Descriptor) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tFRAMEWORK\tPACKAGE MANAGERS\tNODE")
	for _, e := range toEntries(ds) {
		node := e.Node
		if node == "" {
			node = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.DisplayName, strings.Join(e.PackageManagers, ", "), node)
	}
	return w.Flush()
}

func printFrameworksJSON(out io.Writer, ds []*framework.Descriptor) error {
	data, err := json.MarshalIndent(toEntries(ds), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
