package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <descriptor.yaml>...",
	Short: "Check framework descriptor files",
	Long: `Validate framework descriptors against the descriptor schema and the
consistency rules applied when they are loaded (known question references,
valid patterns, command templates).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invalid, err := validateFiles(cmdUI(cmd), args)
		if err != nil {
			return err
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d descriptor(s) invalid", invalid, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateFiles reports on each path and returns how many were invalid.
func validateFiles(u *ui.UI, paths []string) (int, error) {
	invalid := 0
	for _, path := range paths {
		res, err := framework.ValidateFile(path)
		if err != nil {
			return invalid, err
		}
		if res.Valid {
			u.Success("%s: valid", path)
			continue
		}
		invalid++
		u.Error("%s: invalid", path)
		printIssues(u.Out(), res.Issues)
	}
	return invalid, nil
}

func printIssues(out io.Writer, issues []framework.ValidationIssue) {
	for _, is := range issues {
		fmt.Fprintf(out, "  - %s\n", is)
	}
}
