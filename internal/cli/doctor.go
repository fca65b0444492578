package cli

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/gitsetup"
	"github.com/kickstart-labs/kickstart/internal/runner"
	"github.com/kickstart-labs/kickstart/internal/toolchain"
	"github.com/kickstart-labs/kickstart/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools the generators need",
	Long: `Check node, the package managers, git and the global CLIs some frameworks
need, and report which frameworks the installed node can create.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := framework.Load(currentSettings().DescriptorsDir)
		if err != nil {
			return fmt.Errorf("loading frameworks: %w", err)
		}
		exec := runner.NewExec(logger)
		checks := diagnose(cmd.Context(), exec, reg)
		if n := report(cmdUI(cmd), checks); n > 0 {
			return fmt.Errorf("doctor found %d problem(s)", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkStatus int

const (
	statusOK checkStatus = iota
	statusWarn
	statusFail
)

type check struct {
	Name   string
	Status checkStatus
	Detail string
}

// diagnose runs every check. Only node, npm and git are hard requirements;
// everything else is reported as a warning.
func diagnose(ctx context.Context, r runner.Runner, reg *framework.Registry) []check {
	var checks []check

	node, err := toolchain.NodeVersion(ctx, r)
	if err != nil {
		checks = append(checks, check{Name: "node", Status: statusFail, Detail: "not found"})
	} else {
		checks = append(checks, check{Name: "node", Detail: node.String()})
	}

	for _, pm := range []string{"npm", "yarn", "pnpm"} {
		status := statusWarn
		if pm == "npm" {
			status = statusFail
		}
		checks = append(checks, versionCheck(ctx, r, pm, status))
	}

	switch {
	case !gitsetup.Installed(ctx, r):
		checks = append(checks, check{Name: "git", Status: statusFail, Detail: "not found"})
	case !gitsetup.Configured(ctx, r):
		checks = append(checks, check{Name: "git", Status: statusWarn, Detail: "user.name or user.email not set; the wizard will ask"})
	default:
		checks = append(checks, check{Name: "git", Detail: "configured"})
	}
	if !gitsetup.GitCzInstalled(ctx, r) {
		checks = append(checks, check{Name: "git-cz", Status: statusWarn, Detail: "not installed; it will be added to new projects"})
	}

	seen := map[string]bool{}
	for _, d := range reg.All() {
		if d.Requires != nil && !seen[d.Requires.Binary] {
			seen[d.Requires.Binary] = true
			c := versionCheck(ctx, r, d.Requires.Binary, statusWarn)
			if c.Status != statusOK {
				c.Detail = fmt.Sprintf("not found; %s will be installed for %s", d.Requires.Package, d.DisplayName)
			}
			checks = append(checks, c)
		}
		if node != nil && d.Node != "" {
			if c, err := semver.NewConstraint(d.Node); err == nil && !c.Check(node) {
				checks = append(checks, check{
					Name:   d.Name,
					Status: statusWarn,
					Detail: fmt.Sprintf("needs node %s", d.Node),
				})
			}
		}
	}
	return checks
}

func versionCheck(ctx context.Context, r runner.Runner, binary string, missing checkStatus) check {
	v, err := toolchain.Version(ctx, r, binary)
	if err != nil {
		return check{Name: binary, Status: missing, Detail: "not found"}
	}
	return check{Name: binary, Detail: v.String()}
}

// report prints checks and returns the number of failures.
func report(u *ui.UI, checks []check) int {
	failed := 0
	for _, c := range checks {
		switch c.Status {
		case statusOK:
			u.Success("ok      %-12s %s", c.Name, c.Detail)
		case statusWarn:
			u.Warn("warn    %-12s %s", c.Name, c.Detail)
		default:
			failed++
			u.Error("missing %-12s %s", c.Name, c.Detail)
		}
	}
	return failed
}
