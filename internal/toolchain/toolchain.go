// Package toolchain checks for the external programs generators depend on:
// node itself and globally installed framework CLIs.
package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/pkgmanager"
	"github.com/kickstart-labs/kickstart/internal/runner"
)

// Installed reports whether `binary --version` runs successfully.
func Installed(ctx context.Context, r runner.Runner, binary string) bool {
	_, err := r.Output(ctx, runner.Command(binary, "--version"))
	return err == nil
}

// Version runs `binary --version` and parses the first semver-looking word
// of its output. A leading "v" is tolerated.
func Version(ctx context.Context, r runner.Runner, binary string) (*semver.Version, error) {
	out, err := r.Output(ctx, runner.Command(binary, "--version"))
	if err != nil {
		return nil, err
	}
	for _, field := range strings.Fields(string(out)) {
		if v, err := parseSemver(field); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no version in %s output %q", binary, strings.TrimSpace(string(out)))
}

// NodeVersion returns the version of the node binary on PATH.
func NodeVersion(ctx context.Context, r runner.Runner) (*semver.Version, error) {
	return Version(ctx, r, "node")
}

// NodeCheck is the outcome of CheckNode.
type NodeCheck struct {
	Version    *semver.Version
	Constraint string
	OK         bool
}

// CheckNode compares the installed node against a semver constraint such
// as ">=18.0.0". An empty constraint only requires node to be present.
func CheckNode(ctx context.Context, r runner.Runner, constraint string) (*NodeCheck, error) {
	v, err := NodeVersion(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("checking node: %w", err)
	}
	res := &NodeCheck{Version: v, Constraint: constraint, OK: true}
	if constraint == "" {
		return res, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("parsing node constraint %q: %w", constraint, err)
	}
	res.OK = c.Check(v)
	return res, nil
}

// EnsureCLI installs req globally with pm when its binary is missing. It
// reports whether an install was performed.
func EnsureCLI(ctx context.Context, r runner.Runner, req *framework.Requirement, pm pkgmanager.PackageManager) (bool, error) {
	if req == nil || Installed(ctx, r, req.Binary) {
		return false, nil
	}
	slog.Info("installing missing CLI", "binary", req.Binary, "package", req.Package, "pm", pm)
	if err := r.Run(ctx, pkgmanager.GlobalInstall(pm, req.Package)); err != nil {
		return false, fmt.Errorf("installing %s: %w", req.Package, err)
	}
	return true, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(version, "v"))
}
