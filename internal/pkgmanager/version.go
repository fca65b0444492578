package pkgmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/kickstart-labs/kickstart/internal/runner"
)

// LatestVersion asks the registry for the newest published version of pkg.
// npm and pnpm print a JSON string; yarn wraps it as {"data": "..."}.
//
// When the lookup fails the package is installed directly in dir instead,
// and LatestVersion returns "" with a nil error so callers can skip pinning
// a version. Only a failed fallback install is returned as an error.
func LatestVersion(ctx context.Context, r runner.Runner, pm PackageManager, pkg, dir string) (string, error) {
	out, err := r.Output(ctx, runner.Command(string(pm), "info", pkg, "version", "--json").In(dir))
	if err == nil {
		var v string
		if v, err = parseVersion(out); err == nil {
			return v, nil
		}
	}

	slog.Warn("could not fetch latest version, installing latest available", "package", pkg, "error", err)
	if err := r.Run(ctx, Add(pm, pkg).In(dir)); err != nil {
		return "", fmt.Errorf("installing %s: %w", pkg, err)
	}
	return "", nil
}

func parseVersion(out []byte) (string, error) {
	var raw any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(out))), &raw); err != nil {
		return "", fmt.Errorf("decoding version output: %w", err)
	}
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case map[string]any:
		s, _ = v["data"].(string)
	}
	if s == "" {
		return "", fmt.Errorf("no version in output %q", strings.TrimSpace(string(out)))
	}
	ver, err := semver.NewVersion(s)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", s, err)
	}
	return ver.Original(), nil
}
