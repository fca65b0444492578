// Package pkgmanager knows the differences between npm, yarn and pnpm:
// detection, install commands, lockfiles and registry lookups.
package pkgmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kickstart-labs/kickstart/internal/runner"
)

// PackageManager is one of npm, yarn or pnpm.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	PNPM PackageManager = "pnpm"
)

// All lists the supported package managers in menu order.
var All = []PackageManager{NPM, Yarn, PNPM}

var lockfiles = map[PackageManager]string{
	NPM:  "package-lock.json",
	Yarn: "yarn.lock",
	PNPM: "pnpm-lock.yaml",
}

// Parse resolves a package manager name, ignoring case.
func Parse(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lockfiles[pm]; !ok {
		return "", fmt.Errorf("unknown package manager %q (want npm, yarn or pnpm)", s)
	}
	return pm, nil
}

var _ pflag.Value = (*PackageManager)(nil)

func (p *PackageManager) String() string { return string(*p) }

// Set implements pflag.Value.
func (p *PackageManager) Set(s string) error {
	pm, err := Parse(s)
	if err != nil {
		return err
	}
	*p = pm
	return nil
}

// Type implements pflag.Value.
func (p *PackageManager) Type() string { return "npm|yarn|pnpm" }

// Lockfile returns the lockfile name the manager writes.
func (p PackageManager) Lockfile() string { return lockfiles[p] }

// Detect guesses the package manager in use: lockfiles in appRoot first,
// then the npm_config_user_agent value, then npm.
func Detect(appRoot, userAgent string) PackageManager {
	for _, pm := range []PackageManager{Yarn, PNPM} {
		if exists(filepath.Join(appRoot, pm.Lockfile())) {
			return pm
		}
	}
	switch {
	case strings.Contains(userAgent, "yarn"):
		return Yarn
	case strings.Contains(userAgent, "pnpm"):
		return PNPM
	}
	return NPM
}

// Choose picks the default menu entry: detected when the framework supports
// it, otherwise the first supported manager. An empty supported list means
// every manager is supported.
func Choose(detected PackageManager, supported []string) PackageManager {
	if len(supported) == 0 {
		return detected
	}
	for _, s := range supported {
		if PackageManager(s) == detected {
			return detected
		}
	}
	return PackageManager(supported[0])
}

// PrepareInstall removes the other managers' lockfiles from projectPath and
// returns the install command. ok is false when projectPath has no
// package.json.
func PrepareInstall(projectPath string, pm PackageManager) (cmd runner.Cmd, ok bool, err error) {
	if !exists(filepath.Join(projectPath, "package.json")) {
		return runner.Cmd{}, false, nil
	}
	var errs []error
	for other, lock := range lockfiles {
		if other == pm {
			continue
		}
		if err := os.Remove(filepath.Join(projectPath, lock)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %s: %w", lock, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return runner.Cmd{}, false, err
	}
	return InstallCommand(pm).In(projectPath), true, nil
}

// InstallCommand returns the dependency install command for pm.
func InstallCommand(pm PackageManager) runner.Cmd {
	if pm == Yarn {
		return runner.Command("yarn")
	}
	return runner.Command(string(pm), "install")
}

// GlobalInstall returns the command that installs pkg globally.
func GlobalInstall(pm PackageManager, pkg string) runner.Cmd {
	switch pm {
	case Yarn:
		return runner.Command("yarn", "global", "add", pkg)
	case PNPM:
		return runner.Command("pnpm", "add", "-g", pkg)
	}
	return runner.Command("npm", "i", "-g", pkg)
}

// Add returns the command that adds pkg to the project in the working dir.
func Add(pm PackageManager, pkg string) runner.Cmd {
	if pm == NPM {
		return runner.Command("npm", "i", pkg)
	}
	return runner.Command(string(pm), "add", pkg)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
