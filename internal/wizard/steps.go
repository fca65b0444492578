package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/gitsetup"
	"github.com/kickstart-labs/kickstart/internal/pkgjson"
	"github.com/kickstart-labs/kickstart/internal/pkgmanager"
	"github.com/kickstart-labs/kickstart/internal/runner"
	"github.com/kickstart-labs/kickstart/internal/scaffold"
)

const chalkVersion = "^4.1.2"

// setupCommitTooling initializes git and husky, adds git-cz and writes the
// commit-message templates.
func (w *Wizard) setupCommitTooling(ctx context.Context, res *Result) error {
	u := w.ui()
	if !gitsetup.Installed(ctx, w.Runner) {
		u.Error("\nGit is not installed. Please install git and try again.")
		return nil
	}
	if !gitsetup.Configured(ctx, w.Runner) {
		u.Info("Git is not configured. Please enter the details to configure GIT")
		id, err := gitsetup.AskIdentity(ctx, w.Prompter)
		if err != nil {
			return err
		}
		if err := gitsetup.Configure(ctx, w.Runner, id); err != nil {
			return fail(msgInitFailed, err)
		}
		u.Info("\nGit configuration updated.")
	}

	u.Success("\nInitializing GIT and adding necessary packages to %s...", res.ProjectName)
	if err := w.initializeProject(ctx, res.ProjectPath); err != nil {
		return fail(msgInitFailed, err)
	}
	u.Success("\nHusky and commit message template added successfully to %s!", res.ProjectName)

	if !gitsetup.GitCzInstalled(ctx, w.Runner) {
		u.Warn("\nGit-cz is not installed. Installing globally...")
		resolve := func(pkg string) (string, error) {
			return pkgmanager.LatestVersion(ctx, w.Runner, res.PackageManager, pkg, res.ProjectPath)
		}
		err := u.Step("Resolving the latest git-cz version", func() error {
			return pkgjson.Update(res.ProjectPath, pkgjson.DevDependencies, []pkgjson.Entry{{Key: "git-cz"}}, resolve)
		})
		if err != nil {
			return fail(msgInitFailed, err)
		}
		u.Success("\nGit-cz installed successfully!")
	}

	copied, err := scaffold.CopyTemplates(res.ProjectPath, scaffold.NewData(res.ProjectName))
	if err != nil {
		return fail(msgInitFailed, err)
	}
	w.log().Debug("copied commit templates", "files", copied.Files, "removed", copied.Removed)
	return nil
}

func (w *Wizard) initializeProject(ctx context.Context, projectPath string) error {
	if err := pkgjson.Update(projectPath, pkgjson.DevDependencies, []pkgjson.Entry{{Key: "chalk", Value: chalkVersion}}, nil); err != nil {
		return err
	}
	if err := gitsetup.Init(ctx, w.Runner, projectPath); err != nil {
		return err
	}
	return gitsetup.CommitTooling(ctx, w.Runner, projectPath)
}

func (w *Wizard) install(ctx context.Context, projectPath string, pm pkgmanager.PackageManager) error {
	cmd, ok, err := pkgmanager.PrepareInstall(projectPath, pm)
	if err != nil {
		w.log().Warn("lockfile cleanup failed", "error", err)
	}
	if !ok {
		w.ui().Success("\nUnable to identify the package manager, Using NPM")
		cmd = pkgmanager.InstallCommand(pkgmanager.NPM).In(projectPath)
	}
	if err := w.Runner.Run(ctx, cmd); err != nil {
		return fail(msgInstallFailed, err)
	}
	return nil
}

// plan describes the steps after the generator for a dry run.
func (w *Wizard) plan(d *framework.Descriptor, pm pkgmanager.PackageManager) []string {
	var steps []string
	if d.Requires != nil {
		steps = append(steps, fmt.Sprintf("install %s globally if missing (%s)", d.Requires.Binary, pkgmanager.GlobalInstall(pm, d.Requires.Package)))
	}
	if !w.Options.SkipCacheClear {
		steps = append(steps, runner.Command("npx", "clear-npx-cache").String())
	}
	steps = append(steps, "run the generator")
	if !w.Options.SkipGit {
		steps = append(steps,
			"add chalk "+chalkVersion+" to devDependencies",
			"git init",
			"npx husky-init",
			"add git-cz to devDependencies if it is not installed",
			"copy commit templates: "+strings.Join(scaffold.Files(), ", "),
		)
	}
	if !w.Options.SkipInstall {
		steps = append(steps, pkgmanager.InstallCommand(pm).String())
	}
	return steps
}
