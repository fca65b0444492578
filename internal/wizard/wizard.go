// Package wizard runs the interactive project setup: it asks for a name,
// framework and package manager, invokes the framework's generator, then
// adds git, commit-message tooling and installs dependencies.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/generator"
	"github.com/kickstart-labs/kickstart/internal/pkgjson"
	"github.com/kickstart-labs/kickstart/internal/pkgmanager"
	"github.com/kickstart-labs/kickstart/internal/prompt"
	"github.com/kickstart-labs/kickstart/internal/runner"
	"github.com/kickstart-labs/kickstart/internal/toolchain"
	"github.com/kickstart-labs/kickstart/internal/ui"
)

// Options tune a run. Zero values ask for everything and run every step.
type Options struct {
	// Dir is where the project directory is created. Empty means the
	// current working directory.
	Dir string

	Name      string
	Framework string
	// PackageManager forces a manager; a framework that does not support it
	// fails the run.
	PackageManager pkgmanager.PackageManager
	// PreferredPackageManager replaces detection as the menu default. It
	// is ignored for frameworks that do not support it.
	PreferredPackageManager pkgmanager.PackageManager

	// UserAgent is the npm_config_user_agent value used for detection.
	UserAgent string

	SkipGit        bool
	SkipInstall    bool
	SkipCacheClear bool
	DryRun         bool
}

// Wizard wires the collaborators of a run.
type Wizard struct {
	Registry *framework.Registry
	Prompter prompt.Prompter
	Runner   runner.Runner
	UI       *ui.UI
	Logger   *slog.Logger
	Options  Options
}

// Result describes what a run did, or would do for a dry run.
type Result struct {
	ProjectName    string
	ProjectPath    string
	Framework      *framework.Descriptor
	PackageManager pkgmanager.PackageManager
	Command        string
	Answers        *framework.Answers
	// Plan lists the remaining steps in order. Only set for dry runs.
	Plan []string
}

func (w *Wizard) log() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

func (w *Wizard) ui() *ui.UI {
	if w.UI == nil {
		w.UI = ui.New(io.Discard, io.Discard)
	}
	return w.UI
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) (*Result, error) {
	u := w.ui()
	u.Title("\nWelcome to Project Initialization Wizard!")

	dir := w.Options.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}

	name, err := w.askProjectName(ctx, dir)
	if err != nil {
		return nil, err
	}
	res := &Result{ProjectName: name, ProjectPath: filepath.Join(dir, name)}
	if dirNotEmpty(res.ProjectPath) {
		return nil, fail(msgDirNotEmpty, ErrProjectDirNotEmpty)
	}

	d, err := w.askFramework(ctx)
	if err != nil {
		return nil, err
	}
	res.Framework = d
	w.preflight(ctx, d)

	pm, err := w.askPackageManager(ctx, d, dir)
	if err != nil {
		return nil, err
	}
	res.PackageManager = pm
	w.log().Debug("selections", "name", name, "framework", d.Name, "pm", pm)

	gen, err := generator.Build(ctx, d, generator.Input{Name: name, PackageManager: string(pm)}, w.Prompter, nil)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fail(msgInitFailed, err)
	}
	res.Command = gen.Command.String()
	res.Answers = gen.Answers

	if w.Options.DryRun {
		res.Plan = w.plan(d, pm)
		u.Info("\nDry run: nothing will be executed.")
		u.Plain("%s", res.Command)
		for _, step := range res.Plan {
			u.Plain("  - %s", step)
		}
		return res, nil
	}

	if err := w.ensureCLI(ctx, d, pm); err != nil {
		return nil, err
	}
	if err := w.scaffold(ctx, dir, gen); err != nil {
		return nil, err
	}

	if !w.Options.SkipGit {
		if err := w.setupCommitTooling(ctx, res); err != nil {
			return nil, err
		}
	}
	if !w.Options.SkipInstall {
		if err := w.install(ctx, res.ProjectPath, pm); err != nil {
			return nil, err
		}
	}

	u.Success("\n%s is ready in %s", name, res.ProjectPath)
	return res, nil
}

func (w *Wizard) askProjectName(ctx context.Context, dir string) (string, error) {
	validate := func(s string) error {
		if s == "" {
			return errors.New("Project name cannot be empty")
		}
		if pkgjson.ValidateName(s) != nil {
			return errors.New("Package names can only contain lowercase letters, numbers, hyphens (-), and underscores (_). " +
				"They must start and end with a lowercase letter or a number")
		}
		if dirNotEmpty(filepath.Join(dir, s)) {
			return errors.New("The project directory is not empty. Please make sure that the project directory is empty and press enter")
		}
		return nil
	}

	if name := w.Options.Name; name != "" {
		if err := pkgjson.ValidateName(name); err != nil {
			return "", err
		}
		return name, nil
	}
	return w.Prompter.Input(ctx, prompt.Question{
		Name:     "project_name",
		Message:  "Enter the name of your project:",
		Validate: validate,
	})
}

func (w *Wizard) askFramework(ctx context.Context) (*framework.Descriptor, error) {
	name := w.Options.Framework
	if name == "" {
		var choices []prompt.Choice
		for _, d := range w.Registry.All() {
			choices = append(choices, prompt.Choice{Name: d.DisplayName, Value: d.Name})
		}
		v, err := w.Prompter.Select(ctx, prompt.Question{
			Name:    "framework",
			Message: "Select the platform to create:",
			Choices: choices,
		})
		if err != nil {
			return nil, err
		}
		name = fmt.Sprint(v)
	}
	d, err := w.Registry.Lookup(name)
	if err != nil {
		return nil, fail(fmt.Sprintf("\nError: %s is not a valid platform.", name), err)
	}
	return d, nil
}

// preflight prints the framework notice and warns about an unsuitable node.
// Neither stops the run; the generator reports its own hard failures. Dry
// runs skip the node version check so they execute nothing.
func (w *Wizard) preflight(ctx context.Context, d *framework.Descriptor) {
	if d.Notice != "" {
		w.ui().Warn("\n%s", d.Notice)
	}
	if d.Node == "" || w.Options.DryRun {
		return
	}
	check, err := toolchain.CheckNode(ctx, w.Runner, d.Node)
	switch {
	case err != nil:
		w.log().Warn("node check failed", "error", err)
		w.ui().Warn("Could not determine the installed node version; %s needs node %s", d.DisplayName, d.Node)
	case !check.OK:
		w.ui().Warn("%s needs node %s but %s is installed", d.DisplayName, d.Node, check.Version)
	}
}

func (w *Wizard) askPackageManager(ctx context.Context, d *framework.Descriptor, dir string) (pkgmanager.PackageManager, error) {
	if pm := w.Options.PackageManager; pm != "" {
		if !d.Supports(string(pm)) {
			return "", fail(fmt.Sprintf("%s does not support %s", d.DisplayName, pm), nil)
		}
		return pm, nil
	}

	supported := d.PackageManagers
	preferred := w.Options.PreferredPackageManager
	if preferred == "" {
		preferred = pkgmanager.Detect(dir, w.Options.UserAgent)
	}
	def := pkgmanager.Choose(preferred, supported)
	v, err := w.Prompter.Select(ctx, prompt.Question{
		Name:    "package_manager",
		Message: "Choose a package manager:",
		Choices: prompt.Strings(supported...),
		Default: string(def),
	})
	if err != nil {
		return "", err
	}
	return pkgmanager.Parse(fmt.Sprint(v))
}

func (w *Wizard) ensureCLI(ctx context.Context, d *framework.Descriptor, pm pkgmanager.PackageManager) error {
	if d.Requires == nil {
		return nil
	}
	installed, err := toolchain.EnsureCLI(ctx, w.Runner, d.Requires, pm)
	if err != nil {
		return fail(fmt.Sprintf("\nYou do not have %s and it could not be installed.", d.Requires.Package), err)
	}
	if installed {
		w.ui().Success("\nInstalled %s globally.", d.Requires.Package)
	}
	return nil
}

func (w *Wizard) scaffold(ctx context.Context, dir string, gen *generator.Result) error {
	if !w.Options.SkipCacheClear {
		if err := w.Runner.Run(ctx, runner.Command("npx", "clear-npx-cache").In(dir)); err != nil {
			w.log().Warn("clearing the npx cache failed", "error", err)
		}
	}
	name, args := gen.Command.Args()
	w.log().Info("running generator", "cmd", gen.Command.String())
	if err := w.Runner.Run(ctx, runner.Cmd{Name: name, Args: args, Dir: dir}); err != nil {
		return fail(msgInitFailed, err)
	}
	return nil
}

func dirNotEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}
