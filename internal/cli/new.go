package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kickstart-labs/kickstart/internal/config"
	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/pkgmanager"
	"github.com/kickstart-labs/kickstart/internal/preset"
	"github.com/kickstart-labs/kickstart/internal/prompt"
	"github.com/kickstart-labs/kickstart/internal/runner"
	"github.com/kickstart-labs/kickstart/internal/wizard"
)

type newOptions struct {
	name           string
	framework      string
	packageManager pkgmanager.PackageManager
	preset         string
	dir            string
	yes            bool
	skipGit        bool
	skipInstall    bool
	skipCacheClear bool
	dryRun         bool
}

var newOpts newOptions

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Ask for a project name, framework and package manager, run the framework's
generator and set up git, commit-message tooling and dependencies.

Answers can be supplied up front with --preset (a JSON file) or with
KICKSTART_ANSWER_<QUESTION> environment variables. With --yes every
question without an answer takes its default.`,
	Example: `  kickstart new my-app --framework nextjs --package-manager pnpm
  kickstart new --preset ./kickstart.json --yes
  KICKSTART_ANSWER_TYPESCRIPT=true kickstart new api --framework nestjs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	addNewFlags(newCmd.Flags(), &newOpts)
	rootCmd.AddCommand(newCmd)
}

func addNewFlags(fs *pflag.FlagSet, o *newOptions) {
	fs.StringVarP(&o.name, "name", "n", "", "Project name")
	fs.StringVarP(&o.framework, "framework", "f", "", "Framework to create (see 'frameworks')")
	fs.VarP(&o.packageManager, "package-manager", "p", "Package manager to use")
	fs.StringVar(&o.preset, "preset", "", "JSON file with pre-filled answers")
	fs.StringVar(&o.dir, "dir", "", "Directory to create the project in (default: current directory)")
	fs.BoolVarP(&o.yes, "yes", "y", false, "Accept defaults for unanswered questions")
	fs.BoolVar(&o.skipGit, "skip-git", false, "Do not initialize git or commit tooling")
	fs.BoolVar(&o.skipInstall, "skip-install", false, "Do not install dependencies")
	fs.BoolVar(&o.skipCacheClear, "skip-cache-clear", false, "Do not clear the npx cache before generating")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Print the generator command and plan without running anything")
}

func runNew(cmd *cobra.Command, args []string) error {
	s := currentSettings()
	opts := resolveOptions(cmd.Flags(), newOpts, s, args)

	reg, err := framework.Load(s.DescriptorsDir)
	if err != nil {
		return fmt.Errorf("loading frameworks: %w", err)
	}

	p, err := preset.Load(newOpts.preset)
	if err != nil {
		return err
	}
	terminal := prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())

	exec := runner.NewExec(logger)
	exec.Stdin = cmd.InOrStdin()
	exec.Stdout = cmd.OutOrStdout()
	exec.Stderr = cmd.ErrOrStderr()

	w := &wizard.Wizard{
		Registry: reg,
		Prompter: p.Prompter(terminal, newOpts.yes),
		Runner:   exec,
		UI:       cmdUI(cmd),
		Logger:   logger,
		Options:  opts,
	}
	_, err = w.Run(cmd.Context())
	return err
}

// resolveOptions merges flags over the user config. A flag wins only when
// it was set explicitly.
func resolveOptions(fs *pflag.FlagSet, o newOptions, s *config.Settings, args []string) wizard.Options {
	opts := wizard.Options{
		Dir:                     o.dir,
		Name:                    o.name,
		Framework:               o.framework,
		PackageManager:          o.packageManager,
		PreferredPackageManager: pkgmanager.PackageManager(s.PackageManager),
		UserAgent:               os.Getenv("npm_config_user_agent"),
		SkipGit:                 s.SkipGit,
		SkipInstall:             s.SkipInstall,
		SkipCacheClear:          s.SkipCacheClear,
		DryRun:                  o.dryRun,
	}
	if opts.Name == "" && len(args) > 0 {
		opts.Name = args[0]
	}
	if fs.Changed("skip-git") {
		opts.SkipGit = o.skipGit
	}
	if fs.Changed("skip-install") {
		opts.SkipInstall = o.skipInstall
	}
	if fs.Changed("skip-cache-clear") {
		opts.SkipCacheClear = o.skipCacheClear
	}
	return opts
}
