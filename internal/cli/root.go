package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/branding"
	"github.com/kickstart-labs/kickstart/internal/config"
	"github.com/kickstart-labs/kickstart/internal/logging"
	"github.com/kickstart-labs/kickstart/internal/prompt"
	"github.com/kickstart-labs/kickstart/internal/ui"
	"github.com/kickstart-labs/kickstart/internal/wizard"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose  bool
	settings *config.Settings
	logger   = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates new JavaScript projects by asking a few questions and
running the framework's own generator, then sets up git, commit-message
tooling and installs dependencies.

Run without a subcommand to start the wizard.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runNew,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	addNewFlags(rootCmd.Flags(), &newOpts)
}

// setup loads the user config and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	s, err := config.Current()
	if err != nil {
		return err
	}
	settings = s

	level := s.LogLevel
	if verbose {
		level = "debug"
	}
	l, err := logging.Setup(logging.Config{Level: level, Format: s.LogFormat, Output: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	logger = l
	return nil
}

// Execute runs the root command with build info injected via ldflags. The
// error has already been reported to the user when it is returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(ui.New(os.Stdout, os.Stderr), err)
	}
	return err
}

// printError reports err the way the wizard words its failures.
func printError(u *ui.UI, err error) {
	var werr *wizard.Error
	switch {
	case errors.Is(err, prompt.ErrCancelled), errors.Is(err, context.Canceled):
		u.Error("\nProcess cancelled.")
	case errors.As(err, &werr):
		u.Error("%s", werr.Message)
		if werr.Err != nil {
			slog.Debug("wizard failure", "error", werr.Err)
		}
	default:
		u.Error("Error: %v", err)
	}
}

func cmdUI(cmd *cobra.Command) *ui.UI {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func currentSettings() *config.Settings {
	if settings == nil {
		return &config.Settings{LogLevel: "warn", LogFormat: "text"}
	}
	return settings
}
