// Package gitsetup prepares a generated project for version control: git
// identity, repository init and commit-message tooling.
package gitsetup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kickstart-labs/kickstart/internal/prompt"
	"github.com/kickstart-labs/kickstart/internal/runner"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() { validate = validator.New() })
	return validate
}

// Identity is the global git author.
type Identity struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// Validate checks that both fields are set and the email is well formed.
func (id Identity) Validate() error {
	id.Name = strings.TrimSpace(id.Name)
	if err := getValidator().Struct(id); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid git identity: %s is %s", strings.ToLower(verrs[0].Field()), describeTag(verrs[0].Tag()))
		}
		return err
	}
	return nil
}

func describeTag(tag string) string {
	if tag == "email" {
		return "not a valid email address"
	}
	return "required"
}

// Installed reports whether git is on PATH.
func Installed(ctx context.Context, r runner.Runner) bool {
	_, err := r.Output(ctx, runner.Command("git", "--version"))
	return err == nil
}

// Configured reports whether user.name and user.email are both set.
func Configured(ctx context.Context, r runner.Runner) bool {
	for _, key := range []string{"user.name", "user.email"} {
		out, err := r.Output(ctx, runner.Command("git", "config", "--get", key))
		if err != nil || strings.TrimSpace(string(out)) == "" {
			return false
		}
	}
	return true
}

// AskIdentity prompts for a git name and email.
func AskIdentity(ctx context.Context, p prompt.Prompter) (Identity, error) {
	name, err := p.Input(ctx, prompt.Question{
		Name:    "git_name",
		Message: "Enter your Git username:",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("Git username cannot be empty")
			}
			return nil
		},
	})
	if err != nil {
		return Identity{}, err
	}
	email, err := p.Input(ctx, prompt.Question{
		Name:    "git_email",
		Message: "Enter your Git email:",
		Validate: func(s string) error {
			if getValidator().Var(s, "required,email") != nil {
				return errors.New("Please enter a valid email address")
			}
			return nil
		},
	})
	if err != nil {
		return Identity{}, err
	}
	return Identity{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}, nil
}

// Configure writes id to the global git config.
func Configure(ctx context.Context, r runner.Runner, id Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := r.Run(ctx, runner.Command("git", "config", "--global", "user.name", id.Name)); err != nil {
		return fmt.Errorf("setting git user.name: %w", err)
	}
	if err := r.Run(ctx, runner.Command("git", "config", "--global", "user.email", id.Email)); err != nil {
		return fmt.Errorf("setting git user.email: %w", err)
	}
	return nil
}

// Init creates a repository in dir.
func Init(ctx context.Context, r runner.Runner, dir string) error {
	if err := r.Run(ctx, runner.Command("git", "init").In(dir)); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// CommitTooling installs husky hooks into the project in dir.
func CommitTooling(ctx context.Context, r runner.Runner, dir string) error {
	if err := r.Run(ctx, runner.Command("npx", "husky-init").In(dir)); err != nil {
		return fmt.Errorf("husky-init: %w", err)
	}
	return nil
}

// GitCzInstalled reports whether the git-cz commit helper is on PATH.
func GitCzInstalled(ctx context.Context, r runner.Runner) bool {
	_, err := r.Output(ctx, runner.Command("git-cz", "--version"))
	return err == nil
}
