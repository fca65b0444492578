package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Cmd describes a single external program invocation.
type Cmd struct {
	Name string
	Args []string
	Dir  string   // working directory; empty means the current one
	Env  []string // extra KEY=VALUE pairs appended to the process environment
}

// Command is a convenience constructor for Cmd.
func Command(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// In returns a copy of c that runs in dir.
func (c Cmd) In(dir string) Cmd {
	c.Dir = dir
	return c
}

// String renders the command line for messages and logs.
func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external programs.
type Runner interface {
	// Run executes c with stdio attached to the runner's streams.
	Run(ctx context.Context, c Cmd) error
	// Output executes c and returns its stdout. Stderr is discarded.
	Output(ctx context.Context, c Cmd) ([]byte, error)
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Cmd  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Cmd, e.Code)
}

// Exec runs commands with os/exec.
type Exec struct {
	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewExec returns an Exec bound to the process streams.
func NewExec(logger *slog.Logger) *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Logger: logger}
}

func (e *Exec) command(ctx context.Context, c Cmd) (*exec.Cmd, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", c.Name, err)
	}
	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd, nil
}

func (e *Exec) log() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Run executes c, streaming its output.
func (e *Exec) Run(ctx context.Context, c Cmd) error {
	cmd, err := e.command(ctx, c)
	if err != nil {
		return err
	}
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	e.log().Debug("running command", "cmd", c.String(), "dir", c.Dir)
	return wrapExit(c, cmd.Run())
}

// Output executes c and captures stdout.
func (e *Exec) Output(ctx context.Context, c Cmd) ([]byte, error) {
	cmd, err := e.command(ctx, c)
	if err != nil {
		return nil, err
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	e.log().Debug("capturing command output", "cmd", c.String(), "dir", c.Dir)
	if err := wrapExit(c, cmd.Run()); err != nil {
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

func wrapExit(c Cmd, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Cmd: c.String(), Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("executing %s: %w", c.String(), err)
}
