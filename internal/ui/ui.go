// Package ui writes the wizard's user-facing messages: colored status lines
// and a spinner for quiet background steps. Color and animation are only
// used when the output is an interactive terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Capabilities describes what the output stream supports.
type Capabilities struct {
	IsTTY   bool
	Color   bool
	Unicode bool
}

// Detect inspects w. Non-file writers are never terminals. NO_COLOR
// disables color and KICKSTART_ASCII=1 forces ASCII symbols.
func Detect(w io.Writer) Capabilities {
	f, ok := w.(*os.File)
	isTTY := ok && term.IsTerminal(int(f.Fd()))
	return Capabilities{
		IsTTY:   isTTY,
		Color:   isTTY && os.Getenv("NO_COLOR") == "",
		Unicode: isTTY && os.Getenv("KICKSTART_ASCII") != "1",
	}
}

// UI prints status messages.
type UI struct {
	out  io.Writer
	err  io.Writer
	caps Capabilities

	bold, info, success, warn, fail func(a ...interface{}) string

	mu      sync.Mutex
	spinner *spinner.Spinner
}

// New returns a UI writing messages to out and the spinner to errOut.
func New(out, errOut io.Writer) *UI {
	return NewWithCapabilities(out, errOut, Detect(out))
}

// NewWithCapabilities is New with explicit capabilities.
func NewWithCapabilities(out, errOut io.Writer, caps Capabilities) *UI {
	u := &UI{out: out, err: errOut, caps: caps}
	u.bold = sprint(caps, color.Bold)
	u.info = sprint(caps, color.FgBlue)
	u.success = sprint(caps, color.FgGreen)
	u.warn = sprint(caps, color.FgYellow)
	u.fail = sprint(caps, color.FgRed, color.Bold)
	return u
}

func sprint(caps Capabilities, attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if caps.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Out is the message stream.
func (u *UI) Out() io.Writer { return u.out }

// Capabilities returns the detected output capabilities.
func (u *UI) Capabilities() Capabilities { return u.caps }

func (u *UI) line(style func(a ...interface{}) string, format string, args ...any) {
	u.StopSpinner()
	fmt.Fprintln(u.out, style(fmt.Sprintf(format, args...)))
}

// Title prints a bold line.
func (u *UI) Title(format string, args ...any) { u.line(u.bold, format, args...) }

// Info prints a blue status line.
func (u *UI) Info(format string, args ...any) { u.line(u.info, format, args...) }

// Success prints a green status line.
func (u *UI) Success(format string, args ...any) { u.line(u.success, format, args...) }

// Warn prints a yellow status line.
func (u *UI) Warn(format string, args ...any) { u.line(u.warn, format, args...) }

// Error prints a bold red status line.
func (u *UI) Error(format string, args ...any) { u.line(u.fail, format, args...) }

// Plain prints an unstyled line.
func (u *UI) Plain(format string, args ...any) {
	u.line(func(a ...interface{}) string { return fmt.Sprint(a...) }, format, args...)
}

// Step runs fn behind a spinner labelled msg and reports the outcome. On
// non-terminals the label is printed as a plain line instead.
func (u *UI) Step(msg string, fn func() error) error {
	u.StartSpinner(msg)
	err := fn()
	u.StopSpinner()
	if err != nil {
		fmt.Fprintf(u.out, "%s %s\n", u.fail(u.mark(false)), msg)
		return err
	}
	fmt.Fprintf(u.out, "%s %s\n", u.success(u.mark(true)), msg)
	return nil
}

func (u *UI) mark(ok bool) string {
	switch {
	case ok && u.caps.Unicode:
		return "✓"
	case ok:
		return "[OK]"
	case u.caps.Unicode:
		return "✗"
	}
	return "[FAIL]"
}

// StartSpinner shows an animated spinner with msg on terminals.
func (u *UI) StartSpinner(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.caps.IsTTY {
		return
	}
	if u.spinner != nil {
		u.spinner.Stop()
	}
	set := 9
	if u.caps.Unicode {
		set = 14
	}
	u.spinner = spinner.New(spinner.CharSets[set], 100*time.Millisecond)
	u.spinner.Writer = u.err
	u.spinner.Suffix = " " + msg
	u.spinner.Start()
}

// StopSpinner stops a running spinner. It is safe to call when none runs.
func (u *UI) StopSpinner() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.spinner != nil {
		u.spinner.Stop()
		u.spinner = nil
	}
}
