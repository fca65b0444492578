// Package prompt asks the user questions on a terminal. It renders numbered
// menus for list questions, y/N confirms, and free-text input, re-asking
// until the answer passes validation.
package prompt

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelled is returned when the input stream closes before an answer
// is given (Ctrl-D, or a closed pipe).
var ErrCancelled = errors.New("process cancelled")

// Choice is one entry of a list question.
type Choice struct {
	Name  string
	Value any
}

// Label returns the text shown in menus.
func (c Choice) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprint(c.Value)
}

// Question describes a single prompt.
type Question struct {
	Name    string
	Message string
	Default any
	Choices []Choice
	// Validate checks free-text answers. A non-nil error is shown to the
	// user and the question is asked again.
	Validate func(string) error
}

// Prompter asks questions.
type Prompter interface {
	Input(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question) (bool, error)
	Select(ctx context.Context, q Question) (any, error)
	MultiSelect(ctx context.Context, q Question) ([]any, error)
	Password(ctx context.Context, q Question) (string, error)
}

// Strings turns plain values into choices named after themselves.
func Strings(values ...string) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Name: v, Value: v}
	}
	return out
}

// defaultIndex returns the index of the choice whose value equals def, or -1.
func defaultIndex(choices []Choice, def any) int {
	if def == nil {
		return -1
	}
	want := fmt.Sprint(def)
	for i, c := range choices {
		if fmt.Sprint(c.Value) == want {
			return i
		}
	}
	return -1
}

// defaultString renders a default for free-text questions.
func defaultString(def any) string {
	if def == nil {
		return ""
	}
	return fmt.Sprint(def)
}
