package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerm(input string) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	return NewTerminal(strings.NewReader(input), &out), &out
}

func TestInputUsesDefaultOnEmptyLine(t *testing.T) {
	tm, out := newTerm("\n")
	got, err := tm.Input(context.Background(), Question{Name: "alias", Message: "Import alias?", Default: "@/*"})
	require.NoError(t, err)
	assert.Equal(t, "@/*", got)
	assert.Contains(t, out.String(), "? Import alias? (@/*)")
}

func TestInputRepromptsUntilValid(t *testing.T) {
	tm, out := newTerm("\nMy App\nmy-app\n")
	q := Question{
		Name:    "projectName",
		Message: "Enter the name of your project:",
		Validate: func(s string) error {
			if s == "" {
				return errors.New("Project name cannot be empty")
			}
			if strings.ToLower(s) != s {
				return errors.New("lowercase only")
			}
			return nil
		},
	}
	got, err := tm.Input(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "my-app", got)
	assert.Contains(t, out.String(), ">> Project name cannot be empty")
	assert.Contains(t, out.String(), ">> lowercase only")
}

func TestInputAcceptsFinalLineWithoutNewline(t *testing.T) {
	tm, _ := newTerm("web")
	got, err := tm.Input(context.Background(), Question{Message: "Name"})
	require.NoError(t, err)
	assert.Equal(t, "web", got)
}

func TestEOFCancels(t *testing.T) {
	tm, _ := newTerm("")
	_, err := tm.Input(context.Background(), Question{Message: "Name"})
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = tm.Select(context.Background(), Question{Message: "Pick", Choices: Strings("a")})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestContextCancelled(t *testing.T) {
	tm, _ := newTerm("x\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tm.Input(ctx, Question{Message: "Name"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", false, false},
		{"\n", true, true},
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"maybe\nno\n", true, false},
	}
	for _, tt := range tests {
		tm, _ := newTerm(tt.input)
		got, err := tm.Confirm(context.Background(), Question{Message: "Use TypeScript?", Default: tt.def})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestConfirmHint(t *testing.T) {
	tm, out := newTerm("\n")
	_, err := tm.Confirm(context.Background(), Question{Message: "Enable eslint?", Default: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(Y/n)")
}

func TestSelect(t *testing.T) {
	choices := []Choice{{Name: "Quickstart (recommended)", Value: true}, {Name: "Custom (manual settings)", Value: false}}

	tm, out := newTerm("2\n")
	got, err := tm.Select(context.Background(), Question{Message: "Choose your installation type", Choices: choices})
	require.NoError(t, err)
	assert.Equal(t, false, got)
	assert.Contains(t, out.String(), "1) Quickstart (recommended)")

	tm, _ = newTerm("\n")
	got, err = tm.Select(context.Background(), Question{Message: "Database client", Choices: Strings("sqlite", "postgres", "mysql"), Default: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", got)

	tm, _ = newTerm("MySQL\n")
	got, err = tm.Select(context.Background(), Question{Message: "Database client", Choices: Strings("sqlite", "postgres", "mysql")})
	require.NoError(t, err)
	assert.Equal(t, "mysql", got)
}

func TestSelectRejectsOutOfRange(t *testing.T) {
	tm, out := newTerm("9\n1\n")
	got, err := tm.Select(context.Background(), Question{Message: "Pick", Choices: Strings("npm", "yarn")})
	require.NoError(t, err)
	assert.Equal(t, "npm", got)
	assert.Contains(t, out.String(), `Invalid selection "9"`)
}

func TestSelectWithoutChoices(t *testing.T) {
	tm, _ := newTerm("1\n")
	_, err := tm.Select(context.Background(), Question{Name: "empty", Message: "Pick"})
	require.Error(t, err)
}

func TestMultiSelect(t *testing.T) {
	choices := Strings("eslint", "prettier", "stylelint")

	tm, _ := newTerm("1, 3,1\n")
	got, err := tm.MultiSelect(context.Background(), Question{Message: "Linting tools:", Choices: choices})
	require.NoError(t, err)
	assert.Equal(t, []any{"eslint", "stylelint"}, got)

	tm, _ = newTerm("\n")
	got, err = tm.MultiSelect(context.Background(), Question{Message: "Linting tools:", Choices: choices})
	require.NoError(t, err)
	assert.Empty(t, got)

	tm, out := newTerm("4\n2\n")
	got, err = tm.MultiSelect(context.Background(), Question{Message: "Linting tools:", Choices: choices})
	require.NoError(t, err)
	assert.Equal(t, []any{"prettier"}, got)
	assert.Contains(t, out.String(), "Invalid selection")
}

func TestPasswordFromPipe(t *testing.T) {
	tm, _ := newTerm("s3cret\n")
	got, err := tm.Password(context.Background(), Question{Message: "Database password"})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}
