package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Terminal is a line-based Prompter.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
	// fd is set when input is an interactive terminal, enabling no-echo
	// password entry.
	fd int
}

// NewTerminal reads answers from r and writes prompts to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	t := &Terminal{reader: bufio.NewReader(r), out: w, fd: -1}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
	}
	return t
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) invalid(msg string) {
	fmt.Fprintf(t.out, ">> %s\n", msg)
}

// Input asks for free text.
func (t *Terminal) Input(ctx context.Context, q Question) (string, error) {
	def := defaultString(q.Default)
	for {
		if def != "" {
			fmt.Fprintf(t.out, "? %s (%s) ", q.Message, def)
		} else {
			fmt.Fprintf(t.out, "? %s ", q.Message)
		}
		line, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line == "" {
			line = def
		}
		if q.Validate != nil {
			if verr := q.Validate(line); verr != nil {
				t.invalid(verr.Error())
				continue
			}
		}
		return line, nil
	}
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(ctx context.Context, q Question) (bool, error) {
	def, _ := q.Default.(bool)
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.out, "? %s (%s) ", q.Message, hint)
		line, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		if v, ok := parseBool(line, def); ok {
			return v, nil
		}
		t.invalid("Please answer y or n")
	}
}

func parseBool(s string, def bool) (bool, bool) {
	switch strings.ToLower(s) {
	case "":
		return def, true
	case "y", "yes", "true":
		return true, true
	case "n", "no", "false":
		return false, true
	}
	return false, false
}

func (t *Terminal) menu(q Question, def int) {
	fmt.Fprintf(t.out, "? %s\n", q.Message)
	for i, c := range q.Choices {
		marker := " "
		if i == def {
			marker = "*"
		}
		fmt.Fprintf(t.out, " %s %d) %s\n", marker, i+1, c.Label())
	}
}

// Select asks the user to pick one choice by number or by name.
func (t *Terminal) Select(ctx context.Context, q Question) (any, error) {
	if len(q.Choices) == 0 {
		return nil, fmt.Errorf("question %q has no choices", q.Name)
	}
	def := defaultIndex(q.Choices, q.Default)
	if def < 0 {
		def = 0
	}
	t.menu(q, def)
	for {
		fmt.Fprintf(t.out, "  Enter number [1-%d] (%d): ", len(q.Choices), def+1)
		line, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return q.Choices[def].Value, nil
		}
		if idx, ok := pick(q.Choices, line); ok {
			return q.Choices[idx].Value, nil
		}
		t.invalid(fmt.Sprintf("Invalid selection %q: choose 1-%d", line, len(q.Choices)))
	}
}

// pick resolves an answer given as a 1-based number or a choice label.
func pick(choices []Choice, answer string) (int, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return n - 1, true
		}
		return 0, false
	}
	for i, c := range choices {
		if strings.EqualFold(c.Label(), answer) || strings.EqualFold(fmt.Sprint(c.Value), answer) {
			return i, true
		}
	}
	return 0, false
}

// MultiSelect asks for any number of choices as comma separated numbers.
func (t *Terminal) MultiSelect(ctx context.Context, q Question) ([]any, error) {
	t.menu(q, -1)
	for {
		fmt.Fprintf(t.out, "  Enter numbers separated by commas (none): ")
		line, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return defaultValues(q), nil
		}
		values, ok := pickMany(q.Choices, line)
		if ok {
			return values, nil
		}
		t.invalid(fmt.Sprintf("Invalid selection %q", line))
	}
}

func pickMany(choices []Choice, answer string) ([]any, bool) {
	seen := make(map[int]bool)
	values := []any{}
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, ok := pick(choices, part)
		if !ok {
			return nil, false
		}
		if !seen[idx] {
			seen[idx] = true
			values = append(values, choices[idx].Value)
		}
	}
	return values, true
}

func defaultValues(q Question) []any {
	switch d := q.Default.(type) {
	case []any:
		return d
	case []string:
		out := make([]any, len(d))
		for i, s := range d {
			out[i] = s
		}
		return out
	}
	return []any{}
}

// Password asks for a secret. On a real terminal the input is not echoed.
func (t *Terminal) Password(ctx context.Context, q Question) (string, error) {
	fmt.Fprintf(t.out, "? %s ", q.Message)
	if t.fd < 0 {
		return t.readLine(ctx)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	secret, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(secret), nil
}
