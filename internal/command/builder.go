// Package command builds generator command lines from a base invocation and
// the options a user picked. Long options ("aliases") render as --name and
// short options ("flags") as -name, optionally with =value.
package command

import (
	"fmt"
	"strings"
)

// KV is a single option with an optional value. A nil Value renders the
// bare option name.
type KV struct {
	Key   string
	Value any
}

// Builder accumulates the tokens of a command line.
type Builder struct {
	base []string
	opts []string
}

// New starts a builder from a base invocation such as
// "npx create-next-app@latest my-app --use-npm".
func New(base string) *Builder {
	return &Builder{base: strings.Fields(base)}
}

// Alias appends --item for each item.
func (b *Builder) Alias(items ...string) *Builder {
	for _, it := range items {
		b.opts = append(b.opts, "--"+it)
	}
	return b
}

// Flag appends -item for each item.
func (b *Builder) Flag(items ...string) *Builder {
	for _, it := range items {
		b.opts = append(b.opts, "-"+it)
	}
	return b
}

// AliasValues appends --key=value (or --key for nil values) in order.
func (b *Builder) AliasValues(kvs ...KV) *Builder {
	return b.values("--", kvs)
}

// FlagValues appends -key=value (or -key for nil values) in order.
func (b *Builder) FlagValues(kvs ...KV) *Builder {
	return b.values("-", kvs)
}

func (b *Builder) values(prefix string, kvs []KV) *Builder {
	for _, kv := range kvs {
		if kv.Value == nil {
			b.opts = append(b.opts, prefix+kv.Key)
			continue
		}
		b.opts = append(b.opts, prefix+kv.Key+"="+Format(kv.Value))
	}
	return b
}

// Format renders an option value the way generators expect it.
func Format(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = Format(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}

// Tokens returns every token of the command line, base first.
func (b *Builder) Tokens() []string {
	out := make([]string, 0, len(b.base)+len(b.opts))
	out = append(out, b.base...)
	return append(out, b.opts...)
}

// Options returns the appended tokens only.
func (b *Builder) Options() []string {
	return append([]string(nil), b.opts...)
}

// Args splits the command line into the program name and its arguments for
// direct execution. No shell is involved.
func (b *Builder) Args() (string, []string) {
	tokens := b.Tokens()
	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[0], tokens[1:]
}

// String renders the command line with POSIX shell quoting where needed, so
// it can be copied into a terminal.
func (b *Builder) String() string {
	tokens := b.Tokens()
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = Quote(t)
	}
	return strings.Join(quoted, " ")
}

const shellSpecial = " \t\n\"'`$\\|&;<>()*?[]#~!{}"

// Quote wraps s in single quotes when it contains shell metacharacters.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
