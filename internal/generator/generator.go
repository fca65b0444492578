// Package generator turns a framework descriptor and the user's answers
// into the generator command line to run.
//
// Questions are declared in descriptors; how answers map onto a particular
// generator's flags is code, registered here per framework name. Frameworks
// without a registered strategy use Generic.
package generator

import (
	"context"
	"fmt"
	"sync"

	"github.com/kickstart-labs/kickstart/internal/command"
	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/prompt"
)

// Input is what every generator needs besides the answers.
type Input struct {
	Name           string
	PackageManager string
}

// Strategy appends a framework's options to b, which already holds the
// descriptor's base command.
type Strategy func(b *command.Builder, in Input, a *framework.Answers) error

var (
	mu         sync.RWMutex
	strategies = map[string]Strategy{}
)

// Register installs the strategy for a framework name, replacing any
// previous one.
func Register(name string, s Strategy) {
	mu.Lock()
	defer mu.Unlock()
	strategies[name] = s
}

// For returns the strategy registered for name, or Generic.
func For(name string) Strategy {
	mu.RLock()
	defer mu.RUnlock()
	if s, ok := strategies[name]; ok {
		return s
	}
	return Generic
}

// Result is a rendered generator invocation.
type Result struct {
	Command *command.Builder
	Answers *framework.Answers
}

// Build asks the descriptor's questions through p and renders the command.
// Answers already present in seed are not asked again; seed may be nil.
func Build(ctx context.Context, d *framework.Descriptor, in Input, p prompt.Prompter, seed *framework.Answers) (*Result, error) {
	base, err := d.BaseCommand(in.Name, in.PackageManager)
	if err != nil {
		return nil, err
	}

	a := seed
	if a == nil {
		a = framework.NewAnswers()
	}
	if d.TypeScript && !a.Has(framework.TypeScriptKey) {
		ts, err := p.Confirm(ctx, prompt.Question{
			Name:    framework.TypeScriptKey,
			Message: "Do you want to use TypeScript?",
			Default: false,
		})
		if err != nil {
			return nil, err
		}
		a.Set(framework.TypeScriptKey, ts)
	}
	if err := framework.Ask(ctx, p, d.Questions, a); err != nil {
		return nil, err
	}

	b := command.New(base)
	if err := For(d.Name)(b, in, a); err != nil {
		return nil, fmt.Errorf("rendering %s options: %w", d.DisplayName, err)
	}
	return &Result{Command: b, Answers: a}, nil
}

// Generic renders answers in order: true booleans as --key, false as
// --no-key, non-empty values as --key=value.
func Generic(b *command.Builder, _ Input, a *framework.Answers) error {
	for _, key := range a.Keys() {
		v, _ := a.Get(key)
		switch val := v.(type) {
		case bool:
			toggle(b, key, val)
		case []string:
			if len(val) > 0 {
				b.AliasValues(command.KV{Key: key, Value: val})
			}
		default:
			if s := a.String(key); s != "" {
				b.AliasValues(command.KV{Key: key, Value: s})
			}
		}
	}
	return nil
}

func toggle(b *command.Builder, key string, on bool) {
	if on {
		b.Alias(key)
		return
	}
	b.Alias("no-" + key)
}

func language(a *framework.Answers) string {
	if a.Bool(framework.TypeScriptKey) {
		return "ts"
	}
	return "js"
}
