// Package preset loads non-interactive wizard answers from a JSON file and
// the environment.
//
// A preset file looks like:
//
//	{
//	  "name": "my-app",
//	  "framework": "nextjs",
//	  "package_manager": "pnpm",
//	  "answers": {"typescript": true, "tailwind": false}
//	}
//
// KICKSTART_ANSWER_<QUESTION> variables add or override answers, e.g.
// KICKSTART_ANSWER_SRC_DIR=false answers the "src-dir" question. Answer keys
// are stored folded (lowercase, '-' as '_').
package preset

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kickstart-labs/kickstart/internal/branding"
	"github.com/kickstart-labs/kickstart/internal/prompt"
)

// Preset is a set of pre-answered wizard questions.
type Preset struct {
	Name           string         `koanf:"name"`
	Framework      string         `koanf:"framework"`
	PackageManager string         `koanf:"package_manager" validate:"omitempty,oneof=npm yarn pnpm"`
	Answers        map[string]any `koanf:"answers"`
}

func answerPrefix() string {
	return branding.EnvVar("ANSWER_")
}

// Load reads path (when non-empty) and then the answer environment
// variables. Environment values win over the file.
func Load(path string) (*Preset, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("preset file: %w", err)
		}
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load preset %s: %w", path, err)
		}
		if err := foldAnswers(k); err != nil {
			return nil, err
		}
	}

	prefix := answerPrefix()
	if err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return "answers." + prompt.FoldKey(strings.TrimPrefix(s, prefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load answers from environment: %w", err)
	}

	var p Preset
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset: %w", err)
	}
	if err := validator.New().Struct(p); err != nil {
		return nil, fmt.Errorf("preset validation failed: package_manager must be one of npm, yarn, pnpm (got %q)", p.PackageManager)
	}
	if p.Answers == nil {
		p.Answers = map[string]any{}
	}
	return &p, nil
}

// foldAnswers rewrites the file's answer keys with prompt.FoldKey so that an
// environment answer for the same question replaces the file value.
func foldAnswers(k *koanf.Koanf) error {
	raw, ok := k.Get("answers").(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	// Already-folded spellings sort after '-' variants and win.
	sort.Strings(keys)

	k.Delete("answers")
	for _, key := range keys {
		if err := k.Set("answers."+prompt.FoldKey(key), raw[key]); err != nil {
			return fmt.Errorf("preset answer %q: %w", key, err)
		}
	}
	return nil
}

// Empty reports whether the preset answers nothing at all.
func (p *Preset) Empty() bool {
	return p == nil || (p.Name == "" && p.Framework == "" && p.PackageManager == "" && len(p.Answers) == 0)
}

// Prompter answers from the preset, then fallback. With acceptDefaults
// unanswered questions take their defaults instead of reaching fallback.
func (p *Preset) Prompter(fallback prompt.Prompter, acceptDefaults bool) prompt.Prompter {
	answers := map[string]any{}
	if p != nil {
		for k, v := range p.Answers {
			answers[k] = v
		}
		if p.Name != "" {
			answers["project_name"] = p.Name
		}
		if p.Framework != "" {
			answers["framework"] = p.Framework
		}
		if p.PackageManager != "" {
			answers["package_manager"] = p.PackageManager
		}
	}
	return &prompt.Preset{Answers: answers, Fallback: fallback, AcceptDefaults: acceptDefaults}
}
