package framework

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/kickstart-labs/kickstart/internal/prompt"
)

// Ask walks questions in order, skipping those whose conditions do not hold,
// and records each answer in a. Answers already present in a are kept and
// not asked again.
func Ask(ctx context.Context, p prompt.Prompter, questions []Question, a *Answers) error {
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if a.Has(q.Name) || !q.Applies(a) {
			continue
		}
		v, err := askOne(ctx, p, q, a)
		if err != nil {
			return err
		}
		a.Set(q.Name, v)
	}
	return nil
}

func askOne(ctx context.Context, p prompt.Prompter, q Question, a *Answers) (any, error) {
	pq := q.toPrompt(a)
	switch q.Type {
	case TypeInput:
		return p.Input(ctx, pq)
	case TypePassword:
		return p.Password(ctx, pq)
	case TypeConfirm:
		return p.Confirm(ctx, pq)
	case TypeSelect:
		return p.Select(ctx, pq)
	case TypeMultiSelect:
		vals, err := p.MultiSelect(ctx, pq)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = fmt.Sprint(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("question %q: unsupported type %q", q.Name, q.Type)
}

func (q Question) toPrompt(a *Answers) prompt.Question {
	pq := prompt.Question{
		Name:    q.Name,
		Message: q.Message,
		Default: q.ResolveDefault(a),
	}
	for _, c := range q.Choices {
		pq.Choices = append(pq.Choices, prompt.Choice{Name: c.Name, Value: c.Value})
	}
	if q.Pattern != "" {
		re := regexp.MustCompile(q.Pattern)
		msg := q.PatternMessage
		if msg == "" {
			msg = fmt.Sprintf("answer must match %s", q.Pattern)
		}
		pq.Validate = func(s string) error {
			if !re.MatchString(s) {
				return errors.New(msg)
			}
			return nil
		}
	}
	return pq
}
