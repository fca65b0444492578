package prompt

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Preset answers questions from a map of known answers keyed by question
// name. Questions without a preset answer go to Fallback, or take their
// default when AcceptDefaults is set.
type Preset struct {
	Answers        map[string]any
	Fallback       Prompter
	AcceptDefaults bool
}

// lookup finds the preset answer for q. An exact key wins, then the folded
// key (see FoldKey), then any key that folds to the same name, checked in
// sorted order.
func (p *Preset) lookup(q Question) (any, bool) {
	if v, ok := p.Answers[q.Name]; ok {
		return v, true
	}
	want := FoldKey(q.Name)
	if v, ok := p.Answers[want]; ok {
		return v, true
	}
	keys := make([]string, 0, len(p.Answers))
	for k := range p.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if FoldKey(k) == want {
			return p.Answers[k], true
		}
	}
	return nil, false
}

// FoldKey normalises an answer key: lowercase, with '-' written as '_', so
// environment-sourced keys like "src_dir" answer "src-dir".
func FoldKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "-", "_")
}

func (p *Preset) unanswered(q Question) error {
	return fmt.Errorf("no answer for %q (%s) and no interactive input available", q.Name, q.Message)
}

// Input implements Prompter.
func (p *Preset) Input(ctx context.Context, q Question) (string, error) {
	if v, ok := p.lookup(q); ok {
		s := fmt.Sprint(v)
		if q.Validate != nil {
			if err := q.Validate(s); err != nil {
				return "", fmt.Errorf("preset answer for %q: %w", q.Name, err)
			}
		}
		return s, nil
	}
	if p.AcceptDefaults {
		s := defaultString(q.Default)
		if q.Validate != nil {
			if err := q.Validate(s); err != nil {
				return "", fmt.Errorf("default for %q: %w", q.Name, err)
			}
		}
		return s, nil
	}
	if p.Fallback == nil {
		return "", p.unanswered(q)
	}
	return p.Fallback.Input(ctx, q)
}

// Password implements Prompter.
func (p *Preset) Password(ctx context.Context, q Question) (string, error) {
	if v, ok := p.lookup(q); ok {
		return fmt.Sprint(v), nil
	}
	if p.AcceptDefaults {
		return defaultString(q.Default), nil
	}
	if p.Fallback == nil {
		return "", p.unanswered(q)
	}
	return p.Fallback.Password(ctx, q)
}

// Confirm implements Prompter.
func (p *Preset) Confirm(ctx context.Context, q Question) (bool, error) {
	if v, ok := p.lookup(q); ok {
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return false, fmt.Errorf("preset answer for %q: %q is not a boolean", q.Name, b)
			}
			return parsed, nil
		}
		return false, fmt.Errorf("preset answer for %q: %v is not a boolean", q.Name, v)
	}
	if !p.AcceptDefaults {
		if p.Fallback == nil {
			return false, p.unanswered(q)
		}
		return p.Fallback.Confirm(ctx, q)
	}
	b, _ := q.Default.(bool)
	return b, nil
}

// Select implements Prompter. Preset answers match a choice value first,
// then a choice label.
func (p *Preset) Select(ctx context.Context, q Question) (any, error) {
	if v, ok := p.lookup(q); ok {
		if i := matchChoice(q.Choices, v); i >= 0 {
			return q.Choices[i].Value, nil
		}
		return nil, fmt.Errorf("preset answer for %q: %v is not one of %s", q.Name, v, labels(q.Choices))
	}
	if !p.AcceptDefaults {
		if p.Fallback == nil {
			return nil, p.unanswered(q)
		}
		return p.Fallback.Select(ctx, q)
	}
	if len(q.Choices) == 0 {
		return nil, fmt.Errorf("question %q has no choices", q.Name)
	}
	if i := defaultIndex(q.Choices, q.Default); i >= 0 {
		return q.Choices[i].Value, nil
	}
	return q.Choices[0].Value, nil
}

// MultiSelect implements Prompter.
func (p *Preset) MultiSelect(ctx context.Context, q Question) ([]any, error) {
	if v, ok := p.lookup(q); ok {
		var parts []string
		switch list := v.(type) {
		case []any:
			for _, item := range list {
				parts = append(parts, fmt.Sprint(item))
			}
		case []string:
			parts = list
		default:
			parts = strings.Split(fmt.Sprint(v), ",")
		}
		values := []any{}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			i := matchChoice(q.Choices, part)
			if i < 0 {
				return nil, fmt.Errorf("preset answer for %q: %s is not one of %s", q.Name, part, labels(q.Choices))
			}
			values = append(values, q.Choices[i].Value)
		}
		return values, nil
	}
	if !p.AcceptDefaults {
		if p.Fallback == nil {
			return nil, p.unanswered(q)
		}
		return p.Fallback.MultiSelect(ctx, q)
	}
	return defaultValues(q), nil
}

// matchChoice finds the choice whose value, or failing that label, equals v.
func matchChoice(choices []Choice, v any) int {
	if i := defaultIndex(choices, v); i >= 0 {
		return i
	}
	want := fmt.Sprint(v)
	for i, c := range choices {
		if strings.EqualFold(c.Label(), want) {
			return i
		}
	}
	return -1
}

func labels(choices []Choice) string {
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = fmt.Sprint(c.Value)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
