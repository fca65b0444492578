package framework

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Question types understood by Ask.
const (
	TypeInput       = "input"
	TypeConfirm     = "confirm"
	TypeSelect      = "select"
	TypeMultiSelect = "multiselect"
	TypePassword    = "password"
)

// Descriptor describes one supported framework generator.
type Descriptor struct {
	Name            string            `yaml:"name" json:"name"`
	DisplayName     string            `yaml:"display_name" json:"display_name"`
	Description     string            `yaml:"description,omitempty" json:"description,omitempty"`
	Order           int               `yaml:"order,omitempty" json:"order,omitempty"`
	PackageManagers []string          `yaml:"package_managers" json:"package_managers"`
	Command         map[string]string `yaml:"command" json:"command"`
	Node            string            `yaml:"node,omitempty" json:"node,omitempty"`
	Notice          string            `yaml:"notice,omitempty" json:"notice,omitempty"`
	TypeScript      bool              `yaml:"typescript,omitempty" json:"typescript,omitempty"`
	Requires        *Requirement      `yaml:"requires,omitempty" json:"requires,omitempty"`
	Questions       []Question        `yaml:"questions,omitempty" json:"questions,omitempty"`

	// Source is the file the descriptor was loaded from, or "embedded".
	Source string `yaml:"-" json:"-"`
}

// Requirement names a globally installed CLI the generator needs.
type Requirement struct {
	Binary  string `yaml:"binary" json:"binary"`
	Package string `yaml:"package" json:"package"`
}

// Supports reports whether the generator can run with the package manager.
func (d *Descriptor) Supports(pm string) bool {
	for _, p := range d.PackageManagers {
		if p == pm {
			return true
		}
	}
	return false
}

// Question is one declarative prompt in a descriptor.
type Question struct {
	Name           string      `yaml:"name" json:"name"`
	Type           string      `yaml:"type" json:"type"`
	Message        string      `yaml:"message" json:"message"`
	Choices        []Choice    `yaml:"choices,omitempty" json:"choices,omitempty"`
	Default        any         `yaml:"default,omitempty" json:"default,omitempty"`
	DefaultBy      *DefaultBy  `yaml:"default_by,omitempty" json:"default_by,omitempty"`
	Pattern        string      `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	PatternMessage string      `yaml:"pattern_message,omitempty" json:"pattern_message,omitempty"`
	When           []Condition `yaml:"when,omitempty" json:"when,omitempty"`
	WhenAny        []Condition `yaml:"when_any,omitempty" json:"when_any,omitempty"`
}

// DefaultBy picks a question's default from an earlier answer.
type DefaultBy struct {
	Key    string         `yaml:"key" json:"key"`
	Values map[string]any `yaml:"values" json:"values"`
}

// Choice is a select option. In YAML it is either a bare scalar, used as
// both label and value, or a {name, value} mapping.
type Choice struct {
	Name  string `yaml:"name" json:"name"`
	Value any    `yaml:"value" json:"value"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (c *Choice) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		c.Name = fmt.Sprint(v)
		c.Value = v
		return nil
	}
	type plain Choice
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Choice(p)
	return nil
}

// Condition gates a question on an earlier answer. Exactly one of Equals,
// NotEquals or NotEmpty is expected to be set.
type Condition struct {
	Key       string `yaml:"key" json:"key"`
	Equals    any    `yaml:"equals,omitempty" json:"equals,omitempty"`
	NotEquals any    `yaml:"not_equals,omitempty" json:"not_equals,omitempty"`
	NotEmpty  bool   `yaml:"not_empty,omitempty" json:"not_empty,omitempty"`
}

// Holds evaluates the condition against the answers collected so far. A
// missing answer never satisfies Equals or NotEmpty.
func (c Condition) Holds(a *Answers) bool {
	v, ok := a.Get(c.Key)
	switch {
	case c.Equals != nil:
		return ok && sameValue(v, c.Equals)
	case c.NotEquals != nil:
		return !ok || !sameValue(v, c.NotEquals)
	case c.NotEmpty:
		return ok && !isEmpty(v)
	}
	return ok
}

// Applies reports whether q should be asked given the answers so far.
func (q Question) Applies(a *Answers) bool {
	for _, c := range q.When {
		if !c.Holds(a) {
			return false
		}
	}
	if len(q.WhenAny) == 0 {
		return true
	}
	for _, c := range q.WhenAny {
		if c.Holds(a) {
			return true
		}
	}
	return false
}

// ResolveDefault returns the question default, preferring a DefaultBy match.
func (q Question) ResolveDefault(a *Answers) any {
	if q.DefaultBy != nil {
		if v, ok := a.Get(q.DefaultBy.Key); ok {
			if d, ok := q.DefaultBy.Values[fmt.Sprint(v)]; ok {
				return d
			}
		}
	}
	return q.Default
}

func sameValue(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
