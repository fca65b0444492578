package framework

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"

	"go.yaml.in/yaml/v3"
)

// TypeScriptKey is the answer key of the shared TypeScript question asked
// before a descriptor's own questions when Descriptor.TypeScript is set.
const TypeScriptKey = "typescript"

// Parse validates a descriptor document and decodes it. source names the
// document in error messages.
func Parse(data []byte, source string) (*Descriptor, error) {
	res, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if !res.Valid {
		return nil, &InvalidError{Source: source, Issues: res.Issues}
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	if issues := d.check(); len(issues) > 0 {
		return nil, &InvalidError{Source: source, Issues: issues}
	}
	d.Source = source
	return &d, nil
}

// check covers what the schema cannot express: references between
// questions, template syntax and regex syntax.
func (d *Descriptor) check() []ValidationIssue {
	var issues []ValidationIssue
	add := func(path, format string, args ...any) {
		issues = append(issues, ValidationIssue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	for _, pm := range d.PackageManagers {
		if _, ok := d.commandTemplate(pm); !ok {
			add("/command", "no command for package manager %q and no default", pm)
		}
	}
	for key, text := range d.Command {
		if _, err := template.New(key).Option("missingkey=error").Parse(text); err != nil {
			add("/command/"+key, "bad template: %v", err)
		}
	}

	seen := map[string]bool{}
	if d.TypeScript {
		seen[TypeScriptKey] = true
	}
	for i, q := range d.Questions {
		path := fmt.Sprintf("/questions/%d", i)
		if seen[q.Name] {
			add(path+"/name", "duplicate question %q", q.Name)
		}
		for _, c := range append(append([]Condition(nil), q.When...), q.WhenAny...) {
			if !seen[c.Key] {
				add(path, "condition refers to %q which is not asked earlier", c.Key)
			}
		}
		if q.DefaultBy != nil && !seen[q.DefaultBy.Key] {
			add(path+"/default_by", "default_by refers to %q which is not asked earlier", q.DefaultBy.Key)
		}
		if q.Pattern != "" {
			if _, err := regexp.Compile(q.Pattern); err != nil {
				add(path+"/pattern", "bad pattern: %v", err)
			}
		}
		if q.Type == TypeSelect && q.Default != nil && choiceIndex(q.Choices, q.Default) < 0 {
			add(path+"/default", "default %v is not one of the choices", q.Default)
		}
		seen[q.Name] = true
	}
	return issues
}

func (d *Descriptor) commandTemplate(pm string) (string, bool) {
	if t, ok := d.Command[pm]; ok {
		return t, true
	}
	t, ok := d.Command["default"]
	return t, ok
}

// BaseCommand renders the generator invocation for a project name and
// package manager, before any answer flags are appended.
func (d *Descriptor) BaseCommand(name, pm string) (string, error) {
	if !d.Supports(pm) {
		return "", fmt.Errorf("%s does not support %s", d.DisplayName, pm)
	}
	text, ok := d.commandTemplate(pm)
	if !ok {
		return "", fmt.Errorf("%s has no command for %s", d.DisplayName, pm)
	}
	tmpl, err := template.New(d.Name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %s command: %w", d.Name, err)
	}
	var buf bytes.Buffer
	data := struct{ Name, PackageManager string }{name, pm}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s command: %w", d.Name, err)
	}
	return buf.String(), nil
}

func choiceIndex(choices []Choice, v any) int {
	for i, c := range choices {
		if sameValue(c.Value, v) {
			return i
		}
	}
	return -1
}
