// Package scaffold writes the commit-message tooling into a freshly
// generated project: the husky commit-msg hook, the validator script it
// runs, and the git-cz changelog configuration.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/kickstart-labs/kickstart/internal/platform"
)

//go:embed all:templates
var templateFS embed.FS

const templatesRoot = "templates"

// CommitType is one conventional-commit type offered by git-cz.
type CommitType struct {
	Name        string
	Emoji       string
	Description string
}

// DefaultCommitTypes mirrors git-cz's default list.
var DefaultCommitTypes = []CommitType{
	{"chore", "🤖", "Build process or auxiliary tool changes"},
	{"ci", "🎡", "CI related changes"},
	{"docs", "✏️", "Documentation only changes"},
	{"feat", "🎸", "A new feature"},
	{"fix", "🐛", "A bug fix"},
	{"perf", "⚡️", "A code change that improves performance"},
	{"refactor", "💡", "A code change that neither fixes a bug or adds a feature"},
	{"release", "🏹", "Create a release commit"},
	{"style", "💄", "Markup, white-space, formatting, missing semi-colons..."},
	{"test", "💍", "Adding missing tests"},
}

// Data holds the template variables.
type Data struct {
	Name      string
	Types     []CommitType
	MinLength int
	MaxLength int
}

// NewData returns template data for a project with git-cz defaults.
func NewData(name string) *Data {
	return &Data{Name: name, Types: DefaultCommitTypes, MinLength: 3, MaxLength: 64}
}

// Result lists the files CopyTemplates wrote, relative to the project.
type Result struct {
	ProjectPath string
	Files       []string
	Removed     []string
}

// executable files get execute bits after writing.
var executable = map[string]bool{
	".husky/commit-msg": true,
}

// CopyTemplates removes husky's default pre-commit hook and renders the
// commit tooling templates into projectPath.
func CopyTemplates(projectPath string, data *Data) (*Result, error) {
	if data == nil {
		data = NewData(filepath.Base(projectPath))
	}
	result := &Result{ProjectPath: projectPath}

	preCommit := filepath.Join(projectPath, ".husky", "pre-commit")
	if err := os.Remove(preCommit); err == nil {
		result.Removed = append(result.Removed, ".husky/pre-commit")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("removing default pre-commit hook: %w", err)
	}

	err := fs.WalkDir(templateFS, templatesRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := strings.TrimSuffix(strings.TrimPrefix(p, templatesRoot+"/"), ".tmpl")
		out, err := render(p, data)
		if err != nil {
			return err
		}

		dest := filepath.Join(projectPath, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path.Dir(rel), err)
		}
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
		if executable[rel] {
			if err := platform.MakeExecutable(dest); err != nil {
				return fmt.Errorf("making %s executable: %w", rel, err)
			}
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func render(name string, data *Data) ([]byte, error) {
	src, err := fs.ReadFile(templateFS, name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(path.Base(name)).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Files returns the project-relative paths CopyTemplates writes.
func Files() []string {
	var files []string
	_ = fs.WalkDir(templateFS, templatesRoot, func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files = append(files, strings.TrimSuffix(strings.TrimPrefix(p, templatesRoot+"/"), ".tmpl"))
		}
		return nil
	})
	return files
}
