package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kickstart-labs/kickstart/internal/config"
	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/pkgmanager"
	"github.com/kickstart-labs/kickstart/internal/prompt"
	"github.com/kickstart-labs/kickstart/internal/runner"
	"github.com/kickstart-labs/kickstart/internal/ui"
	"github.com/kickstart-labs/kickstart/internal/wizard"
)

func plainUI(buf *bytes.Buffer) *ui.UI {
	return ui.NewWithCapabilities(buf, buf, ui.Capabilities{})
}

func TestResolveOptions(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		settings config.Settings
		check    func(t *testing.T, o wizard.Options)
	}{
		{
			name: "positional name",
			args: []string{"my-app"},
			check: func(t *testing.T, o wizard.Options) {
				assert.Equal(t, "my-app", o.Name)
			},
		},
		{
			name: "name flag wins over positional",
			args: []string{"--name", "flagged", "positional"},
			check: func(t *testing.T, o wizard.Options) {
				assert.Equal(t, "flagged", o.Name)
			},
		},
		{
			name:     "config applies when flags are unset",
			settings: config.Settings{SkipGit: true, SkipInstall: true},
			check: func(t *testing.T, o wizard.Options) {
				assert.True(t, o.SkipGit)
				assert.True(t, o.SkipInstall)
				assert.False(t, o.SkipCacheClear)
			},
		},
		{
			name:     "explicit flag overrides config",
			args:     []string{"--skip-git=false", "--skip-cache-clear"},
			settings: config.Settings{SkipGit: true},
			check: func(t *testing.T, o wizard.Options) {
				assert.False(t, o.SkipGit)
				assert.True(t, o.SkipCacheClear)
			},
		},
		{
			name:     "config package manager is a preference, not a forced answer",
			settings: config.Settings{PackageManager: "pnpm"},
			check: func(t *testing.T, o wizard.Options) {
				assert.Equal(t, pkgmanager.PNPM, o.PreferredPackageManager)
				assert.Empty(t, o.PackageManager)
			},
		},
		{
			name: "package manager and framework",
			args: []string{"-p", "pnpm", "-f", "vuejs", "--dry-run"},
			check: func(t *testing.T, o wizard.Options) {
				assert.Equal(t, pkgmanager.PNPM, o.PackageManager)
				assert.Equal(t, "vuejs", o.Framework)
				assert.True(t, o.DryRun)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o newOptions
			fs := pflag.NewFlagSet("new", pflag.ContinueOnError)
			addNewFlags(fs, &o)
			require.NoError(t, fs.Parse(tt.args))
			tt.check(t, resolveOptions(fs, o, &tt.settings, fs.Args()))
		})
	}
}

func TestPackageManagerFlagRejectsUnknown(t *testing.T) {
	var o newOptions
	fs := pflag.NewFlagSet("new", pflag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	addNewFlags(fs, &o)
	assert.Error(t, fs.Parse([]string{"--package-manager", "bun"}))
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"cancelled prompt", fmt.Errorf("asking: %w", prompt.ErrCancelled), "Process cancelled."},
		{"interrupted", context.Canceled, "Process cancelled."},
		{"wizard failure", &wizard.Error{Message: "Unable to run the command. Please try again.", Err: errors.New("exit 1")}, "Unable to run the command. Please try again.\n"},
		{"anything else", errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(plainUI(&buf), tt.err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestDiagnose(t *testing.T) {
	reg, err := framework.Builtin()
	require.NoError(t, err)

	rec := runner.NewRecorder()
	rec.On("node --version", runner.Response{Output: []byte("v18.5.0\n")})
	rec.On("npm --version", runner.Response{Output: []byte("9.8.1\n")})
	rec.On("yarn --version", runner.Response{Output: []byte("1.22.19\n")})
	rec.On("git --version", runner.Response{Output: []byte("git version 2.43.0\n")})
	rec.On("git config --get user.name", runner.Response{Output: []byte("Ada\n")})
	rec.On("git config --get user.email", runner.Response{Output: []byte("ada@example.com\n")})
	rec.On("git-cz --version", runner.Response{Err: errors.New("not found")})
	rec.On("sails --version", runner.Response{Output: []byte("1.5.9\n")})

	byName := map[string]check{}
	for _, c := range diagnose(context.Background(), rec, reg) {
		byName[c.Name] = c
	}

	assert.Equal(t, check{Name: "node", Detail: "18.5.0"}, byName["node"])
	assert.Equal(t, statusOK, byName["npm"].Status)
	assert.Equal(t, statusOK, byName["yarn"].Status)
	assert.Equal(t, statusWarn, byName["pnpm"].Status)
	assert.Equal(t, check{Name: "git", Detail: "configured"}, byName["git"])
	assert.Equal(t, statusWarn, byName["git-cz"].Status)
	assert.Equal(t, statusWarn, byName["nest"].Status)
	assert.Contains(t, byName["nest"].Detail, "@nestjs/cli")
	assert.Equal(t, statusOK, byName["sails"].Status)

	// angular needs >=18.13.0 and vue >=18.3.0.
	assert.Equal(t, statusWarn, byName["angular"].Status)
	assert.NotContains(t, byName, "vuejs")
}

func TestDiagnoseMissingNode(t *testing.T) {
	reg, err := framework.Builtin()
	require.NoError(t, err)
	rec := runner.NewRecorder()
	rec.On("node --version", runner.Response{Err: errors.New("not found")})
	rec.On("git --version", runner.Response{Err: errors.New("not found")})

	checks := diagnose(context.Background(), rec, reg)
	var buf bytes.Buffer
	failed := report(plainUI(&buf), checks)

	// node, npm and git.
	assert.Equal(t, 3, failed)
	assert.Contains(t, buf.String(), "missing node")
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`name: remix
display_name: Remix
package_managers: [npm]
command:
  default: "npx create-remix@latest {{.Name}}"
questions:
  - name: install
    type: confirm
    message: Install dependencies?
    default: true
`), 0o644))
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`name: broken
display_name: Broken
command:
  default: "npx broken {{.Name}}"
questions:
  - name: style
    type: select
    message: Style?
    when:
      key: missing
      equals: true
`), 0o644))

	var buf bytes.Buffer
	n, err := validateFiles(plainUI(&buf), []string{valid, invalid})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), valid+": valid")
	assert.Contains(t, buf.String(), invalid+": invalid")
	assert.Contains(t, buf.String(), "  - ")

	_, err = validateFiles(plainUI(&buf), []string{filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestPrintFrameworks(t *testing.T) {
	reg, err := framework.Builtin()
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, printFrameworksTable(&table, reg.All()))
	assert.Contains(t, table.String(), "NAME")
	assert.Regexp(t, `nextjs\s+Next\.js\s+npm, yarn, pnpm\s+-`, table.String())
	assert.Regexp(t, `angular\s+Angular\s+npm, yarn, pnpm\s+>=18\.13\.0`, table.String())

	var raw bytes.Buffer
	require.NoError(t, printFrameworksJSON(&raw, reg.All()))
	var entries []frameworkEntry
	require.NoError(t, json.Unmarshal(raw.Bytes(), &entries))
	require.Len(t, entries, 10)
	assert.Equal(t, "adonisjs", entries[0].Name)
	assert.Equal(t, "sailsjs", entries[9].Name)
}

func TestWriteVersion(t *testing.T) {
	v := versionInfo{Version: "1.2.0", Commit: "abc123", Date: "2026-01-02", Repo: "https://github.com/kickstart-labs/kickstart"}

	var short bytes.Buffer
	require.NoError(t, writeVersion(&short, "short", v))
	assert.Equal(t, "1.2.0\n", short.String())

	var text bytes.Buffer
	require.NoError(t, writeVersion(&text, "text", v))
	assert.Equal(t, "kickstart 1.2.0 (commit abc123, built 2026-01-02)\nhttps://github.com/kickstart-labs/kickstart\n", text.String())

	var raw bytes.Buffer
	require.NoError(t, writeVersion(&raw, "json", v))
	var decoded versionInfo
	require.NoError(t, json.Unmarshal(raw.Bytes(), &decoded))
	assert.Equal(t, v, decoded)

	assert.Error(t, writeVersion(&raw, "yaml", v))
}
