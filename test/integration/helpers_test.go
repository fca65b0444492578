//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds the isolated directories of one test.
type testEnv struct {
	HomeDir string // HOME, so git and config writes stay sandboxed
	BinDir  string // fake tools, first on PATH
	WorkDir string // where projects are created
	LogFile string // every fake tool appends its argv here
}

// setupTestEnv creates temp directories and points HOME and PATH at them.
// PATH keeps the system directories so the fake scripts can use sh, mkdir
// and printf.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}

	env := &testEnv{
		HomeDir: t.TempDir(),
		BinDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "calls.log")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+"/usr/bin:/bin")
	t.Setenv("FAKE_LOG", env.LogFile)
	t.Setenv("npm_config_user_agent", "")
	return env
}

// fakeTool writes an executable script named name into the bin dir. body
// runs after the call is logged.
func (e *testEnv) fakeTool(t *testing.T, name, body string) {
	t.Helper()
	script := "#!/bin/sh\necho \"" + name + " $*\" >> \"$FAKE_LOG\"\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(e.BinDir, name), []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake %s: %v", name, err)
	}
}

// installFakes provides node, npm, npx, git and git-cz that behave enough
// like the real tools for a full wizard run.
func (e *testEnv) installFakes(t *testing.T) {
	t.Helper()
	e.fakeTool(t, "node", `echo v20.11.0`)
	e.fakeTool(t, "npm", `
case "$1" in
  info) echo '"4.9.0"' ;;
  install) mkdir -p node_modules ;;
  --version) echo 10.2.4 ;;
esac`)
	e.fakeTool(t, "npx", `
case "$1" in
  clear-npx-cache) ;;
  husky-init) mkdir -p .husky && echo "npm test" > .husky/pre-commit ;;
  create-next-app*)
    mkdir -p "$2"
    printf '{\n  "name": "%s",\n  "devDependencies": {}\n}\n' "$2" > "$2/package.json" ;;
  *) exit 1 ;;
esac`)
	e.fakeTool(t, "git", `
case "$1" in
  --version) echo "git version 2.43.0" ;;
  config)
    if [ "$2" = "--get" ]; then
      [ -f "$HOME/.gitconfig-$3" ] || exit 1
      cat "$HOME/.gitconfig-$3"
    else
      echo "$4" > "$HOME/.gitconfig-$3"
    fi ;;
  init) mkdir -p .git ;;
esac`)
	e.fakeTool(t, "git-cz", `exit 1`)
}

// calls returns the logged invocations.
func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if err != nil {
		t.Fatalf("reading call log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q", path, substr)
	}
}

func assertCalled(t *testing.T, calls []string, want string) {
	t.Helper()
	for _, c := range calls {
		if c == want {
			return
		}
	}
	t.Errorf("expected call %q, got:\n%s", want, strings.Join(calls, "\n"))
}
