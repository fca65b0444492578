package pkgmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kickstart-labs/kickstart/internal/runner"
)

func TestLatestVersion(t *testing.T) {
	tests := []struct {
		name   string
		pm     PackageManager
		output string
		want   string
	}{
		{"npm plain string", NPM, "\"4.0.3\"\n", "4.0.3"},
		{"pnpm plain string", PNPM, "\"4.0.3\"", "4.0.3"},
		{"yarn envelope", Yarn, `{"type":"inspect","data":"4.0.3"}`, "4.0.3"},
		{"prerelease", NPM, `"5.0.0-beta.1"`, "5.0.0-beta.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runner.NewRecorder()
			rec.On(string(tt.pm)+" info", runner.Response{Output: []byte(tt.output)})

			v, err := LatestVersion(context.Background(), rec, tt.pm, "git-cz", "/work/app")
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, []string{string(tt.pm) + " info git-cz version --json"}, rec.Lines())
			assert.Equal(t, "/work/app", rec.Commands[0].Dir)
		})
	}
}

func TestLatestVersion_FallsBackToDirectInstall(t *testing.T) {
	tests := []struct {
		name string
		resp runner.Response
	}{
		{"lookup fails", runner.Response{Err: errors.New("network down")}},
		{"garbage output", runner.Response{Output: []byte("not json")}},
		{"not semver", runner.Response{Output: []byte(`"latest"`)}},
		{"empty envelope", runner.Response{Output: []byte(`{"data":null}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runner.NewRecorder()
			rec.On("yarn info", tt.resp)

			v, err := LatestVersion(context.Background(), rec, Yarn, "git-cz", "/work/app")
			require.NoError(t, err)
			assert.Empty(t, v)
			assert.Equal(t, []string{"yarn info git-cz version --json", "yarn add git-cz"}, rec.Lines())
		})
	}
}

func TestLatestVersion_FallbackInstallFails(t *testing.T) {
	rec := runner.NewRecorder()
	rec.On("npm info", runner.Response{Err: errors.New("offline")})
	rec.On("npm i", runner.Response{Err: &runner.ExitError{Cmd: "npm i git-cz", Code: 1}})

	_, err := LatestVersion(context.Background(), rec, NPM, "git-cz", "")
	var exitErr *runner.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, err.Error(), "installing git-cz")
}
