package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kickstart-labs/kickstart/internal/framework"
	"github.com/kickstart-labs/kickstart/internal/pkgmanager"
	"github.com/kickstart-labs/kickstart/internal/runner"
)

func TestInstalled(t *testing.T) {
	rec := runner.NewRecorder()
	rec.On("git --version", runner.Response{Output: []byte("git version 2.43.0\n")})
	rec.On("nest --version", runner.Response{Err: errors.New("not found")})

	assert.True(t, Installed(context.Background(), rec, "git"))
	assert.False(t, Installed(context.Background(), rec, "nest"))
}

func TestVersion(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{"v18.17.0\n", "18.17.0"},
		{"git version 2.43.0\n", "2.43.0"},
		{"10.2.1", "10.2.1"},
	}
	for _, tt := range tests {
		rec := runner.NewRecorder()
		rec.On("tool", runner.Response{Output: []byte(tt.out)})
		v, err := Version(context.Background(), rec, "tool")
		require.NoError(t, err, tt.out)
		assert.Equal(t, tt.want, v.String())
	}

	rec := runner.NewRecorder()
	rec.On("tool", runner.Response{Output: []byte("unknown")})
	_, err := Version(context.Background(), rec, "tool")
	assert.ErrorContains(t, err, "no version")
}

func TestCheckNode(t *testing.T) {
	tests := []struct {
		name       string
		node       string
		constraint string
		ok         bool
	}{
		{"satisfied", "v20.11.1", ">=18.0.0", true},
		{"too old", "v16.20.0", ">=18.13.0", false},
		{"no constraint", "v14.0.0", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runner.NewRecorder()
			rec.On("node --version", runner.Response{Output: []byte(tt.node + "\n")})

			res, err := CheckNode(context.Background(), rec, tt.constraint)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.node[1:], res.Version.String())
		})
	}
}

func TestCheckNode_Errors(t *testing.T) {
	rec := runner.NewRecorder()
	rec.On("node", runner.Response{Err: errors.New("missing")})
	_, err := CheckNode(context.Background(), rec, ">=18")
	assert.ErrorContains(t, err, "checking node")

	rec = runner.NewRecorder()
	rec.On("node", runner.Response{Output: []byte("v18.0.0")})
	_, err = CheckNode(context.Background(), rec, "not a constraint")
	assert.ErrorContains(t, err, "parsing node constraint")
}

func TestEnsureCLI(t *testing.T) {
	req := &framework.Requirement{Binary: "sails", Package: "sails"}

	t.Run("already installed", func(t *testing.T) {
		rec := runner.NewRecorder()
		rec.On("sails --version", runner.Response{Output: []byte("1.5.9")})
		installed, err := EnsureCLI(context.Background(), rec, req, pkgmanager.Yarn)
		require.NoError(t, err)
		assert.False(t, installed)
		assert.Equal(t, []string{"sails --version"}, rec.Lines())
	})

	t.Run("missing", func(t *testing.T) {
		rec := runner.NewRecorder()
		rec.On("sails --version", runner.Response{Err: errors.New("not found")})
		installed, err := EnsureCLI(context.Background(), rec, req, pkgmanager.Yarn)
		require.NoError(t, err)
		assert.True(t, installed)
		assert.Equal(t, []string{"sails --version", "yarn global add sails"}, rec.Lines())
	})

	t.Run("install fails", func(t *testing.T) {
		rec := runner.NewRecorder()
		rec.On("sails", runner.Response{Err: errors.New("nope")})
		rec.On("npm i -g", runner.Response{Err: errors.New("EACCES")})
		_, err := EnsureCLI(context.Background(), rec, req, pkgmanager.NPM)
		assert.ErrorContains(t, err, "installing sails")
	})

	t.Run("no requirement", func(t *testing.T) {
		rec := runner.NewRecorder()
		installed, err := EnsureCLI(context.Background(), rec, nil, pkgmanager.NPM)
		require.NoError(t, err)
		assert.False(t, installed)
		assert.Empty(t, rec.Commands)
	})
}
