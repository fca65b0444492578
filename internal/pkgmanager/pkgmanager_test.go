package pkgmanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
}

func TestParse(t *testing.T) {
	pm, err := Parse(" Yarn ")
	require.NoError(t, err)
	assert.Equal(t, Yarn, pm)

	_, err = Parse("bun")
	assert.ErrorContains(t, err, `unknown package manager "bun"`)
}

func TestPackageManager_PflagValue(t *testing.T) {
	var pm PackageManager
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&pm, "package-manager", "")

	require.NoError(t, fs.Parse([]string{"--package-manager", "pnpm"}))
	assert.Equal(t, PNPM, pm)
	assert.Error(t, fs.Parse([]string{"--package-manager", "cargo"}))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		lockfiles []string
		agent     string
		want      PackageManager
	}{
		{"empty dir", nil, "", NPM},
		{"yarn lock", []string{"yarn.lock"}, "", Yarn},
		{"pnpm lock", []string{"pnpm-lock.yaml"}, "", PNPM},
		{"yarn lock wins over pnpm lock", []string{"yarn.lock", "pnpm-lock.yaml"}, "", Yarn},
		{"lockfile wins over agent", []string{"pnpm-lock.yaml"}, "yarn/1.22.19 npm/? node/v18", PNPM},
		{"yarn agent", nil, "yarn/1.22.19 npm/? node/v18.17.0", Yarn},
		{"pnpm agent", nil, "pnpm/8.6.0 npm/? node/v18.17.0", PNPM},
		{"npm agent", nil, "npm/9.6.7 node/v18.17.0", NPM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.lockfiles {
				touch(t, dir, f)
			}
			assert.Equal(t, tt.want, Detect(dir, tt.agent))
		})
	}
}

func TestChoose(t *testing.T) {
	assert.Equal(t, Yarn, Choose(Yarn, []string{"npm", "yarn"}))
	assert.Equal(t, NPM, Choose(PNPM, []string{"npm", "yarn"}))
	assert.Equal(t, Yarn, Choose(PNPM, []string{"yarn"}))
	assert.Equal(t, PNPM, Choose(PNPM, nil))
}

func TestPrepareInstall(t *testing.T) {
	tests := []struct {
		pm      PackageManager
		wantCmd string
		kept    string
		removed []string
	}{
		{NPM, "npm install", "package-lock.json", []string{"yarn.lock", "pnpm-lock.yaml"}},
		{Yarn, "yarn", "yarn.lock", []string{"package-lock.json", "pnpm-lock.yaml"}},
		{PNPM, "pnpm install", "pnpm-lock.yaml", []string{"package-lock.json", "yarn.lock"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.pm), func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, "package.json")
			for _, f := range []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml"} {
				touch(t, dir, f)
			}

			cmd, ok, err := PrepareInstall(dir, tt.pm)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCmd, cmd.String())
			assert.Equal(t, dir, cmd.Dir)

			assert.FileExists(t, filepath.Join(dir, tt.kept))
			for _, f := range tt.removed {
				assert.NoFileExists(t, filepath.Join(dir, f))
			}
		})
	}
}

func TestPrepareInstall_NoPackageJSON(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "yarn.lock")

	_, ok, err := PrepareInstall(dir, NPM)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.FileExists(t, filepath.Join(dir, "yarn.lock"), "nothing is removed without package.json")
}

func TestGlobalInstallAndAdd(t *testing.T) {
	assert.Equal(t, "npm i -g @nestjs/cli", GlobalInstall(NPM, "@nestjs/cli").String())
	assert.Equal(t, "yarn global add sails", GlobalInstall(Yarn, "sails").String())
	assert.Equal(t, "pnpm add -g sails", GlobalInstall(PNPM, "sails").String())

	assert.Equal(t, "npm i git-cz", Add(NPM, "git-cz").String())
	assert.Equal(t, "yarn add git-cz", Add(Yarn, "git-cz").String())
	assert.Equal(t, "pnpm add git-cz", Add(PNPM, "git-cz").String())
}
