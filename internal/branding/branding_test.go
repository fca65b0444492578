package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedIdentity(t *testing.T) {
	assert.Equal(t, "kickstart", CLIName())
	assert.Equal(t, ".kickstart", HomeDir())
	assert.Equal(t, "KICKSTART", EnvPrefix())
	assert.NotEmpty(t, Description())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "KICKSTART_HOME", EnvVar("home"))
	assert.Equal(t, "KICKSTART_LOG_LEVEL", EnvVar("log_level"))
}
