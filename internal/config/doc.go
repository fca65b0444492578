// Package config manages user-level settings stored at ~/.kickstart/config.yaml.
// Values can be overridden with KICKSTART_* environment variables and are
// validated before the wizard uses them.
package config
