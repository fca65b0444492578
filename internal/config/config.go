package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kickstart-labs/kickstart/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the wizard.
const (
	KeyPackageManager = "package_manager"
	KeySkipGit        = "skip_git"
	KeySkipInstall    = "skip_install"
	KeySkipCacheClear = "skip_cache_clear"
	KeyDescriptorsDir = "descriptors_dir"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

// Settings is the typed view of the configuration.
type Settings struct {
	PackageManager string `mapstructure:"package_manager" validate:"omitempty,oneof=npm yarn pnpm"`
	SkipGit        bool   `mapstructure:"skip_git"`
	SkipInstall    bool   `mapstructure:"skip_install"`
	SkipCacheClear bool   `mapstructure:"skip_cache_clear"`
	DescriptorsDir string `mapstructure:"descriptors_dir" validate:"omitempty,dirpath"`
	LogLevel       string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string `mapstructure:"log_format" validate:"oneof=text json"`
}

var validate = validator.New()

// Dir returns the path to the config directory (~/.kickstart/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.kickstart/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeySkipGit, false)
	viper.SetDefault(KeySkipInstall, false)
	viper.SetDefault(KeySkipCacheClear, false)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "text")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current unmarshals and validates the loaded configuration.
func Current() (*Settings, error) {
	var s Settings
	for _, key := range Keys() {
		// AutomaticEnv only applies to keys viper already knows about.
		_ = viper.BindEnv(key)
	}
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", FilePath(), err)
	}
	return &s, nil
}

// Keys returns every supported key in sorted order.
func Keys() []string {
	keys := []string{
		KeyPackageManager, KeySkipGit, KeySkipInstall, KeySkipCacheClear,
		KeyDescriptorsDir, KeyLogLevel, KeyLogFormat,
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a supported setting.
func IsKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	previous := viper.Get(key)
	viper.Set(key, value)
	if _, err := Current(); err != nil {
		viper.Set(key, previous)
		return err
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
