// Package config provides configuration management for crashcheck using Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vacrashmap/crashcheck/internal/errors"
	"github.com/vacrashmap/crashcheck/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "crashcheck"

// EnvConfigDir is the environment variable that overrides the directory
// searched for the config file. Used mainly to isolate tests.
const EnvConfigDir = "CRASHCHECK_CONFIG_DIR"

// envPrefix namespaces the environment variables viper reads, so
// output.format becomes CRASHCHECK_OUTPUT_FORMAT.
const envPrefix = "CRASHCHECK"

// DefaultDataPath is the file validated when no path argument is given and
// no data_path is configured.
const DefaultDataPath = "data/crash_predictions.csv"

// Recognized output.format values.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Recognized output.color values.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version  int    `mapstructure:"version" yaml:"version"`
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
	Output   Output `mapstructure:"output" yaml:"output"`
}

// Output controls how validation reports are rendered.
type Output struct {
	Format string `mapstructure:"format" yaml:"format"`
	Color  string `mapstructure:"color" yaml:"color"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version:  1,
		DataPath: DefaultDataPath,
		Output: Output{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}

// Dir returns the directory crashcheck reads and writes its own config file
// in: EnvConfigDir when set, otherwise <XDG config home>/crashcheck.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(paths.ConfigHome(), AppName)
}

// File returns the full path of the config file.
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Used returns the path of the config file the last Load actually read,
// or "" when defaults are in effect.
func Used() string {
	return viper.ConfigFileUsed()
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Calling it again resets any previously loaded state.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("data_path", d.DataPath)
	viper.SetDefault("output.format", d.Output.Format)
	viper.SetDefault("output.color", d.Output.Color)
}

// Load reads the configuration file and validates it.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// default values when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}
