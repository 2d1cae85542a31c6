package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vacrashmap/crashcheck/internal/config"
	"github.com/vacrashmap/crashcheck/internal/editor"
	"github.com/vacrashmap/crashcheck/internal/errors"
	"github.com/vacrashmap/crashcheck/internal/paths"
	"github.com/vacrashmap/crashcheck/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage crashcheck configuration",
	Long: `Manage the crashcheck configuration file.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  crashcheck config

  # Get a specific value
  crashcheck config get data_path

  # Set a value
  crashcheck config set output.format json

See Also: crashcheck init, crashcheck doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys.`,
	Example: `  # Get the data file path
  crashcheck config get data_path

  # Get the report format
  crashcheck config get output.format

See Also: crashcheck config set, crashcheck config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it back to the config file.

Values are validated before writing: output.format must be text or json,
output.color must be auto, always, or never.`,
	Example: `  # Point at a different export
  crashcheck config set data_path exports/june.csv

  # Always emit JSON reports
  crashcheck config set output.format json

See Also: crashcheck config get, crashcheck config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	Example: `  # List all configuration
  crashcheck config list

See Also: crashcheck config get, crashcheck config set`,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then falls back to nano or vi.
If no configuration file exists, prints an error suggesting to run
'crashcheck init'.`,
	Example: `  # Open config in default editor
  crashcheck config edit

  # Open with specific editor
  EDITOR=nano crashcheck config edit

See Also: crashcheck config list, crashcheck init`,
	RunE: runConfigEdit,
}

func runConfigGet(_ *cobra.Command, args []string) error {
	key := args[0]

	if !viper.IsSet(key) {
		fmt.Println("not set")
		return nil
	}

	fmt.Println(viper.GetString(key))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	switch key {
	case "version":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return errors.Newf("version must be a positive integer, got %q", value)
		}
		viper.Set(key, n)

	case "data_path":
		if strings.TrimSpace(value) == "" {
			return errors.New("data_path cannot be empty")
		}
		viper.Set(key, value)

	case "output.format":
		if value != config.FormatText && value != config.FormatJSON {
			return errors.Newf("invalid format %q (valid: %s, %s)",
				value, config.FormatText, config.FormatJSON)
		}
		viper.Set(key, value)

	case "output.color":
		if value != config.ColorAuto && value != config.ColorAlways && value != config.ColorNever {
			return errors.Newf("invalid color mode %q (valid: %s, %s, %s)",
				value, config.ColorAuto, config.ColorAlways, config.ColorNever)
		}
		viper.Set(key, value)

	default:
		return errors.Newf("unknown configuration key %q (valid keys: version, data_path, output.format, output.color)", key)
	}

	if err := writeConfig(); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, value)

	return nil
}

func runConfigList(_ *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(currentConfigMap())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Print(string(data))
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	configPath := config.Used()
	if configPath == "" {
		configPath = config.File()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return errors.Newf("config file not found at %s\nRun 'crashcheck init' to create it", configPath)
	}

	return editor.Open(configPath)
}

// currentConfigMap snapshots the effective configuration from viper in the
// same shape the config file uses.
func currentConfigMap() map[string]any {
	return map[string]any{
		"version":   viper.GetInt("version"),
		"data_path": viper.GetString("data_path"),
		"output": map[string]any{
			"format": viper.GetString("output.format"),
			"color":  viper.GetString("output.color"),
		},
	}
}

// writeConfig writes the current viper configuration to the config file.
func writeConfig() error {
	if err := paths.EnsureDir(config.Dir(), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(config.File(), currentConfigMap()); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}
