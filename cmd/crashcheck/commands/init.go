package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vacrashmap/crashcheck/internal/config"
	"github.com/vacrashmap/crashcheck/internal/errors"
	"github.com/vacrashmap/crashcheck/internal/paths"
	"github.com/vacrashmap/crashcheck/pkg/fileutil"
)

var (
	initYes      bool
	initForce    bool
	initDataPath string
)

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Non-interactive mode, accept all defaults")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	initCmd.Flags().StringVar(&initDataPath, "data-path", "", "Data file path to record (overrides the default)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize crashcheck configuration",
	Long: `Create the crashcheck configuration file with default values.

The generated file records the data file path and the report output
settings. All values can be changed later with 'crashcheck config set'.`,
	Example: `  # Initialize with interactive prompts
  crashcheck init

  # Initialize non-interactively, accepting defaults
  crashcheck init --yes

  # Record a non-default data file
  crashcheck init --data-path exports/june.csv

  # Force overwrite existing configuration
  crashcheck init --force

See Also: crashcheck config, crashcheck doctor`,
	RunE: runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := config.File()

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Printf("Configuration already exists at %s\n", configPath)
		fmt.Println("Use --force to overwrite")
		return nil
	}

	newCfg := config.Default()
	if initDataPath != "" {
		newCfg.DataPath = initDataPath
	}

	if !initYes {
		fmt.Println("This will create:")
		fmt.Printf("  %s\n", configPath)
		fmt.Println()

		if !confirm("Proceed?") {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := paths.EnsureDir(config.Dir(), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(configPath, newCfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Printf("  data_path: %s\n", newCfg.DataPath)
	return nil
}

// confirm prompts the user for a yes/no confirmation.
// Returns true only if the user enters "y" or "yes" (case-insensitive).
func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N] ", prompt)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
