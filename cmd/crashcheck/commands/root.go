// Package commands implements the CLI commands for crashcheck.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vacrashmap/crashcheck/cmd"
	"github.com/vacrashmap/crashcheck/internal/config"
	"github.com/vacrashmap/crashcheck/internal/errors"
	"github.com/vacrashmap/crashcheck/internal/logging"
	"github.com/vacrashmap/crashcheck/internal/validator"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// cfgFile holds the value of the --config flag.
var cfgFile string

// jsonOut holds the value of the --json flag.
var jsonOut bool

// noColor holds the value of the --no-color flag.
var noColor bool

// cfg is the configuration loaded during initialization.
var cfg *config.Config

// configLoadErr records a failure to load the configuration. The root
// validation run refuses to proceed on it; subcommands keep working so a
// broken config file can still be inspected and repaired.
var configLoadErr error

// errValidationFailed signals a completed validation run that found errors.
// The reporter has already written the findings when it is returned.
var errValidationFailed = errors.New("validation failed")

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is config.yaml in $CRASHCHECK_CONFIG_DIR, ., or the XDG config dir)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"write the validation report as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("crashcheck version {{.Version}}\n")

	// Silence cobra's own error printing so Execute controls the output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// initConfig is registered with cobra.OnInitialize and runs before any
// command executes.
func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(cfgFile)
}

var rootCmd = &cobra.Command{
	Use:   "crashcheck [file]",
	Short: "Validate crash-prediction CSV exports",
	Long: `crashcheck validates the CSV exports that feed the Virginia Crash Hot
Spot Map.

Every data row must carry a latitude, longitude, crash probability, and
hour of day within their valid ranges. Values that parse but fall outside
the Virginia bounding box are reported as warnings: plausible data, just
invisible on a Virginia map.

Without a file argument, crashcheck validates the configured data_path
(data/crash_predictions.csv by default).`,
	Example: `  # Validate the default export
  crashcheck

  # Validate a specific file
  crashcheck exports/june.csv

  # Machine-readable report
  crashcheck --json predictions.csv`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		if err := setupLogging(c); err != nil {
			return err
		}
		setupColor()

		// Only the validation run itself requires a loadable config.
		// doctor, init, and the static commands must keep working so a
		// broken config file can be diagnosed and repaired.
		if c == rootCmd && configLoadErr != nil {
			return errors.NewConfigError(configLoadErr)
		}
		return nil
	},
	RunE: runValidate,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(c *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("CRASHCHECK_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(c.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(c.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output is always JSON
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// setupColor applies the --no-color flag and the configured color mode.
// ColorAuto leaves the color library's own terminal detection in charge.
func setupColor() {
	if noColor {
		color.NoColor = true
		return
	}
	if cfg == nil {
		return
	}
	switch cfg.Output.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// reportFormat resolves the report output format. The --json flag wins over
// the configured format.
func reportFormat() validator.Format {
	if jsonOut {
		return validator.FormatJSON
	}
	if cfg != nil && cfg.Output.Format == config.FormatJSON {
		return validator.FormatJSON
	}
	return validator.FormatText
}

func runValidate(c *cobra.Command, args []string) error {
	path := cfg.DataPath
	if len(args) > 0 {
		path = args[0]
	}

	reporter := validator.NewReporter(c.OutOrStdout(), reportFormat())
	reporter.Banner()

	report, err := validator.New().ValidateFile(path)
	if err != nil {
		if repErr := reporter.ReportFatal(path, err); repErr != nil {
			return repErr
		}
		return errValidationFailed
	}

	if err := reporter.Report(report); err != nil {
		return err
	}
	if !report.Passed {
		return errValidationFailed
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return errors.ExitSuccess
	}

	switch {
	case errors.Is(err, errValidationFailed):
		// The reporter already wrote the findings.
		return errors.ExitUser
	case errors.Is(err, errDoctorErrors):
		return errors.ExitSystem
	case errors.Is(err, errDoctorWarnings):
		return errors.ExitUser
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", exitErr.Error())
		if exitErr.Suggestion != "" {
			fmt.Fprintln(rootCmd.ErrOrStderr(), exitErr.Suggestion)
		}
		return exitErr.Code
	}

	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err.Error())
	return errors.ExitUser
}
