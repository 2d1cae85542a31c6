package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vacrashmap/crashcheck/internal/config"
	"github.com/vacrashmap/crashcheck/internal/doctor"
	"github.com/vacrashmap/crashcheck/internal/errors"
)

// errDoctorWarnings signals checks completed with warnings (exit code 1).
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors signals checks completed with errors (exit code 2).
var errDoctorErrors = errors.New("doctor found errors")

// Local output flags. These shadow the root --json/--quiet/--verbose on
// purpose: doctor's output modes are its own.
var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show all checks including passed ones")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and data file problems",
	Long: `Run diagnostic checks on the crashcheck environment.

Verifies that the configuration loads, that the data file exists and is
not empty, and that its header row declares the required columns.

Output modes (mutually exclusive):
  (default)   Show errors and warnings only
  --verbose   Show every check including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON

Exit codes:
  0 - all checks passed
  1 - warnings present, no errors
  2 - errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags enforces that the output mode flags are mutually
// exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}
	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}
	return nil
}

func runDoctor(c *cobra.Command, _ []string) error {
	dataPath := config.DefaultDataPath
	if cfg != nil {
		dataPath = cfg.DataPath
	}

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(cfgFile))
	runner.AddCheck(doctor.NewDataFileCheck(dataPath))
	runner.AddCheck(doctor.NewDataHeaderCheck(dataPath))

	report := runner.Run()

	if err := outputDoctorReport(c, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errDoctorErrors
	}
	if report.HasWarnings() {
		return errDoctorWarnings
	}
	return nil
}

func outputDoctorReport(c *cobra.Command, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(c.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding doctor report")
	}
	outputDoctorText(c, report)
	return nil
}

func outputDoctorText(c *cobra.Command, report *doctor.Report) {
	out := c.OutOrStdout()

	hasOutput := false
	for _, result := range report.Results {
		if !doctorVerbose && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(out, "%s [%s] %s: %s\n",
			statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(out, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
