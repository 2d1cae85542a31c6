package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/vacrashmap/crashcheck/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Display caps for the text format. Findings beyond the cap are summarized
// in a trailing "... and N more" line.
const (
	// MaxErrorsShown is the number of errors listed in text output.
	MaxErrorsShown = 10
	// MaxWarningsShown is the number of warnings listed in text output.
	MaxWarningsShown = 5
)

const bannerWidth = 70

// Reporter formats and writes validation reports.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Banner writes the tool banner. JSON mode writes nothing.
func (r *Reporter) Banner() {
	if r.format == FormatJSON {
		return
	}
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "Virginia Crash Hot Spot Map - CSV Data Validator")
	fmt.Fprintln(r.out, rule)
}

// Report writes the validation report to the output.
func (r *Reporter) Report(report *Report) error {
	if report == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(report)
	default:
		return r.reportText(report)
	}
}

// ReportFatal writes the outcome for a run that stopped before a report
// could be produced: a missing file, or a read failure partway through.
func (r *Reporter) ReportFatal(path string, err error) error {
	if r.format == FormatJSON {
		fatal := struct {
			Path   string `json:"path"`
			Passed bool   `json:"passed"`
			Fatal  string `json:"fatal"`
		}{Path: path, Passed: false, Fatal: err.Error()}

		encoder := json.NewEncoder(r.out)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(fatal), "encoding JSON report")
	}

	if errors.Is(err, errors.ErrFileNotFound) {
		fmt.Fprintln(r.out, color.RedString("✗ File not found: %s", path))
		return nil
	}
	fmt.Fprintln(r.out, color.RedString("✗ Failed to read CSV: %v", err))
	return nil
}

// reportJSON writes the report as JSON.
func (r *Reporter) reportJSON(report *Report) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(report), "encoding JSON report")
}

// reportText writes the report as human-readable text: a summary block,
// the capped error and warning lists, and a final pass/fail line. Warnings
// are shown whether or not validation passed.
func (r *Reporter) reportText(report *Report) error {
	fmt.Fprintf(r.out, "\nValidation summary for: %s\n", report.Path)
	fmt.Fprintf(r.out, "  Rows processed: %d\n", report.Rows)
	fmt.Fprintf(r.out, "  Columns found: %s\n", columnsLine(report.Columns))

	if len(report.Errors) > 0 {
		fmt.Fprintf(r.out, "\n%s\n", color.RedString("Errors (%d):", len(report.Errors)))
		r.printDiagnostics(report.Errors, MaxErrorsShown, "errors", color.FgRed)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(r.out, "\n%s\n", color.YellowString("Warnings (%d):", len(report.Warnings)))
		r.printDiagnostics(report.Warnings, MaxWarningsShown, "warnings", color.FgYellow)
	}

	fmt.Fprintln(r.out)
	if report.Passed {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed: CSV format is correct"))
		return nil
	}

	counts := []string{color.RedString("%d error(s)", len(report.Errors))}
	if len(report.Warnings) > 0 {
		counts = append(counts, color.YellowString("%d warning(s)", len(report.Warnings)))
	}
	fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗ Validation failed:"), strings.Join(counts, ", "))
	return nil
}

func (r *Reporter) printDiagnostics(diags []Diagnostic, max int, noun string, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	shown := diags
	if len(shown) > max {
		shown = shown[:max]
	}
	for _, d := range shown {
		r.printDiagnostic(d, printer)
	}
	if len(diags) > max {
		fmt.Fprintf(r.out, "  ... and %d more %s\n", len(diags)-max, noun)
	}
}

func (r *Reporter) printDiagnostic(d Diagnostic, printer func(a ...interface{}) string) {
	// Format:  • Row N: message [value]

	var sb strings.Builder
	sb.WriteString("  • ")

	if d.Row > 0 {
		sb.WriteString(printer(fmt.Sprintf("Row %d", d.Row)))
		sb.WriteString(": ")
	}

	sb.WriteString(d.Message)

	if d.Value != "" {
		val := d.Value
		// Truncate long values
		if len(val) > 50 {
			val = val[:47] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", val))
	}

	fmt.Fprintln(r.out, sb.String())
}

func columnsLine(columns []string) string {
	if len(columns) == 0 {
		return "(none)"
	}
	return strings.Join(columns, ", ")
}
