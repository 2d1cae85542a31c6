// Package validator checks crash-prediction CSV files against the fixed
// schema used by the Virginia Crash Hot Spot Map.
//
// It defines the types for representing validation findings (errors and
// warnings), the Report produced by a validation run, and the Reporter that
// renders a report for the console.
//
// # Core Concepts
//
//   - [Diagnostic]: A single finding tied to a row and column.
//   - [Report]: The outcome of validating one file, including all findings.
//   - [Reporter]: Renders a Report as human-readable text or JSON.
//
// # Basic Usage
//
//	v := validator.New()
//	report, err := v.ValidateFile("data/crash_predictions.csv")
//	if err != nil {
//		// the file could not be read at all
//	}
//
//	if !report.Passed {
//		// handle validation failure
//	}
package validator
