package validator

import (
	"fmt"
	"strings"
	"time"
)

// Diagnostic is a single validation finding tied to a row and column.
type Diagnostic struct {
	// Row is the 1-based CSV line the finding refers to, counting the
	// header as row 1. It is 0 for findings about the file as a whole.
	Row int `json:"row,omitempty"`
	// Field names the column the finding refers to (optional).
	Field string `json:"field,omitempty"`
	// Message is a human-readable description of the problem.
	Message string `json:"message"`
	// Value is the raw text that failed validation (optional).
	Value string `json:"value,omitempty"`
}

// String renders the diagnostic as a single console line.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.Row > 0 {
		fmt.Fprintf(&sb, "Row %d: ", d.Row)
	}
	sb.WriteString(d.Message)
	if d.Value != "" {
		fmt.Fprintf(&sb, " [%s]", d.Value)
	}
	return sb.String()
}

// Report is the outcome of validating one crash-prediction CSV file.
type Report struct {
	// Path is the file the report describes. Empty when validating a
	// stream directly.
	Path string `json:"path,omitempty"`
	// Passed is true when no errors were found. Warnings never affect it.
	Passed bool `json:"passed"`
	// Rows is the number of data rows processed, excluding the header.
	Rows int `json:"rows"`
	// Columns is the header exactly as it appeared in the file.
	Columns []string `json:"columns,omitempty"`
	// Errors holds the findings that fail validation, in encounter order.
	Errors []Diagnostic `json:"errors,omitempty"`
	// Warnings holds advisory findings. They are reported but never fail
	// validation.
	Warnings []Diagnostic `json:"warnings,omitempty"`
	// StartedAt is when the validation run began.
	StartedAt time.Time `json:"started_at"`
	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

func (r *Report) addError(row int, field, message, value string) {
	r.Errors = append(r.Errors, Diagnostic{
		Row:     row,
		Field:   field,
		Message: message,
		Value:   value,
	})
}

func (r *Report) addWarning(row int, field, message, value string) {
	r.Warnings = append(r.Warnings, Diagnostic{
		Row:     row,
		Field:   field,
		Message: message,
		Value:   value,
	})
}
