package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vacrashmap/crashcheck/internal/config"
	"github.com/vacrashmap/crashcheck/internal/doctor"
	"github.com/vacrashmap/crashcheck/internal/errors"
)

// resetDoctorFlags restores the doctor command flags after a test.
func resetDoctorFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		doctorJSON = false
		doctorQuiet = false
		doctorVerbose = false
	})
}

// setupDataDir creates a working directory with data/crash_predictions.csv
// holding content, chdirs into it, and isolates the config environment.
func setupDataDir(t *testing.T, content string) {
	t.Helper()

	t.Setenv(config.EnvConfigDir, t.TempDir())

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "data", "crash_predictions.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
}

func TestDoctor_HealthySetup(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	setupDataDir(t, validCSV)

	out, _, err := runRoot(t, "doctor")
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}
	if !strings.Contains(out, "Summary: 3 passed, 0 info, 0 warnings, 0 errors") {
		t.Errorf("doctor output = %q, want all-passed summary", out)
	}
	// Passed checks stay hidden without --verbose.
	if strings.Contains(out, "✓") {
		t.Errorf("doctor output should not list passed checks by default:\n%s", out)
	}
}

func TestDoctor_Verbose(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	setupDataDir(t, validCSV)

	out, _, err := runRoot(t, "doctor", "--verbose")
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}
	for _, want := range []string{
		"✓ [config] config-file:",
		"✓ [data] data-file:",
		"✓ [data] data-header:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q\nGot:\n%s", want, out)
		}
	}
}

func TestDoctor_MissingDataFile(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Chdir(t.TempDir())

	out, _, err := runRoot(t, "doctor")
	if !errors.Is(err, errDoctorErrors) {
		t.Fatalf("doctor error = %v, want errDoctorErrors", err)
	}
	if !strings.Contains(out, "✗ [data] data-file: data file not found") {
		t.Errorf("doctor output missing data-file error:\n%s", out)
	}
	if !strings.Contains(out, "hint:") {
		t.Errorf("doctor output missing fix hint:\n%s", out)
	}
}

func TestDoctor_EmptyDataFile(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	setupDataDir(t, "")

	out, _, err := runRoot(t, "doctor")
	if !errors.Is(err, errDoctorWarnings) {
		t.Fatalf("doctor error = %v, want errDoctorWarnings", err)
	}
	if !strings.Contains(out, "⚠ [data] data-file: data file is empty") {
		t.Errorf("doctor output missing empty-file warning:\n%s", out)
	}
}

func TestDoctor_MissingColumns(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	setupDataDir(t, "lat,lon\n37.5,-78.5\n")

	out, _, err := runRoot(t, "doctor")
	if !errors.Is(err, errDoctorErrors) {
		t.Fatalf("doctor error = %v, want errDoctorErrors", err)
	}
	if !strings.Contains(out, "missing required columns: hour, probability") {
		t.Errorf("doctor output missing column error:\n%s", out)
	}
}

func TestDoctor_JSON(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	setupDataDir(t, validCSV)

	out, _, err := runRoot(t, "doctor", "--json")
	if err != nil {
		t.Fatalf("doctor error = %v", err)
	}

	var report doctor.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("doctor --json output is not JSON: %v\n%s", err, out)
	}
	if len(report.Results) != 3 {
		t.Errorf("results = %d, want 3", len(report.Results))
	}
	if report.Summary.Passed != 3 {
		t.Errorf("summary.passed = %d, want 3", report.Summary.Passed)
	}
	if report.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestDoctor_Quiet(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Chdir(t.TempDir())

	out, _, err := runRoot(t, "doctor", "--quiet")
	if !errors.Is(err, errDoctorErrors) {
		t.Fatalf("doctor error = %v, want errDoctorErrors", err)
	}
	if out != "" {
		t.Errorf("doctor --quiet output = %q, want none", out)
	}
}

func TestDoctor_FlagsMutuallyExclusive(t *testing.T) {
	resetRootState(t)
	resetDoctorFlags(t)
	t.Setenv(config.EnvConfigDir, t.TempDir())

	_, _, err := runRoot(t, "doctor", "--json", "--quiet")
	if err == nil {
		t.Fatal("expected an error for conflicting flags")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %v, want mutual-exclusion complaint", err)
	}
}

func TestDoctor_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T)
		wantCode int
	}{
		{
			name:     "healthy exits zero",
			setup:    func(t *testing.T) { setupDataDir(t, validCSV) },
			wantCode: errors.ExitSuccess,
		},
		{
			name:     "warnings exit one",
			setup:    func(t *testing.T) { setupDataDir(t, "") },
			wantCode: errors.ExitUser,
		},
		{
			name: "errors exit two",
			setup: func(t *testing.T) {
				t.Setenv(config.EnvConfigDir, t.TempDir())
				t.Chdir(t.TempDir())
			},
			wantCode: errors.ExitSystem,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRootState(t)
			resetDoctorFlags(t)
			tt.setup(t)

			var out, errOut bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&errOut)
			rootCmd.SetArgs([]string{"doctor"})

			if got := Execute(); got != tt.wantCode {
				t.Errorf("Execute() = %d, want %d\nstdout:\n%s", got, tt.wantCode, out.String())
			}
		})
	}
}
