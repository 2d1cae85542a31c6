package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vacrashmap/crashcheck/internal/config"
	"github.com/vacrashmap/crashcheck/internal/record"
	"github.com/vacrashmap/crashcheck/internal/schema"
)

// ConfigCheck verifies that the crashcheck config file, when present,
// loads and validates.
type ConfigCheck struct {
	// Path is an explicit config file path. Empty means the default
	// search locations.
	Path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check. An empty path means the default
// search locations.
func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{Path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run loads the configuration the same way the CLI does. A missing
// config file passes: crashcheck runs fine on defaults.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	config.Init()
	cfg, err := config.Load(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = "configuration does not load"
		result.Details["error"] = err.Error()
		result.FixHint = fmt.Sprintf("fix the reported setting in %s or delete the file to fall back to defaults", c.hintFile())
		return result
	}

	result.Status = SeverityPass
	result.Details["data_path"] = cfg.DataPath
	result.Details["format"] = cfg.Output.Format
	result.Details["color"] = cfg.Output.Color

	if file := config.Used(); file != "" {
		result.Message = "configuration valid"
		result.Details["file"] = file
	} else {
		result.Message = "no config file found, using defaults"
	}

	return result
}

// hintFile returns the most specific config file path known after a
// failed load, for use in fix hints.
func (c *ConfigCheck) hintFile() string {
	if c.Path != "" {
		return c.Path
	}
	if file := config.Used(); file != "" {
		return file
	}
	return config.File()
}

// DataFileCheck verifies the crash-prediction CSV exists and looks usable
// before a validation run is attempted.
type DataFileCheck struct {
	// Path is the CSV file the validate command would read.
	Path string
}

var _ Check = (*DataFileCheck)(nil)

// NewDataFileCheck creates a data file check for the given path.
func NewDataFileCheck(path string) *DataFileCheck {
	return &DataFileCheck{Path: path}
}

// Name returns the unique identifier for this check.
func (c *DataFileCheck) Name() string {
	return "data-file"
}

// Category returns the grouping for this check.
func (c *DataFileCheck) Category() string {
	return "data"
}

// Run executes the data file diagnostic check.
func (c *DataFileCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Path},
	}

	info, err := os.Stat(c.Path)
	if os.IsNotExist(err) {
		result.Status = SeverityError
		result.Message = "data file not found"
		result.FixHint = fmt.Sprintf("place the prediction export at %s or point data_path at it", c.Path)
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat data file: %v", err)
		return result
	}

	if info.IsDir() {
		result.Status = SeverityError
		result.Message = "data path is a directory, not a file"
		return result
	}

	result.Details["size_bytes"] = info.Size()

	if info.Size() == 0 {
		result.Status = SeverityWarning
		result.Message = "data file is empty"
		result.FixHint = "re-run the prediction export; an empty file fails validation"
		return result
	}

	if !strings.EqualFold(filepath.Ext(c.Path), ".csv") {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("data file does not use the .csv extension: %s", filepath.Base(c.Path))
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("data file present (%d bytes)", info.Size())
	return result
}

// DataHeaderCheck reads the CSV header row and verifies it declares the
// required crash-prediction columns.
type DataHeaderCheck struct {
	// Path is the CSV file the validate command would read.
	Path string
}

var _ Check = (*DataHeaderCheck)(nil)

// NewDataHeaderCheck creates a header check for the given path.
func NewDataHeaderCheck(path string) *DataHeaderCheck {
	return &DataHeaderCheck{Path: path}
}

// Name returns the unique identifier for this check.
func (c *DataHeaderCheck) Name() string {
	return "data-header"
}

// Category returns the grouping for this check.
func (c *DataHeaderCheck) Category() string {
	return "data"
}

// Run executes the header diagnostic check.
func (c *DataHeaderCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Path},
	}

	f, err := os.Open(c.Path)
	if err != nil {
		// data-file already reports a missing or unreadable file; don't
		// count the same problem twice.
		result.Status = SeverityInfo
		result.Message = "skipped: data file is not readable"
		return result
	}
	defer f.Close()

	if info, statErr := f.Stat(); statErr == nil && info.Size() == 0 {
		// data-file already warns about an empty file.
		result.Status = SeverityInfo
		result.Message = "skipped: data file is empty"
		return result
	}

	header, err := record.NewReader(f).Header()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot read header row: %v", err)
		result.FixHint = "the first line must name the columns, e.g. lat,lon,probability,hour"
		return result
	}

	result.Details["columns"] = header

	if missing := schema.Missing(header); len(missing) > 0 {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))
		result.FixHint = fmt.Sprintf("required columns are %s", strings.Join(schema.Required(), ", "))
		return result
	}

	result.Status = SeverityPass
	result.Message = "header declares all required columns"
	return result
}
