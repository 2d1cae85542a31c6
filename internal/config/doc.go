// Package config provides configuration management for the crashcheck CLI.
//
// This package handles loading and validating the tool's own configuration
// file. None of the values change what counts as valid crash-prediction
// data — the schema is fixed in code — they only control where the data file
// is looked for by default and how reports are rendered.
//
// # Configuration File
//
// The default configuration file location is ~/.config/crashcheck/config.yaml
// (following the XDG base directory spec; override the directory with
// $CRASHCHECK_CONFIG_DIR). The configuration file uses YAML format with the
// following structure:
//
//	version: 1
//	data_path: data/crash_predictions.csv
//	output:
//	  format: text   # text | json
//	  color: auto    # auto | always | never
//
// Environment variables prefixed CRASHCHECK_ override file values, e.g.
// CRASHCHECK_DATA_PATH or CRASHCHECK_OUTPUT_FORMAT.
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//
// Load with an empty path searches the default locations and falls back to
// [Default] values when no file exists. Load with an explicit path fails if
// the file is missing.
//
// # Validation
//
// Load validates automatically. Use [Validate] directly when every
// violation should be reported rather than just the first:
//
//	errs := config.Validate(cfg)
//	for _, e := range errs {
//	    fmt.Println(e)
//	}
package config
