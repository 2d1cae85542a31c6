// Package paths provides cross-platform path resolution for the directories
// crashcheck uses.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux the config home is ~/.config; on macOS
// ~/Library/Application Support; on Windows %LOCALAPPDATA%.
//
// The crashcheck config file lives under <ConfigHome>/crashcheck; see the
// config package for the file layout and the CRASHCHECK_CONFIG_DIR override.
package paths
