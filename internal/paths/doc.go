// Package paths resolves the locations the validator reads configuration
// from and writes reports to.
//
// Configuration follows the XDG Base Directory layout through
// github.com/adrg/xdg: ~/.config/unattend on Linux, ~/Library/Application
// Support/unattend on macOS and %LOCALAPPDATA%\unattend on Windows. The
// UNATTEND_CONFIG_DIR environment variable overrides the location.
package paths
