package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the configuration directory.
const AppName = "unattend"

// ConfigDirEnv overrides the configuration directory when set.
const ConfigDirEnv = "UNATTEND_CONFIG_DIR"

// DefaultDirPerm is the permission for directories created for reports.
const DefaultDirPerm = 0o755

// ErrInvalidPath indicates the provided path is malformed.
var ErrInvalidPath = errors.New("invalid path")

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// EnsureParentDir creates the parent directory of path if it is missing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return errors.Wrapf(os.MkdirAll(dir, DefaultDirPerm), "creating %s", dir)
}

// Validate checks that path is syntactically usable. It does not check existence.
func Validate(path string) error {
	if path == "" {
		return nil
	}
	for _, r := range path {
		if r == 0 {
			return ErrInvalidPath
		}
	}
	if cleaned := filepath.Clean(path); cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}
