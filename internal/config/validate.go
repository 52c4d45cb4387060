package config

import (
	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/internal/paths"
	"github.com/thoreinstein/unattend/internal/report"
)

// CurrentVersion is the only supported config file version.
const CurrentVersion = 1

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Newf("unsupported config version: %d", cfg.Version))
	}

	if _, err := report.ParseFormat(cfg.Report.Format); err != nil {
		errs = append(errs, err)
	}

	if cfg.Report.Enabled && cfg.Report.Path == "" {
		errs = append(errs, errors.New("report.path is required when reports are enabled"))
	}

	if err := paths.Validate(cfg.Report.Path); err != nil {
		errs = append(errs, errors.Wrapf(err, "report.path %q", cfg.Report.Path))
	}

	return errs
}
