package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/internal/paths"
	"github.com/thoreinstein/unattend/internal/report"
)

// Config keys shared with flag bindings.
const (
	KeyVersion       = "version"
	KeyDetailed      = "detailed"
	KeyReportEnabled = "report.enabled"
	KeyReportPath    = "report.path"
	KeyReportFormat  = "report.format"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version  int          `mapstructure:"version" yaml:"version"`
	Detailed bool         `mapstructure:"detailed" yaml:"detailed"`
	Report   ReportConfig `mapstructure:"report" yaml:"report"`
}

// ReportConfig controls the persisted report.
type ReportConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
	Format  string `mapstructure:"format" yaml:"format"`
}

// Init resets Viper and installs search paths, environment binding and defaults.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("UNATTEND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, 1)
	viper.SetDefault(KeyDetailed, false)
	viper.SetDefault(KeyReportEnabled, true)
	viper.SetDefault(KeyReportPath, report.DefaultFilename)
	viper.SetDefault(KeyReportFormat, string(report.FormatText))
}

// Load reads the configuration file.
// If path is empty the default locations are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// defaults apply
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}
