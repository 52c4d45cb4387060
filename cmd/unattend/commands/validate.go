package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/unattend/internal/config"
	"github.com/thoreinstein/unattend/internal/engine"
	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/internal/logging"
	"github.com/thoreinstein/unattend/internal/report"
	"github.com/thoreinstein/unattend/internal/validator"
	"github.com/thoreinstein/unattend/pkg/fileutil"
)

var (
	validateDetailed     bool
	validateJSON         bool
	validateNoReport     bool
	validateReportPath   string
	validateReportFormat string
)

// now is the report generation clock.
var now = time.Now

// reportLockTimeout bounds the wait for another run writing the same report.
const reportLockTimeout = 30 * time.Second

func init() {
	f := validateCmd.Flags()
	f.BoolVarP(&validateDetailed, "detailed", "d", false,
		"print every finding grouped by severity")
	f.BoolVar(&validateJSON, "json", false,
		"print the result as JSON instead of the summary")
	f.BoolVar(&validateNoReport, "no-report", false,
		"do not write a report file")
	f.StringVar(&validateReportPath, "report", report.DefaultFilename,
		"report file path")
	f.StringVar(&validateReportFormat, "report-format", string(report.FormatText),
		"report format: text, json, yaml, toml")
	rootCmd.AddCommand(validateCmd)
}

// bindValidateFlags lets explicitly set flags override config values.
// It must run after config.Init, which resets Viper.
func bindValidateFlags() {
	f := validateCmd.Flags()
	_ = viper.BindPFlag(config.KeyDetailed, f.Lookup("detailed"))
	_ = viper.BindPFlag(config.KeyReportPath, f.Lookup("report"))
	_ = viper.BindPFlag(config.KeyReportFormat, f.Lookup("report-format"))
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an answer file",
	Long: `Validate a Windows answer file and write a validation report.

The file is checked for XML syntax, the windowsPE, specialize and
oobeSystem passes, component identity attributes, and settings of the
Shell-Setup, Remote Desktop and firewall components. First logon
commands are listed for review.

A report is written to unattend-validation-report.txt unless --no-report
is given. Use --report and --report-format to change it.

Exit codes:
  0 - No errors found
  1 - Validation failed
  2 - Usage error (missing file, bad flags or config)
  3 - System error (report could not be written)`,
	Example: `  unattend validate autounattend.xml
  unattend validate -d --report out/report.yaml --report-format yaml unattend.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if !fileutil.IsRegularFile(path) {
		return errors.NewUserError(errors.Wrapf(errors.ErrFileNotFound, "%s", path),
			"Check the path to the answer file")
	}

	result := engine.New().ValidateFile(ctx, path)

	format := validator.FormatText
	if validateJSON {
		format = validator.FormatJSON
	} else {
		logging.ConfigureColor(cmd.OutOrStdout())
	}
	reporter := validator.NewReporter(cmd.OutOrStdout(), format,
		validator.WithDetailed(cfg.Detailed))
	if err := reporter.Report(result); err != nil {
		return errors.NewSystemError(err, "")
	}

	if cfg.Report.Enabled && !validateNoReport {
		reportFormat, err := report.ParseFormat(cfg.Report.Format)
		if err != nil {
			return errors.NewUserError(err, "Valid report formats are text, json, yaml and toml")
		}
		writeCtx, cancel := context.WithTimeout(ctx, reportLockTimeout)
		defer cancel()
		if err := report.Write(writeCtx, cfg.Report.Path, reportFormat, result, now()); err != nil {
			return errors.NewSystemError(err, "Check that the report location is writable or pass --no-report")
		}
		logger.Info("report written", "path", cfg.Report.Path, "format", reportFormat)
		if !validateJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", cfg.Report.Path)
		}
	}

	if !result.Valid {
		return errors.NewExitError(errors.ErrValidationFailed, errors.ExitValidation)
	}
	return nil
}
