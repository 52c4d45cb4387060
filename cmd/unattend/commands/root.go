// Package commands implements the CLI commands for unattend.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/unattend/cmd"
	"github.com/thoreinstein/unattend/internal/config"
	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given: 1/true for debug, 2 for trace.
const debugEnv = "UNATTEND_DEBUG"

var (
	verbosity  int
	quiet      bool
	logFormat  string
	logFile    string
	configFile string

	// cfg and configLoadErr are populated by initConfig before any command runs.
	cfg           *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error log output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then the user config directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("unattend version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	bindValidateFlags()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "unattend",
	Short: "Validate Windows unattend.xml answer files",
	Long: `unattend checks Windows Setup answer files (unattend.xml,
autounattend.xml) before they are used to build or deploy an image.

It verifies that the file is well-formed XML, that the expected
configuration passes are present, that every component carries its
identity attributes, and flags risky settings such as plain-text
administrator passwords, incomplete AutoLogon, disabled firewall
profiles and remote-access first logon commands.`,
	Example: `  # Validate an answer file and write the default report
  unattend validate autounattend.xml

  # Show every finding
  unattend validate -d autounattend.xml

  # Machine-readable output for CI, no report file
  unattend validate --json --no-report autounattend.xml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default and context logger from the global flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"Use either -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	var primary slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primary = logging.NewJSONHandler(cmd.ErrOrStderr(), level)
	case logging.FormatText:
		primary = logging.NewHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	default:
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat),
			"Valid log formats are text and json")
	}

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"),
				"Check that the --log-file directory exists and is writable")
		}
		handler = logging.NewMultiHandler(primary, logging.NewJSONHandler(f, level))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load errors for commands that use the config.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command. Errors that do not carry an exit code
// come from argument or flag parsing and are reported as usage errors.
func Execute() error {
	return normalize(rootCmd.Execute())
}

func normalize(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return errors.NewUserError(err, "Run 'unattend --help' for usage")
}
