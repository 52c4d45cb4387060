package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates the answer file passed validation.
	ExitSuccess = 0

	// ExitValidation indicates validation completed with at least one error finding.
	ExitValidation = 1

	// ExitUser indicates a usage error (missing input, invalid flags or configuration).
	ExitUser = 2

	// ExitSystem indicates a system error (I/O, permissions).
	ExitSystem = 3
)

// Sentinel errors for common failure conditions.
var (
	// ErrFileNotFound indicates the answer file to validate does not exist.
	ErrFileNotFound = crdb.New("file not found")

	// ErrValidationFailed indicates the answer file has error findings.
	ErrValidationFailed = crdb.New("validation failed")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrReportWrite indicates the persisted report could not be written.
	ErrReportWrite = crdb.New("report could not be written")
)

// Helpers forwarded from github.com/cockroachdb/errors.
var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	Is        = crdb.Is
	As        = crdb.As
	UnwrapAll = crdb.UnwrapAll
	Mark      = crdb.Mark
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError for a configuration problem.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        crdb.Mark(err, ErrInvalidConfig),
		Code:       ExitUser,
		Suggestion: "Check the config file or pass --config with a valid path",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code that err maps to.
// nil maps to ExitSuccess, an ExitError to its own code, anything else to ExitSystem.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}
