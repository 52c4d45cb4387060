// Package errors provides error handling conventions for the unattend CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors so
// callers need a single import, defines sentinel errors for the failure
// conditions the CLI distinguishes, and an [ExitError] type that carries a
// process exit code and an optional suggestion.
//
// # Exit Codes
//
//   - ExitSuccess (0): the answer file passed validation
//   - ExitValidation (1): validation ran and recorded at least one error
//   - ExitUser (2): usage error (missing file, bad flag, bad config)
//   - ExitSystem (3): I/O failure outside validation (e.g. report not writable)
//
// # ExitError
//
//	err := unattenderrors.NewUserError(unattenderrors.ErrFileNotFound, "Check the path")
//	var exitErr *unattenderrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
