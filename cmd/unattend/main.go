// Package main is the entry point for the unattend CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/unattend/cmd/unattend/commands"
	"github.com/thoreinstein/unattend/internal/errors"
)

func main() {
	err := commands.Execute()
	code := errors.ExitCode(err)

	// A failed validation has already been reported.
	if err != nil && !errors.Is(err, errors.ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", exitErr.Suggestion)
		}
	}

	os.Exit(code)
}
