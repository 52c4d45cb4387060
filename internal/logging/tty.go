package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Anything exposing Fd() is checked.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI colour may be written to w.
// NO_COLOR and TERM=dumb disable colour even on a terminal.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

// ConfigureColor enables or disables fatih/color output for w.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}

func supportsColor(isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
