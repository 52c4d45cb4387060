package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the console output format.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter writes a validation result to the console.
type Reporter struct {
	out      io.Writer
	format   Format
	detailed bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithDetailed prints every finding instead of only the summary.
func WithDetailed(detailed bool) ReporterOption {
	return func(r *Reporter) {
		r.detailed = detailed
	}
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		out:    out,
		format: format,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) error {
	if result.Valid {
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓ Validation PASSED:"), result.File)
	} else {
		fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗ Validation FAILED:"), result.File)
	}

	s := result.Summary()
	fmt.Fprintf(r.out, "  Errors:      %s\n", color.RedString("%d", s.Errors))
	fmt.Fprintf(r.out, "  Warnings:    %s\n", color.YellowString("%d", s.Warnings))
	fmt.Fprintf(r.out, "  Information: %s\n", color.CyanString("%d", s.Infos))

	if !r.detailed {
		return nil
	}

	r.printSection("Errors", result.Errors, color.FgRed)
	r.printSection("Warnings", result.Warnings, color.FgYellow)
	r.printSection("Information", result.Infos, color.FgCyan)

	return nil
}

func (r *Reporter) printSection(title string, findings []Finding, c color.Attribute) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s:\n", title)
	for _, f := range findings {
		r.printFinding(f, c)
	}
}

func (r *Reporter) printFinding(f Finding, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • [component] message (line N)
	var sb strings.Builder
	sb.WriteString("  • ")

	if f.Component != "" {
		sb.WriteString(printer("[" + f.Component + "]"))
		sb.WriteString(" ")
	}

	sb.WriteString(f.Message)

	if f.Line > 0 {
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" (line %d)", f.Line))
	}

	fmt.Fprintln(r.out, sb.String())
}
