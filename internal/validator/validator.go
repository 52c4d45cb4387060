package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Severity represents the impact of a finding.
type Severity int

const (
	// SeverityError indicates a finding that fails validation.
	SeverityError Severity = iota
	// SeverityWarning indicates a risky but non-blocking configuration.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name so every report format shows
// "error" rather than 0.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", string(text))
	}
	return nil
}

// Finding is a single validation observation.
type Finding struct {
	// Message is a human-readable description.
	Message string `json:"message" yaml:"message" toml:"message"`
	// Severity classifies the finding.
	Severity Severity `json:"severity" yaml:"severity" toml:"severity"`
	// Component is the originating component or element name (optional).
	Component string `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`
	// Line is the source line in the answer file, 0 when unknown.
	Line int `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
	// Timestamp records when the finding was created.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

// NewFinding creates a finding stamped with at.
func NewFinding(severity Severity, component string, line int, message string, at time.Time) Finding {
	return Finding{
		Message:   message,
		Severity:  severity,
		Component: component,
		Line:      line,
		Timestamp: at,
	}
}

// String formats the finding as "severity: [component] message (line N)".
func (f Finding) String() string {
	var sb strings.Builder
	sb.WriteString(f.Severity.String())
	sb.WriteString(": ")
	if f.Component != "" {
		sb.WriteString("[")
		sb.WriteString(f.Component)
		sb.WriteString("] ")
	}
	sb.WriteString(f.Message)
	if f.Line > 0 {
		fmt.Fprintf(&sb, " (line %d)", f.Line)
	}
	return sb.String()
}

// Summary counts findings by severity.
type Summary struct {
	Errors   int `json:"errors" yaml:"errors" toml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings" toml:"warnings"`
	Infos    int `json:"infos" yaml:"infos" toml:"infos"`
}

// Result aggregates the findings for one answer file.
type Result struct {
	File          string    `json:"file" yaml:"file" toml:"file"`
	Valid         bool      `json:"valid" yaml:"valid" toml:"valid"`
	XMLWellFormed bool      `json:"xml_well_formed" yaml:"xml_well_formed" toml:"xml_well_formed"`
	SchemaValid   bool      `json:"schema_valid" yaml:"schema_valid" toml:"schema_valid"`
	Errors        []Finding `json:"errors" yaml:"errors" toml:"errors"`
	Warnings      []Finding `json:"warnings" yaml:"warnings" toml:"warnings"`
	Infos         []Finding `json:"infos" yaml:"infos" toml:"infos"`
}

// NewResult returns an empty, valid result for file.
func NewResult(file string) *Result {
	return &Result{
		File:  file,
		Valid: true,
	}
}

// Add appends a finding to the slice for its severity.
// An error finding marks the result invalid permanently.
func (r *Result) Add(f Finding) {
	switch f.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, f)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, f)
	default:
		r.Infos = append(r.Infos, f)
	}
}

// Merge appends findings in order.
func (r *Result) Merge(findings []Finding) {
	for _, f := range findings {
		r.Add(f)
	}
}

// HasErrors returns true if any error finding was recorded.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return len(r.Errors) > 0
}

// HasWarnings returns true if any warning finding was recorded.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return len(r.Warnings) > 0
}

// Findings returns errors, then warnings, then infos.
func (r *Result) Findings() []Finding {
	if r == nil {
		return nil
	}
	all := make([]Finding, 0, len(r.Errors)+len(r.Warnings)+len(r.Infos))
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)
	all = append(all, r.Infos...)
	return all
}

// Summary returns the per-severity counts.
func (r *Result) Summary() Summary {
	if r == nil {
		return Summary{}
	}
	return Summary{
		Errors:   len(r.Errors),
		Warnings: len(r.Warnings),
		Infos:    len(r.Infos),
	}
}

// Status returns "PASS" or "FAIL".
func (r *Result) Status() string {
	if r != nil && r.Valid {
		return "PASS"
	}
	return "FAIL"
}
