package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/internal/paths"
	"github.com/thoreinstein/unattend/internal/validator"
	"github.com/thoreinstein/unattend/pkg/fileutil"
)

// DefaultFilename is the report written when no path is configured.
const DefaultFilename = "unattend-validation-report.txt"

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat converts s to a Format. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	default:
		return "", errors.Newf("unsupported report format %q (want text, json, yaml or toml)", s)
	}
}

// Document is the structured form of a persisted report.
type Document struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
	Status      string            `json:"status" yaml:"status" toml:"status"`
	Summary     validator.Summary `json:"summary" yaml:"summary" toml:"summary"`
	Result      *validator.Result `json:"result" yaml:"result" toml:"result"`
}

// NewDocument captures result as of generatedAt.
func NewDocument(result *validator.Result, generatedAt time.Time) Document {
	return Document{
		GeneratedAt: generatedAt,
		Status:      result.Status(),
		Summary:     result.Summary(),
		Result:      result,
	}
}

// Write renders result in format and atomically replaces the file at path.
// Concurrent writers of the same path are serialized with an advisory lock.
func Write(ctx context.Context, path string, format Format, result *validator.Result, generatedAt time.Time) error {
	if result == nil {
		return errors.New("report: nil result")
	}
	if err := paths.EnsureParentDir(path); err != nil {
		return errors.Mark(err, errors.ErrReportWrite)
	}

	doc := NewDocument(result, generatedAt)

	var write func() error
	switch format {
	case FormatText, "":
		write = func() error {
			return fileutil.AtomicWriteFile(path, RenderText(doc), fileutil.DefaultFilePerm)
		}
	case FormatJSON:
		write = func() error { return fileutil.AtomicWriteJSON(path, doc) }
	case FormatYAML:
		write = func() error { return fileutil.AtomicWriteYAML(path, doc) }
	case FormatTOML:
		data, err := toml.Marshal(doc)
		if err != nil {
			return errors.Wrap(err, "encoding TOML report")
		}
		write = func() error { return fileutil.AtomicWriteFile(path, data, fileutil.DefaultFilePerm) }
	default:
		return errors.Newf("unsupported report format %q", format)
	}

	if err := fileutil.WithLock(ctx, path, write); err != nil {
		return errors.Mark(errors.Wrapf(err, "writing %s report to %s", format, path), errors.ErrReportWrite)
	}
	return nil
}

const rule = "================================================================================"

// RenderText produces the human-readable report.
func RenderText(doc Document) []byte {
	var b bytes.Buffer
	r := doc.Result

	fmt.Fprintln(&b, "Windows Unattend.xml Validation Report")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Generated: %s\n", doc.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "File: %s\n", r.File)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SUMMARY")
	fmt.Fprintln(&b, "-------")
	fmt.Fprintf(&b, "Overall Status: %s\n", doc.Status)
	fmt.Fprintf(&b, "XML Well-Formed: %s\n", yesNo(r.XMLWellFormed))
	fmt.Fprintf(&b, "Schema Valid: %s\n", yesNo(r.SchemaValid))
	fmt.Fprintf(&b, "Errors: %d\n", doc.Summary.Errors)
	fmt.Fprintf(&b, "Warnings: %d\n", doc.Summary.Warnings)
	fmt.Fprintf(&b, "Information: %d\n", doc.Summary.Infos)

	writeSection(&b, "ERRORS", r.Errors)
	writeSection(&b, "WARNINGS", r.Warnings)
	writeSection(&b, "INFORMATION", r.Infos)

	return b.Bytes()
}

func writeSection(b *bytes.Buffer, title string, findings []validator.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b, title)
	fmt.Fprintln(b, strings.Repeat("-", len(title)))
	for i, f := range findings {
		component := f.Component
		if component == "" {
			component = "-"
		}
		fmt.Fprintf(b, "%d. Component: %s\n", i+1, component)
		if f.Line > 0 {
			fmt.Fprintf(b, "   Line: %d\n", f.Line)
		}
		fmt.Fprintf(b, "   Message: %s\n", f.Message)
		fmt.Fprintf(b, "   Time: %s\n", f.Timestamp.Format(time.RFC3339))
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
