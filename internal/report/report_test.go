package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/internal/validator"
)

var generated = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleResult() *validator.Result {
	at := generated.Add(-time.Second)
	r := validator.NewResult("answers/autounattend.xml")
	r.XMLWellFormed = true
	r.SchemaValid = true
	r.Add(validator.NewFinding(validator.SeverityInfo, "", 0, "XML syntax validation passed", at))
	r.Add(validator.NewFinding(validator.SeverityError, "Microsoft-Windows-Shell-Setup", 14, "Administrator password is empty", at))
	r.Add(validator.NewFinding(validator.SeverityWarning, "settings", 0, "Missing configuration pass: specialize", at))
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderText(t *testing.T) {
	out := string(RenderText(NewDocument(sampleResult(), generated)))

	assert.Contains(t, out, "Generated: 2026-03-14T09:30:00Z")
	assert.Contains(t, out, "File: answers/autounattend.xml")
	assert.Contains(t, out, "Overall Status: FAIL")
	assert.Contains(t, out, "XML Well-Formed: Yes")
	assert.Contains(t, out, "Errors: 1\n")
	assert.Contains(t, out, "Warnings: 1\n")
	assert.Contains(t, out, "Information: 1\n")
	assert.Contains(t, out, "1. Component: Microsoft-Windows-Shell-Setup\n   Line: 14\n   Message: Administrator password is empty")
	assert.Contains(t, out, "1. Component: -\n   Message: XML syntax validation passed")

	errIdx := strings.Index(out, "ERRORS")
	warnIdx := strings.Index(out, "WARNINGS")
	infoIdx := strings.Index(out, "INFORMATION")
	assert.True(t, errIdx < warnIdx && warnIdx < infoIdx, "sections ordered by severity")
}

func TestRenderText_OmitsEmptySections(t *testing.T) {
	r := validator.NewResult("clean.xml")
	r.Add(validator.NewFinding(validator.SeverityInfo, "", 0, "XML syntax validation passed", generated))

	out := string(RenderText(NewDocument(r, generated)))

	assert.Contains(t, out, "Overall Status: PASS")
	assert.NotContains(t, out, "ERRORS")
	assert.NotContains(t, out, "WARNINGS")
	assert.Contains(t, out, "INFORMATION")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	t.Run("text", func(t *testing.T) {
		path := filepath.Join(dir, "report.txt")
		require.NoError(t, Write(t.Context(), path, FormatText, result, generated))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, RenderText(NewDocument(result, generated)), data)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "report.json")
		require.NoError(t, Write(t.Context(), path, FormatJSON, result, generated))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc Document
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "FAIL", doc.Status)
		assert.Equal(t, 1, doc.Summary.Errors)
		require.Len(t, doc.Result.Errors, 1)
		assert.Equal(t, validator.SeverityError, doc.Result.Errors[0].Severity)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "report.yaml")
		require.NoError(t, Write(t.Context(), path, FormatYAML, result, generated))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var raw map[string]any
		require.NoError(t, yaml.Unmarshal(data, &raw))
		assert.Equal(t, "FAIL", raw["status"])
		assert.Contains(t, string(data), "severity: error")
	})

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "report.toml")
		require.NoError(t, Write(t.Context(), path, FormatTOML, result, generated))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var raw map[string]any
		require.NoError(t, toml.Unmarshal(data, &raw))
		assert.Equal(t, "FAIL", raw["status"])
	})

	t.Run("creates parent directory", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "out", "report.txt")
		require.NoError(t, Write(t.Context(), path, FormatText, result, generated))
		assert.FileExists(t, path)
	})

	t.Run("overwrites previous report", func(t *testing.T) {
		path := filepath.Join(dir, "again.txt")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
		require.NoError(t, Write(t.Context(), path, FormatText, result, generated))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "stale")
	})
}

func TestWrite_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("nil result", func(t *testing.T) {
		require.Error(t, Write(t.Context(), filepath.Join(dir, "r.txt"), FormatText, nil, generated))
	})

	t.Run("unknown format", func(t *testing.T) {
		require.Error(t, Write(t.Context(), filepath.Join(dir, "r.txt"), Format("xml"), sampleResult(), generated))
	})

	t.Run("target is a directory", func(t *testing.T) {
		target := filepath.Join(dir, "occupied")
		require.NoError(t, os.Mkdir(target, 0o755))

		err := Write(t.Context(), target, FormatText, sampleResult(), generated)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrReportWrite))
	})
}
