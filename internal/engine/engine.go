// Package engine runs a full validation pass over one answer file: load,
// check, aggregate. It never fails; problems with the file itself become
// findings so a report can always be produced.
package engine

import (
	"context"
	"time"

	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/internal/logging"
	"github.com/thoreinstein/unattend/internal/rules"
	"github.com/thoreinstein/unattend/internal/unattend"
	"github.com/thoreinstein/unattend/internal/validator"
)

// Option configures an Engine.
type Option func(*Engine)

// Engine validates answer files.
type Engine struct {
	now func() time.Time
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithClock sets the timestamp source for findings.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// ValidateFile loads path and validates it.
func (e *Engine) ValidateFile(ctx context.Context, path string) *validator.Result {
	logger := logging.FromContext(ctx).With("file", path)
	logger.Debug("loading answer file")

	doc, err := unattend.Load(path)
	if err != nil {
		result := validator.NewResult(path)
		e.recordLoadFailure(ctx, result, err)
		return result
	}

	return e.validate(ctx, path, doc)
}

// ValidateBytes validates an in-memory answer file. path is used for
// reporting only.
func (e *Engine) ValidateBytes(ctx context.Context, path string, data []byte) *validator.Result {
	doc, err := unattend.ParseBytes(data, path)
	if err != nil {
		result := validator.NewResult(path)
		e.recordLoadFailure(ctx, result, err)
		return result
	}
	return e.validate(ctx, path, doc)
}

func (e *Engine) recordLoadFailure(ctx context.Context, result *validator.Result, err error) {
	logger := logging.FromContext(ctx).With("file", result.File)
	result.XMLWellFormed = false
	result.SchemaValid = false

	var perr *unattend.ParseError
	if errors.As(err, &perr) {
		logger.Info("answer file is not well-formed", "line", perr.Line, "error", perr.Err.Error())
		result.Add(validator.NewFinding(validator.SeverityError, "", perr.Line,
			"XML syntax error: "+perr.Err.Error(), e.now()))
		return
	}

	logger.Warn("answer file could not be read", "error", err.Error())
	result.Add(validator.NewFinding(validator.SeverityError, "", 0,
		"Unable to read file: "+errors.UnwrapAll(err).Error(), e.now()))
}

func (e *Engine) validate(ctx context.Context, path string, doc *unattend.Document) *validator.Result {
	logger := logging.FromContext(ctx).With("file", path)
	result := validator.NewResult(path)

	result.XMLWellFormed = true
	result.Add(validator.NewFinding(validator.SeverityInfo, "", 0, "XML syntax validation passed", e.now()))

	checker := rules.New(rules.WithClock(e.now))

	structure := checker.CheckStructure(doc)
	result.Merge(structure)
	result.SchemaValid = !containsError(structure)
	logger.Debug("structure checked", "findings", len(structure), "schema_valid", result.SchemaValid)

	components := checker.CheckComponents(doc)
	result.Merge(components)
	logger.Debug("components checked", "components", len(doc.Components()), "findings", len(components))

	commands := checker.CheckFirstLogonCommands(doc)
	result.Merge(commands)
	logger.Debug("first logon commands checked", "findings", len(commands))

	s := result.Summary()
	logger.Log(ctx, logging.LevelTrace, "validation complete",
		"valid", result.Valid, "errors", s.Errors, "warnings", s.Warnings, "infos", s.Infos)

	return result
}

func containsError(findings []validator.Finding) bool {
	for _, f := range findings {
		if f.Severity == validator.SeverityError {
			return true
		}
	}
	return false
}
