// Package rules implements the answer file checks. Every check is a pure
// function of the parsed document that returns its findings in order; the
// caller merges them into a validator.Result.
package rules

import (
	"fmt"
	"time"

	"github.com/thoreinstein/unattend/internal/unattend"
	"github.com/thoreinstein/unattend/internal/validator"
)

// RequiredPasses are the configuration passes every answer file is expected to carry.
var RequiredPasses = []string{"windowsPE", "specialize", "oobeSystem"}

// Option configures a Checker.
type Option func(*Checker)

// Checker runs the rule set against a document.
type Checker struct {
	now func() time.Time
}

// New creates a Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithClock sets the timestamp source for findings.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.now = now
		}
	}
}

// Check runs every rule in order and returns the combined findings.
func (c *Checker) Check(doc *unattend.Document) []validator.Finding {
	var out []validator.Finding
	out = append(out, c.CheckStructure(doc)...)
	out = append(out, c.CheckComponents(doc)...)
	out = append(out, c.CheckFirstLogonCommands(doc)...)
	return out
}

func (c *Checker) finding(sev validator.Severity, component string, el *unattend.Element, format string, args ...any) validator.Finding {
	line := 0
	if el != nil {
		line = el.Line
	}
	return validator.NewFinding(sev, component, line, fmt.Sprintf(format, args...), c.now())
}

func (c *Checker) errorf(component string, el *unattend.Element, format string, args ...any) validator.Finding {
	return c.finding(validator.SeverityError, component, el, format, args...)
}

func (c *Checker) warnf(component string, el *unattend.Element, format string, args ...any) validator.Finding {
	return c.finding(validator.SeverityWarning, component, el, format, args...)
}

func (c *Checker) infof(component string, el *unattend.Element, format string, args ...any) validator.Finding {
	return c.finding(validator.SeverityInfo, component, el, format, args...)
}
