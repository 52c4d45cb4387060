package unattend

import (
	"fmt"

	"github.com/thoreinstein/unattend/internal/errors"
)

// ErrUnreadable marks failures to read the answer file from disk.
var ErrUnreadable = errors.New("answer file unreadable")

// ParseError reports an answer file that is not well-formed XML.
type ParseError struct {
	Path string // Path to the file, empty when parsing from memory
	Line int    // Line of the problem, 0 when unknown
	Err  error  // Underlying error
}

func (e *ParseError) Error() string {
	prefix := "parsing answer file"
	if e.Path != "" {
		prefix = fmt.Sprintf("parsing %s", e.Path)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", prefix, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
