package changelog

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

// ParseError reports a candidate file that is not well-formed XML.
// It matches both lqcheck.ErrMalformedChangelog and the underlying cause with errors.Is.
type ParseError struct {
	Path string // file being parsed (may be empty)
	Line int    // 1-based line number, 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	location := e.Path
	if location == "" {
		location = "<input>"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}
	return fmt.Sprintf("malformed changelog %s: %v", location, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{lqcheck.ErrMalformedChangelog, e.Err}
}

// newParseError converts decoder errors into a ParseError, keeping the
// syntax error's own line number when it has one.
func newParseError(path string, line int, err error) *ParseError {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Path: path, Line: syntaxErr.Line, Err: errors.New(syntaxErr.Msg)}
	}
	return &ParseError{Path: path, Line: line, Err: err}
}
