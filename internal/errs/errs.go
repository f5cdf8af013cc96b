// Package errs holds the error categories shared by the reader, the
// extractor, the renderers and the front ends.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Categories. Match them with errors.Is; context is added with
// errors.Wrap and friends.
var (
	ErrFileAccess        = errors.New("file access error")
	ErrMalformedInput    = errors.New("malformed input")
	ErrParse             = errors.New("parse error")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInsufficientData  = errors.New("insufficient data")
	ErrMissingData       = errors.New("missing data")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// CellError reports a cell that could not be read as a number.
// Row is the index into the data region (row 0 is the units row),
// Line is the 1-based line in the source file and Column is the
// 0-based column offset.
type CellError struct {
	Row    int
	Line   int
	Column int
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d (line %d), column %d: cannot parse %q as a number", e.Row, e.Line, e.Column, e.Value)
}

func (e *CellError) Unwrap() error { return e.Err }

// Is makes every CellError match ErrParse.
func (e *CellError) Is(target error) bool { return target == ErrParse }

// Title returns a short user-facing category for err.
func Title(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFileAccess):
		return "File access error"
	case errors.Is(err, ErrMalformedInput):
		return "Malformed input"
	case errors.Is(err, ErrParse):
		return "Parse error"
	case errors.Is(err, ErrInvalidParameter):
		return "Invalid parameter"
	case errors.Is(err, ErrInsufficientData):
		return "Insufficient data"
	case errors.Is(err, ErrMissingData):
		return "Missing data"
	case errors.Is(err, ErrUnsupportedFormat):
		return "Unsupported format"
	}
	return "Error"
}
