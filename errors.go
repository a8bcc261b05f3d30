package capgains

import (
	"errors"
	"fmt"

	"github.com/etnz/capgains/date"
)

// Sentinel causes carried by the typed errors below. Use errors.Is to test for them.
var (
	ErrHeaderNotFound  = errors.New("header not found")
	ErrUnknownValue    = errors.New("unknown value")
	ErrUnmappableByte  = errors.New("byte not representable in source encoding")
	ErrAmbiguousTime   = date.ErrAmbiguous
	ErrNonexistentTime = date.ErrNonexistent
	ErrDivisionByZero  = errors.New("division by zero")
	ErrMissingData     = errors.New("missing data")
)

// LoadError reports that the source of orders could not be read at all.
// Path is empty when the orders come from a stream rather than a file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load error: failed to read input: %v", e.Err)
	}
	return fmt.Sprintf("load error: failed to open file %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports content that could be read but not understood.
//
// Line is the 1-based line of the decoded input, or 0 when the failure is not
// tied to a line. Field and Value are set when a single field is at fault.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": invalid %s %q", e.Field, e.Value)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// CalcError reports an inconsistency found while aggregating orders.
type CalcError struct {
	Instrument string
	Err        error
}

func (e *CalcError) Error() string {
	if e.Instrument == "" {
		return "calculation error: " + e.Err.Error()
	}
	return fmt.Sprintf("calculation error: instrument %q: %v", e.Instrument, e.Err)
}

func (e *CalcError) Unwrap() error { return e.Err }

// fieldError is a short hand for a ParseError on a single field.
func fieldError(field, value string, err error) *ParseError {
	return &ParseError{Field: field, Value: value, Err: err}
}
