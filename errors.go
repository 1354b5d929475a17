package jsontable

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("malformed tabular json")

	// ErrIndexOutOfRange is matched by every *IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrClosed is returned when writing to a closed Writer.
	ErrClosed = errors.New("jsontable: writer is closed")
)

// A ParseError is returned when the input is not a JSON array of objects.
// Line and Col are 1-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at L%d,C%d: %s", e.Line, e.Col, e.Msg)
}

func (e *ParseError) Unwrap() error        { return e.Err }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// An IndexError is returned when a column ordinal is outside [0, Count).
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("column index %d out of range [0, %d)", e.Index, e.Count)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }
