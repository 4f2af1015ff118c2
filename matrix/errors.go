package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when a query sequence is empty.
	ErrEmptyQuery = errors.New("query sequence is empty")

	// ErrNotSquare is returned when a PSSM-only conversion is requested on a
	// matrix that is already position-specific.
	ErrNotSquare = errors.New("matrix is not square")
)

// ErrUnknownMatrixName indicates a builtin registry lookup miss.
type ErrUnknownMatrixName struct {
	Name string
}

func (e *ErrUnknownMatrixName) Error() string {
	return fmt.Sprintf("unknown matrix name: %q", e.Name)
}

// ErrInvalidAlphabet indicates an empty alphabet or duplicate symbols.
type ErrInvalidAlphabet struct {
	Alphabet []byte
	Reason   string
}

func (e *ErrInvalidAlphabet) Error() string {
	return fmt.Sprintf("invalid alphabet %q: %s", e.Alphabet, e.Reason)
}

// ErrDimensionMismatch indicates that PSSM values do not cover rows*alphabet
// cells.
type ErrDimensionMismatch struct {
	Rows     int
	Alphabet int
	Values   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: %d rows * %d symbols != %d values", e.Rows, e.Alphabet, e.Values)
}

// ErrIndexOutOfBounds indicates a Value/SetValue access outside the valid
// range.
type ErrIndexOutOfBounds struct {
	Row, Col  int
	Dimension int
}

func (e *ErrIndexOutOfBounds) Error() string {
	return fmt.Sprintf("index (%d,%d) out of bounds for dimension %d", e.Row, e.Col, e.Dimension)
}

// ErrParse indicates a matrix file parse failure at a specific line.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ErrParse struct {
	Path  string
	Line  int
	Msg   string
	cause error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("parse %s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *ErrParse) Unwrap() error { return e.cause }
