package gwt

import (
	"errors"
	"fmt"
)

var (
	// ErrNilGraph is returned when writing a nil graph.
	ErrNilGraph = errors.New("gwt: nil graph")

	// ErrEmptyLayer is returned when the layer name is empty.
	ErrEmptyLayer = errors.New("gwt: empty layer name")

	// ErrEmptyPath is returned when the output path or blob name is empty.
	ErrEmptyPath = errors.New("gwt: empty path")

	// ErrMalformed is the sentinel wrapped by every *ParseError.
	ErrMalformed = errors.New("gwt: malformed file")

	errUnterminatedQuote = errors.New("unterminated quote")
)

// ErrIDCount is returned when the number of external ids does not match the
// number of observations.
type ErrIDCount struct {
	NumObs int
	IDs    int
}

func (e *ErrIDCount) Error() string {
	return fmt.Sprintf("gwt: %d ids for %d observations", e.IDs, e.NumObs)
}

// ErrUnknownID is returned when an edge references an id that is not in the
// id list passed to File.Graph.
type ErrUnknownID struct {
	ID int64
}

func (e *ErrUnknownID) Error() string {
	return fmt.Sprintf("gwt: unknown id %d", e.ID)
}

// ErrDuplicateID is returned when the id list passed to File.Graph repeats
// an id.
type ErrDuplicateID struct {
	ID int64
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("gwt: duplicate id %d", e.ID)
}

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gwt: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("gwt: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}
