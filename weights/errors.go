package weights

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when a KNN build asks for fewer than one neighbour.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrInvalidThreshold is returned for a negative or NaN threshold.
	ErrInvalidThreshold = errors.New("threshold must be a non-negative number")

	// ErrInvalidBandwidth is returned for a negative or NaN bandwidth.
	ErrInvalidBandwidth = errors.New("bandwidth must be a non-negative number")

	// ErrInvalidKernel is returned for an unknown kernel value.
	ErrInvalidKernel = errors.New("invalid kernel")

	// ErrAborted is wrapped by AbortError.
	ErrAborted = errors.New("weights build aborted")
)

// AbortError is returned when the overflow handler declines to continue a
// threshold build.
type AbortError struct {
	Obs        int // Observation whose candidate count triggered the guard
	Candidates int // Number of box-query candidates for Obs
	Limit      int // Configured candidate limit
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("weights build aborted: observation %d has %d candidates (limit %d)",
		e.Obs, e.Candidates, e.Limit)
}

func (e *AbortError) Unwrap() error {
	return ErrAborted
}

// ErrNeighborRange reports a neighbour index outside [0, NumObs).
type ErrNeighborRange struct {
	Row      int
	Neighbor int
	NumObs   int
}

func (e *ErrNeighborRange) Error() string {
	return fmt.Sprintf("row %d: neighbour %d out of range [0, %d)", e.Row, e.Neighbor, e.NumObs)
}

// ErrRowCount reports a graph whose row count differs from NumObs.
type ErrRowCount struct {
	NumObs int
	Rows   int
}

func (e *ErrRowCount) Error() string {
	return fmt.Sprintf("graph has %d rows for %d observations", e.Rows, e.NumObs)
}
