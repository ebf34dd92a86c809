package geoweights

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geoweights/gwt"
	"github.com/hupe1980/geoweights/index"
	"github.com/hupe1980/geoweights/weights"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = weights.ErrInvalidK

	// ErrInvalidThreshold is returned for a negative or NaN threshold.
	ErrInvalidThreshold = weights.ErrInvalidThreshold

	// ErrInvalidBandwidth is returned for a negative or NaN bandwidth.
	ErrInvalidBandwidth = weights.ErrInvalidBandwidth

	// ErrInvalidKernel is returned for an unknown kernel.
	ErrInvalidKernel = weights.ErrInvalidKernel

	// ErrAborted is returned when the overflow handler stops a threshold build.
	ErrAborted = weights.ErrAborted

	// ErrNilGraph, ErrEmptyLayer and ErrEmptyPath are returned by Save
	// when a precondition fails. Nothing is written in that case.
	ErrNilGraph   = gwt.ErrNilGraph
	ErrEmptyLayer = gwt.ErrEmptyLayer
	ErrEmptyPath  = gwt.ErrEmptyPath

	// ErrInvalidConfig is wrapped by every *ErrConfig.
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrLengthMismatch reports coordinate arrays of different length.
type ErrLengthMismatch = index.ErrLengthMismatch

// ErrConfig describes an invalid configuration field.
type ErrConfig struct {
	Field  string
	Reason string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

func (e *ErrConfig) Unwrap() error { return ErrInvalidConfig }
