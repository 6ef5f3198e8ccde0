package nnscan

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch is returned when a batch has no vectors.
	ErrEmptyBatch = errors.New("batch must contain at least one vector")

	// ErrLaunchAborted is returned when a launch stops before every index
	// was scanned, e.g. because its context was canceled.
	ErrLaunchAborted = errors.New("launch aborted")
)

// ErrInvalidDimension indicates an unusable vector dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrDimensionMismatch indicates a vector whose length differs from the
// batch dimension.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at vector %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// ErrNonFinite indicates a NaN or infinite vector component.
type ErrNonFinite struct {
	Index     int
	Component int
	Value     float32
}

func (e *ErrNonFinite) Error() string {
	return fmt.Sprintf("non-finite value %v at vector %d, component %d", e.Value, e.Index, e.Component)
}

// ErrOutputSize indicates an output buffer whose length is not the batch size.
type ErrOutputSize struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ErrOutputSize) Error() string {
	return fmt.Sprintf("output %s has length %d, expected %d", e.Name, e.Actual, e.Expected)
}

// ErrLaneFailed reports that a lane crashed while scanning [Lo, Hi).
// The whole launch is considered failed.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrLaneFailed struct {
	Lo, Hi int
	Value  any
	cause  error
}

func (e *ErrLaneFailed) Error() string {
	return fmt.Sprintf("lane failed scanning [%d, %d): %v", e.Lo, e.Hi, e.Value)
}

func (e *ErrLaneFailed) Unwrap() error { return e.cause }
