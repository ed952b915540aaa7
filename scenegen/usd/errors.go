package usd

import (
	"errors"
	"fmt"
)

var (
	// ErrDestination is the root of every output-path failure.
	ErrDestination = errors.New("invalid scene destination")
	// ErrPrimPath is the root of every malformed, duplicate or orphan prim path.
	ErrPrimPath = errors.New("invalid prim path")
	// ErrStageSealed is returned when a saved stage is modified or saved again.
	ErrStageSealed = errors.New("stage already saved")
	// ErrPrimKind is returned when a typed setter is called on the wrong kind of prim.
	ErrPrimKind = errors.New("wrong prim kind")
)

// DestinationError describes why a stage cannot be bound to or written at Path.
// Err, when set, is the underlying filesystem error.
type DestinationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DestinationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scene destination %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("scene destination %q: %s", e.Path, e.Reason)
}

func (e *DestinationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDestination}
	}
	return []error{ErrDestination, e.Err}
}

// PathError reports a prim path that cannot be defined.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("prim path %q: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() error {
	return ErrPrimPath
}
