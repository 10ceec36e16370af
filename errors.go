package fingerpaint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPrecondition reports a resolution request with more touches
	// than tracked fingers. It means the input source lost a start event;
	// the finger set cannot be repaired by guessing.
	ErrInvalidPrecondition = errors.New("fingerpaint: more touches than tracked fingers")

	// ErrMalformedInput reports an event that is rejected before it reaches
	// the resolver: an empty batch, a non-finite coordinate, an unknown event
	// kind, or an undecodable event record.
	ErrMalformedInput = errors.New("fingerpaint: malformed input")
)

// PreconditionError describes a rejected resolution.
// It unwraps to ErrInvalidPrecondition.
type PreconditionError struct {
	// Op is the lifecycle operation that needed the resolution
	// ("move", "end", "cancel" or "resolve").
	Op string

	// Touches is the size of the offending batch.
	Touches int

	// Fingers is the number of fingers tracked at the time.
	Fingers int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("fingerpaint: %s: %d touches but only %d tracked fingers", e.Op, e.Touches, e.Fingers)
}

func (e *PreconditionError) Unwrap() error { return ErrInvalidPrecondition }

// MalformedInputError describes a rejected event.
// It unwraps to ErrMalformedInput.
type MalformedInputError struct {
	// Index is the offending point within the batch, or -1 when the
	// fault concerns the event as a whole.
	Index int

	// Reason is a short human-readable description.
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Index < 0 {
		return "fingerpaint: malformed input: " + e.Reason
	}
	return fmt.Sprintf("fingerpaint: malformed input: point %d: %s", e.Index, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }
