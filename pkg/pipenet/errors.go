package pipenet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/pipenet/pkg/grid"
)

// Common sentinel errors
var (
	ErrInvalidState    = errors.New("invalid segment state")
	ErrCollision       = errors.New("cell already holds an anchored segment")
	ErrSegmentNotFound = errors.New("segment not found")
	ErrInvalidFacing   = grid.ErrInvalidFacing
)

// PipeError provides structured error information for segment operations.
type PipeError struct {
	Op       string     // Operation that failed (e.g., "attach", "detach")
	Segment  SegmentID  // Segment the operation was applied to
	Position grid.Point // Cell involved
	HasPos   bool
	Other    SegmentID // Conflicting segment, for collisions
	Cause    error     // Underlying error
	Context  string    // Additional context
}

// Error implements the error interface.
func (e *PipeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Segment != 0 {
		fmt.Fprintf(&b, " segment %d", e.Segment)
	}
	if e.HasPos {
		fmt.Fprintf(&b, " at %s", e.Position)
	}
	if e.Other != 0 {
		fmt.Fprintf(&b, " (occupied by segment %d)", e.Other)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " (%s)", e.Context)
	}
	fmt.Fprintf(&b, ": %v", e.Cause)
	return b.String()
}

// Unwrap returns the underlying cause for error chain support.
func (e *PipeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *PipeError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building PipeErrors.
type ErrorBuilder struct {
	err PipeError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: PipeError{Op: op}}
}

// Segment sets the segment the error refers to.
func (b *ErrorBuilder) Segment(id SegmentID) *ErrorBuilder {
	b.err.Segment = id
	return b
}

// At sets the cell involved.
func (b *ErrorBuilder) At(p grid.Point) *ErrorBuilder {
	b.err.Position = p
	b.err.HasPos = true
	return b
}

// Other sets the conflicting segment.
func (b *ErrorBuilder) Other(id SegmentID) *ErrorBuilder {
	b.err.Other = id
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// InvalidStateError reports an operation applied to a segment in the wrong
// anchored state.
func InvalidStateError(op string, s *Segment) error {
	ctx := "unanchored"
	if s.anchored {
		ctx = "anchored"
	}
	return NewError(op).Segment(s.ID).Context(ctx).Cause(ErrInvalidState).Err()
}

// CollisionError reports an attach into a cell that already holds an
// anchored, axis-compatible segment.
func CollisionError(s, occupant *Segment) error {
	return NewError("attach").Segment(s.ID).At(s.Position).Other(occupant.ID).Cause(ErrCollision).Err()
}

// SegmentNotFoundError reports an unknown or despawned segment handle.
func SegmentNotFoundError(op string, id SegmentID) error {
	return NewError(op).Segment(id).Cause(ErrSegmentNotFound).Err()
}

// IsCollision returns true if the error is a collision error.
func IsCollision(err error) bool {
	return errors.Is(err, ErrCollision)
}

// IsInvalidState returns true if the error is an invalid state error.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsNotFound returns true if the error refers to an unknown segment.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSegmentNotFound)
}

// InvariantViolation is the panic value raised when the graph discovers
// internal inconsistency. It is a programming error, never a normal failure.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("pipenet invariant violated during %s: %s", v.Op, v.Detail)
}

func violation(op, format string, args ...any) {
	panic(&InvariantViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
