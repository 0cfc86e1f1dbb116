package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by errors.Is.
var (
	ErrShape = errors.New("shape error")
	ErrIndex = errors.New("index error")
)

// ShapeError reports a mismatch between expected and actual shapes.
type ShapeError struct {
	Op      string  // Operation that rejected its operands (e.g. "matmul").
	Shapes  []Shape // Offending shapes, in operand order.
	Details string  // What was expected.
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if len(e.Shapes) == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Details)
	}
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, strings.Join(parts, ", "), e.Details)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// IndexError reports an out-of-bounds or wrong-arity coordinate.
type IndexError struct {
	Coord   []int
	Shape   Shape
	Details string
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %v for shape %s: %s", e.Coord, e.Shape, e.Details)
}

// Is reports whether target is ErrIndex.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

func shapeErrorf(op string, shapes []Shape, format string, args ...any) *ShapeError {
	return &ShapeError{Op: op, Shapes: shapes, Details: fmt.Sprintf(format, args...)}
}
