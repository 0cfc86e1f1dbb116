package tensor

import (
	"fmt"
	"io"
)

// Dense is an N-dimensional tensor stored as a flat row-major buffer.
//
// A Dense never changes shape and owns its buffer exclusively. Every
// operation returns a new tensor; none mutates its receiver.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{3, 4})
//	y, err := x.Reshape(tensor.Shape{2, 6})
type Dense[T Float] struct {
	shape   Shape
	strides []int
	data    []T
}

// newDense allocates a zero-filled tensor. The shape must already be valid.
func newDense[T Float](shape Shape) *Dense[T] {
	return &Dense[T]{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    make([]T, shape.NumElements()),
	}
}

// Shape returns a copy of the tensor's shape.
func (t *Dense[T]) Shape() Shape {
	return t.shape.Clone()
}

// Rank returns the number of dimensions.
func (t *Dense[T]) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Dense[T]) NumElements() int {
	return len(t.data)
}

// Strides returns a copy of the row-major strides.
func (t *Dense[T]) Strides() []int {
	return append([]int(nil), t.strides...)
}

// Data returns a copy of the flat buffer in row-major order.
func (t *Dense[T]) Data() []T {
	out := make([]T, len(t.data))
	copy(out, t.data)
	return out
}

// At returns the element at the given coordinates.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
//	v, err := t.At(1, 2) // Row 1, column 2
func (t *Dense[T]) At(coord ...int) (T, error) {
	offset, err := t.shape.FlatIndex(coord...)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.data[offset], nil
}

// Equal reports whether both tensors have the same shape and bitwise-equal
// values (NaN never equals NaN).
func (t *Dense[T]) Equal(other *Dense[T]) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the tensor.
func (t *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{
		shape:   t.shape.Clone(),
		strides: append([]int(nil), t.strides...),
		data:    t.Data(),
	}
}

// String returns a short description of the tensor.
func (t *Dense[T]) String() string {
	return fmt.Sprintf("Dense[%s]%s", typeName[T](), t.shape)
}

// Dump writes the flat buffer to w, one value per line.
func (t *Dense[T]) Dump(w io.Writer) error {
	for _, v := range t.data {
		if _, err := fmt.Fprintf(w, "%f\n", float64(v)); err != nil {
			return err
		}
	}
	return nil
}
