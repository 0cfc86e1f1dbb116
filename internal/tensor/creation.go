package tensor

import (
	"fmt"
	"math/rand"
)

// mustShape panics with a *ShapeError if shape has a non-positive dimension.
func mustShape(op string, shape Shape) {
	if err := shape.Validate(); err != nil {
		panic(shapeErrorf(op, []Shape{shape}, "%v", err))
	}
}

// Zeros creates a tensor filled with zeros.
// Panics with a *ShapeError if a dimension is not positive.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
func Zeros[T Float](shape Shape) *Dense[T] {
	mustShape("zeros", shape)
	return newDense[T](shape)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	t := tensor.Ones[float64](Shape{2, 3})
func Ones[T Float](shape Shape) *Dense[T] {
	return Full[T](shape, 1)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14)
func Full[T Float](shape Shape, value T) *Dense[T] {
	mustShape("full", shape)
	t := newDense[T](shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, shape Shape) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, shapeErrorf("from slice", []Shape{shape}, "%v", err)
	}
	if shape.NumElements() != len(data) {
		return nil, shapeErrorf("from slice", []Shape{shape}, "requires %d elements, but got %d", shape.NumElements(), len(data))
	}

	t := newDense[T](shape)
	copy(t.data, data)
	return t, nil
}

// FromIndices scatters values into a zero-filled tensor of the given shape.
//
// indices[i] is the coordinate of values[i]. When several coordinates
// coincide the later value wins.
//
// Example:
//
//	t, err := tensor.FromIndices(Shape{2, 2}, [][]int{{0, 1}, {1, 0}}, []float32{5, 7})
//	// [[0 5] [7 0]]
func FromIndices[T Float](shape Shape, indices [][]int, values []T) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, shapeErrorf("from indices", []Shape{shape}, "%v", err)
	}
	if len(indices) != len(values) {
		return nil, shapeErrorf("from indices", []Shape{shape}, "%d coordinates but %d values", len(indices), len(values))
	}

	t := newDense[T](shape)
	for i, coord := range indices {
		offset, err := shape.FlatIndex(coord...)
		if err != nil {
			return nil, fmt.Errorf("from indices: entry %d: %w", i, err)
		}
		t.data[offset] = values[i]
	}
	return t, nil
}

// Randn creates a tensor with values drawn from a standard normal
// distribution using rng.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
func Randn[T Float](shape Shape, rng *rand.Rand) *Dense[T] {
	mustShape("randn", shape)
	t := newDense[T](shape)
	for i := range t.data {
		t.data[i] = T(rng.NormFloat64())
	}
	return t
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
func Rand[T Float](shape Shape, rng *rand.Rand) *Dense[T] {
	mustShape("rand", shape)
	t := newDense[T](shape)
	for i := range t.data {
		t.data[i] = T(rng.Float64())
	}
	return t
}
