package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as [d0 d1 ...].
func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// FlatIndex returns the row-major offset of coord.
//
// Example:
//
//	Shape{2, 3, 4}.FlatIndex(1, 2, 3) // 1*12 + 2*4 + 3 = 23
func (s Shape) FlatIndex(coord ...int) (int, error) {
	if len(coord) != len(s) {
		return 0, &IndexError{Coord: coord, Shape: s, Details: fmt.Sprintf("expected %d coordinates, got %d", len(s), len(coord))}
	}

	offset := 0
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		if coord[i] < 0 || coord[i] >= s[i] {
			return 0, &IndexError{Coord: coord, Shape: s, Details: fmt.Sprintf("coordinate %d out of bounds for dimension %d (size %d)", coord[i], i, s[i])}
		}
		offset += coord[i] * stride
		stride *= s[i]
	}
	return offset, nil
}

// Unravel converts a row-major offset back into coordinates by successive
// division by the strides.
func (s Shape) Unravel(flat int) ([]int, error) {
	if flat < 0 || flat >= s.NumElements() {
		return nil, &IndexError{Coord: []int{flat}, Shape: s, Details: fmt.Sprintf("flat offset out of range [0, %d)", s.NumElements())}
	}

	coord := make([]int, len(s))
	remaining := flat
	for i, stride := range s.ComputeStrides() {
		coord[i] = remaining / stride
		remaining %= stride
	}
	return coord, nil
}
