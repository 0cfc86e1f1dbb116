// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/spmm/internal/parallel"
	"github.com/born-ml/spmm/internal/sparse"
	"github.com/born-ml/spmm/internal/tensor"
)

// Type aliases for public API

// Float is a constraint for tensor element types (float32, float64).
type Float = tensor.Float

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Dense is a row-major N-dimensional tensor.
type Dense[T Float] = tensor.Dense[T]

// CSR is a compressed-row matrix produced by Dense.Sparsify.
type CSR[T Float] = sparse.CSR[T]

// Config controls the worker pool used by MatMulWith and TransposeWith.
type Config = parallel.Config

// ShapeError reports a mismatch between expected and actual shapes.
type ShapeError = tensor.ShapeError

// IndexError reports an out-of-bounds or wrong-arity coordinate.
type IndexError = tensor.IndexError

// Sentinel errors for errors.Is.
var (
	ErrShape = tensor.ErrShape
	ErrIndex = tensor.ErrIndex
)

// DefaultConfig returns the default worker pool configuration.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// Sequential returns a configuration that runs on the calling goroutine.
func Sequential() Config {
	return parallel.Sequential()
}

// Zeros creates a tensor filled with zeros.
func Zeros[T Float](shape Shape) *Dense[T] {
	return tensor.Zeros[T](shape)
}

// Ones creates a tensor filled with ones.
func Ones[T Float](shape Shape) *Dense[T] {
	return tensor.Ones[T](shape)
}

// Full creates a tensor filled with value.
func Full[T Float](shape Shape, value T) *Dense[T] {
	return tensor.Full[T](shape, value)
}

// FromSlice creates a tensor from a copy of data.
func FromSlice[T Float](data []T, shape Shape) (*Dense[T], error) {
	return tensor.FromSlice(data, shape)
}

// FromIndices scatters values at coordinates into a zero-filled tensor.
// Later entries win on duplicate coordinates.
func FromIndices[T Float](shape Shape, indices [][]int, values []T) (*Dense[T], error) {
	return tensor.FromIndices(shape, indices, values)
}

// FromCSR expands a compressed-row matrix into a dense 2D tensor.
func FromCSR[T Float](m *CSR[T]) (*Dense[T], error) {
	return tensor.FromCSR(m)
}

// FromMat copies a gonum matrix into a 2D tensor.
func FromMat[T Float](m mat.Matrix) *Dense[T] {
	return tensor.FromMat[T](m)
}

// Randn creates a tensor of standard normal samples drawn from rng.
func Randn[T Float](shape Shape, rng *rand.Rand) *Dense[T] {
	return tensor.Randn[T](shape, rng)
}

// Rand creates a tensor of uniform [0, 1) samples drawn from rng.
func Rand[T Float](shape Shape, rng *rand.Rand) *Dense[T] {
	return tensor.Rand[T](shape, rng)
}

// MatMul multiplies left by right through the sparse path.
func MatMul[T Float](left, right *Dense[T]) (*Dense[T], error) {
	return tensor.MatMul(left, right)
}

// MatMulWith is MatMul with an explicit worker pool configuration.
func MatMulWith[T Float](left, right *Dense[T], cfg Config) (*Dense[T], error) {
	return tensor.MatMulWith(left, right, cfg)
}

// SetLogger installs the logger used for debug events.
func SetLogger(l zerolog.Logger) {
	tensor.SetLogger(l)
}
