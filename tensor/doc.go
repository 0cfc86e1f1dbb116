// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense N-dimensional tensors with a sparse-path
// matrix multiply.
//
// # Overview
//
// This package provides:
//   - Dense[T] tensors over float32 or float64, stored row-major
//   - Reshape and transpose (2D and batched 2D)
//   - Elementwise arithmetic without broadcasting
//   - MatMul, which compresses the left operand to CSR and multiplies it by
//     the dense right operand in parallel
//
// # Basic Usage
//
//	import "github.com/born-ml/spmm/tensor"
//
//	func main() {
//	    x, _ := tensor.FromSlice([]float32{1, 0, 2, 0, 0, 3}, tensor.Shape{2, 3})
//	    w := tensor.Ones[float32](tensor.Shape{3, 2})
//
//	    y, err := x.MatMul(w) // [[3 3] [3 3]]
//	}
//
// # Sparse Path
//
// Every MatMul converts its left operand to compressed-row form before
// multiplying. Nothing is cached: a tensor used twice is converted twice.
// The conversion keeps every element that is exactly non-zero, so inputs
// produced by a ReLU-style gate multiply in time proportional to their
// non-zero count.
//
// Output rows are handed out to a bounded worker pool one small group at a
// time. Each output row is owned by one worker and accumulated in a fixed
// order, so results are bit-identical for any worker count.
//
// # Errors
//
// Shape problems return a *ShapeError (errors.Is(err, ErrShape)); bad
// coordinates return an *IndexError (errors.Is(err, ErrIndex)). Failed
// operations have no side effects.
//
// # Value Semantics
//
// Tensors never change shape and every operation returns a new tensor that
// owns its buffer. Shape and Data return copies.
package tensor
