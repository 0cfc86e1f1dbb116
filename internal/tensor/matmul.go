package tensor

import (
	"time"

	"github.com/born-ml/spmm/internal/parallel"
	"github.com/born-ml/spmm/internal/sparse"
)

// MatMul multiplies t by other using the default worker pool.
// See MatMulWith.
func (t *Dense[T]) MatMul(other *Dense[T]) (*Dense[T], error) {
	return MatMulWith(t, other, parallel.DefaultConfig())
}

// MatMul multiplies left by right using the default worker pool.
func MatMul[T Float](left, right *Dense[T]) (*Dense[T], error) {
	return MatMulWith(left, right, parallel.DefaultConfig())
}

// MatMulWith multiplies left by right through the sparse path: left is
// converted to CSR and multiplied by the dense right operand.
//
//	[R, K] x [K, N] -> [R, N]
//	[B, R, K] x [K, N] -> [B, R, N]
//
// Preconditions, checked in order, each failing with a *ShapeError: right is
// 2D; left is 2D or 3D; left's last dimension equals right's first.
//
// Output rows are distributed over cfg's workers dynamically. The result is
// bit-identical for every worker count.
func MatMulWith[T Float](left, right *Dense[T], cfg parallel.Config) (*Dense[T], error) {
	if len(right.shape) != 2 {
		return nil, shapeErrorf("matmul", []Shape{left.shape, right.shape}, "right operand must be 2D")
	}
	if len(left.shape) != 2 && len(left.shape) != 3 {
		return nil, shapeErrorf("matmul", []Shape{left.shape, right.shape}, "left operand must be 2D or a batch of 2D tensors")
	}
	inner := left.shape[len(left.shape)-1]
	if inner != right.shape[0] {
		return nil, shapeErrorf("matmul", []Shape{left.shape, right.shape}, "inner dimensions differ (%d vs %d)", inner, right.shape[0])
	}

	start := time.Now()
	n := right.shape[1]

	var (
		mats     []*sparse.CSR[T]
		outShape Shape
	)
	if len(left.shape) == 2 {
		csr, err := left.Sparsify()
		if err != nil {
			return nil, err
		}
		mats = []*sparse.CSR[T]{csr}
		outShape = Shape{left.shape[0], n}
	} else {
		mats = left.sparsifyBatch()
		outShape = Shape{left.shape[0], left.shape[1], n}
	}

	out := newDense[T](outShape)
	sparse.MulDenseBatchInto(out.data, mats, right.data, n, cfg)

	if e := currentLogger().Debug(); e.Enabled() {
		nnz := 0
		for _, m := range mats {
			nnz += m.NNZ()
		}
		e.Stringer("left", left.shape).
			Stringer("right", right.shape).
			Int("nnz", nnz).
			Float64("density", float64(nnz)/float64(len(left.data))).
			Int("workers", cfg.Workers(outShape.NumElements()/n)).
			Dur("elapsed", time.Since(start)).
			Msg("sparse matmul")
	}
	return out, nil
}
