package tensor

import "github.com/born-ml/spmm/internal/sparse"

// Sparsify converts a rank-2 tensor to compressed-row form.
//
// Elements are kept when they are exactly non-zero; there is no tolerance.
// The result is built fresh on every call and shares no memory with t.
func (t *Dense[T]) Sparsify() (*sparse.CSR[T], error) {
	if len(t.shape) != 2 {
		return nil, shapeErrorf("sparsify", []Shape{t.shape}, "expected a 2D tensor")
	}
	return sparse.FromDense(t.data, t.shape[0], t.shape[1]), nil
}

// sparsifyBatch converts each [R, C] slice of a [B, R, C] tensor.
func (t *Dense[T]) sparsifyBatch() []*sparse.CSR[T] {
	batch, rows, cols := t.shape[0], t.shape[1], t.shape[2]
	plane := rows * cols
	mats := make([]*sparse.CSR[T], batch)
	for b := range mats {
		mats[b] = sparse.FromDense(t.data[b*plane:(b+1)*plane], rows, cols)
	}
	return mats
}

// FromCSR scatters a compressed-row matrix back into a dense [Rows, Cols]
// tensor.
func FromCSR[T Float](m *sparse.CSR[T]) (*Dense[T], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return FromSlice(m.ToDense(), Shape{m.Rows, m.Cols})
}
