package tensor

import "github.com/born-ml/spmm/internal/parallel"

// Reshape returns a tensor with the same row-major data and a new shape.
// The result owns a copy of the buffer.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 6})
//	y, err := x.Reshape(Shape{3, 4})
func (t *Dense[T]) Reshape(newShape Shape) (*Dense[T], error) {
	if err := newShape.Validate(); err != nil {
		return nil, shapeErrorf("reshape", []Shape{t.shape, newShape}, "%v", err)
	}
	if newShape.NumElements() != len(t.data) {
		return nil, shapeErrorf("reshape", []Shape{t.shape, newShape}, "incompatible shapes (%d vs %d elements)",
			len(t.data), newShape.NumElements())
	}

	out := newDense[T](newShape)
	copy(out.data, t.data)
	return out, nil
}

// Transpose swaps the two innermost axes using the default worker pool.
//
// Supported inputs:
//   - [R, C] -> [C, R]
//   - [B, R, C] -> [B, C, R], each batch transposed independently
//
// Any other rank is a *ShapeError.
func (t *Dense[T]) Transpose() (*Dense[T], error) {
	return t.TransposeWith(parallel.DefaultConfig())
}

// TransposeWith is Transpose with an explicit worker pool configuration.
// Work is split over (batch, source row) pairs; every output cell is
// written exactly once.
func (t *Dense[T]) TransposeWith(cfg parallel.Config) (*Dense[T], error) {
	var batch, rows, cols int
	switch len(t.shape) {
	case 2:
		batch, rows, cols = 1, t.shape[0], t.shape[1]
	case 3:
		batch, rows, cols = t.shape[0], t.shape[1], t.shape[2]
	default:
		return nil, shapeErrorf("transpose", []Shape{t.shape}, "expected a 2D tensor or a batch of 2D tensors")
	}

	outShape := t.shape.Clone()
	outShape[len(outShape)-2], outShape[len(outShape)-1] = cols, rows
	out := newDense[T](outShape)

	plane := rows * cols
	parallel.ForBatch(batch, rows, func(b, i int) {
		src := t.data[b*plane+i*cols : b*plane+(i+1)*cols]
		dst := out.data[b*plane:]
		for j, v := range src {
			dst[j*rows+i] = v
		}
	}, cfg)
	return out, nil
}
