package tensor

import "gonum.org/v1/gonum/mat"

// ToMat copies a rank-2 tensor into a gonum matrix.
func (t *Dense[T]) ToMat() (*mat.Dense, error) {
	if len(t.shape) != 2 {
		return nil, shapeErrorf("to mat", []Shape{t.shape}, "expected a 2D tensor")
	}
	data := make([]float64, len(t.data))
	for i, v := range t.data {
		data[i] = float64(v)
	}
	return mat.NewDense(t.shape[0], t.shape[1], data), nil
}

// FromMat copies any gonum matrix into a rank-2 tensor.
func FromMat[T Float](m mat.Matrix) *Dense[T] {
	r, c := m.Dims()
	out := Zeros[T](Shape{r, c})
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = T(m.At(i, j))
		}
	}
	return out
}
