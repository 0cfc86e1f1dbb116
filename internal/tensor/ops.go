package tensor

import (
	"math"

	"github.com/born-ml/spmm/internal/parallel"
)

// mapUnary applies f to every element and returns the result as a new tensor.
func (t *Dense[T]) mapUnary(f func(T) T) *Dense[T] {
	out := newDense[T](t.shape)
	for i, v := range t.data {
		out.data[i] = f(v)
	}
	return out
}

// zip applies f pairwise. Shapes must match exactly; there is no broadcasting.
func (t *Dense[T]) zip(op string, other *Dense[T], f func(a, b T) T) (*Dense[T], error) {
	if !t.shape.Equal(other.shape) {
		return nil, shapeErrorf(op, []Shape{t.shape, other.shape}, "shapes must match")
	}
	out := newDense[T](t.shape)
	for i, v := range t.data {
		out.data[i] = f(v, other.data[i])
	}
	return out, nil
}

// Neg returns -t.
func (t *Dense[T]) Neg() *Dense[T] {
	return t.mapUnary(func(v T) T { return -v })
}

// Reciprocal returns 1/t. Zeros map to ±Inf.
func (t *Dense[T]) Reciprocal() *Dense[T] {
	return t.mapUnary(func(v T) T { return 1 / v })
}

// Add returns t + other.
func (t *Dense[T]) Add(other *Dense[T]) (*Dense[T], error) {
	return t.zip("add", other, func(a, b T) T { return a + b })
}

// Sub returns t - other, computed as t + (-other).
func (t *Dense[T]) Sub(other *Dense[T]) (*Dense[T], error) {
	if !t.shape.Equal(other.shape) {
		return nil, shapeErrorf("sub", []Shape{t.shape, other.shape}, "shapes must match")
	}
	return t.Add(other.Neg())
}

// Scale multiplies every element by s.
func (t *Dense[T]) Scale(s T) *Dense[T] {
	return t.mapUnary(func(v T) T { return v * s })
}

// Mul returns the elementwise product t * other.
func (t *Dense[T]) Mul(other *Dense[T]) (*Dense[T], error) {
	return t.zip("mul", other, func(a, b T) T { return a * b })
}

// Pow raises every element to the power p.
func (t *Dense[T]) Pow(p T) *Dense[T] {
	return t.mapUnary(func(v T) T { return T(math.Pow(float64(v), float64(p))) })
}

// Exp returns e^t.
func (t *Dense[T]) Exp() *Dense[T] {
	return t.mapUnary(func(v T) T { return T(math.Exp(float64(v))) })
}

// Binarize maps positive elements to 1 and everything else to 0.
func (t *Dense[T]) Binarize() *Dense[T] {
	return t.mapUnary(func(v T) T {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// ReLU returns max(t, 0) using the default worker pool.
func (t *Dense[T]) ReLU() *Dense[T] {
	return t.ReLUWith(parallel.DefaultConfig())
}

// ReLUWith returns max(t, 0) using the given worker pool configuration.
// Each element is written by exactly one iteration.
func (t *Dense[T]) ReLUWith(cfg parallel.Config) *Dense[T] {
	out := newDense[T](t.shape)
	parallel.For(len(t.data), func(i int) {
		if v := t.data[i]; v > 0 {
			out.data[i] = v
		}
	}, cfg)
	return out
}
