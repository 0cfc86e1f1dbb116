// Package sparse implements compressed-row (CSR) matrices and the CSR × dense
// multiply kernel used by the tensor package.
package sparse

import (
	"errors"
	"fmt"
)

// Float is the element constraint for sparse kernels.
type Float interface {
	~float32 | ~float64
}

// ErrMalformed is returned by Validate when CSR invariants do not hold.
var ErrMalformed = errors.New("malformed CSR matrix")

// CSR is a compressed-row matrix.
//
// Row r owns Values[RowOffsets[r]:RowOffsets[r+1]] with matching column
// indices in ColIndices. Columns within a row are strictly ascending when
// the matrix is built by FromDense.
type CSR[T Float] struct {
	Rows       int
	Cols       int
	Values     []T
	ColIndices []int
	RowOffsets []int
}

// FromDense compresses a row-major rows×cols buffer.
//
// Every element with v != 0 is kept, however small; exact zeros (including
// negative zero) are dropped. No tolerance is applied.
func FromDense[T Float](data []T, rows, cols int) *CSR[T] {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("sparse: buffer of %d elements does not hold %dx%d", len(data), rows, cols))
	}

	m := &CSR[T]{
		Rows:       rows,
		Cols:       cols,
		RowOffsets: make([]int, 1, rows+1),
	}

	nnz := 0
	for i := 0; i < rows; i++ {
		row := data[i*cols : (i+1)*cols]
		for j, v := range row {
			if v != 0 {
				m.Values = append(m.Values, v)
				m.ColIndices = append(m.ColIndices, j)
				nnz++
			}
		}
		m.RowOffsets = append(m.RowOffsets, nnz)
	}

	sparsifyTotal.Inc()
	sparsifyDensity.Observe(m.Density())
	return m
}

// NNZ returns the number of stored values.
func (m *CSR[T]) NNZ() int {
	return len(m.Values)
}

// Density returns NNZ divided by Rows*Cols.
func (m *CSR[T]) Density() float64 {
	total := m.Rows * m.Cols
	if total == 0 {
		return 0
	}
	return float64(m.NNZ()) / float64(total)
}

// Row returns the values and column indices stored for row i.
// The returned slices alias the matrix.
func (m *CSR[T]) Row(i int) ([]T, []int) {
	start, end := m.RowOffsets[i], m.RowOffsets[i+1]
	return m.Values[start:end], m.ColIndices[start:end]
}

// ToDense scatters the stored values into a zero-filled row-major buffer.
func (m *CSR[T]) ToDense() []T {
	out := make([]T, m.Rows*m.Cols)
	for i := 0; i < m.Rows; i++ {
		vals, cols := m.Row(i)
		for j, v := range vals {
			out[i*m.Cols+cols[j]] = v
		}
	}
	return out
}

// Validate checks the structural invariants of the matrix.
func (m *CSR[T]) Validate() error {
	if len(m.RowOffsets) != m.Rows+1 {
		return fmt.Errorf("%w: %d row offsets for %d rows", ErrMalformed, len(m.RowOffsets), m.Rows)
	}
	if m.RowOffsets[0] != 0 {
		return fmt.Errorf("%w: first row offset is %d", ErrMalformed, m.RowOffsets[0])
	}
	if len(m.Values) != len(m.ColIndices) {
		return fmt.Errorf("%w: %d values but %d column indices", ErrMalformed, len(m.Values), len(m.ColIndices))
	}
	if last := m.RowOffsets[m.Rows]; last != len(m.Values) {
		return fmt.Errorf("%w: last row offset %d != nnz %d", ErrMalformed, last, len(m.Values))
	}
	for r := 0; r < m.Rows; r++ {
		if m.RowOffsets[r] > m.RowOffsets[r+1] {
			return fmt.Errorf("%w: row offsets decrease at row %d", ErrMalformed, r)
		}
	}
	for i, c := range m.ColIndices {
		if c < 0 || c >= m.Cols {
			return fmt.Errorf("%w: column index %d at position %d out of range [0, %d)", ErrMalformed, c, i, m.Cols)
		}
	}
	return nil
}
