package sparse

import (
	"fmt"
	"time"

	"github.com/born-ml/spmm/internal/parallel"
)

// MulDense computes m × b, where b is a row-major m.Cols × n matrix.
// The result is a freshly allocated row-major m.Rows × n buffer.
func MulDense[T Float](m *CSR[T], b []T, n int, cfg parallel.Config) []T {
	out := make([]T, m.Rows*n)
	MulDenseBatchInto(out, []*CSR[T]{m}, b, n, cfg)
	return out
}

// MulDenseBatchInto multiplies every matrix in mats by the same dense b and
// writes the stacked results into out.
//
// All matrices must share Rows and Cols; b is Cols × n and out holds
// len(mats)*Rows*n zeroed elements. Output rows from every batch form one
// work queue that is handed out to workers dynamically, so rows with many
// non-zeros do not stall a statically assigned partition.
//
// Each output row is written by exactly one iteration and accumulates in
// stored order (ascending column, then ascending output column), so the
// result does not depend on the worker count.
func MulDenseBatchInto[T Float](out []T, mats []*CSR[T], b []T, n int, cfg parallel.Config) {
	if len(mats) == 0 {
		return
	}
	rows, cols := mats[0].Rows, mats[0].Cols
	nnz := 0
	for i, m := range mats {
		if m.Rows != rows || m.Cols != cols {
			panic(fmt.Sprintf("sparse: batch %d is %dx%d, expected %dx%d", i, m.Rows, m.Cols, rows, cols))
		}
		nnz += m.NNZ()
	}
	if len(b) != cols*n {
		panic(fmt.Sprintf("sparse: dense operand has %d elements, expected %dx%d", len(b), cols, n))
	}
	if len(out) != len(mats)*rows*n {
		panic(fmt.Sprintf("sparse: output has %d elements, expected %d", len(out), len(mats)*rows*n))
	}

	start := time.Now()
	total := len(mats) * rows
	parallel.ForDynamic(total, rowGrain(total, cfg), func(r int) {
		m := mats[r/rows]
		vals, colIdx := m.Row(r % rows)
		mulRow(out[r*n:(r+1)*n], vals, colIdx, b, n)
	}, cfg)

	matmulTotal.Inc()
	matmulRows.Add(float64(total))
	matmulLastNNZ.Set(float64(nnz))
	matmulDuration.Observe(time.Since(start).Seconds())
}

// mulRow accumulates Σ vals[j] * b[cols[j], :] into dst.
func mulRow[T Float](dst, vals []T, cols []int, b []T, n int) {
	for j, v := range vals {
		src := b[cols[j]*n : (cols[j]+1)*n]
		for k := range dst {
			dst[k] += v * src[k]
		}
	}
}

// rowGrain picks how many rows a worker claims at a time: small enough that
// every worker gets many turns, at least one row.
func rowGrain(rows int, cfg parallel.Config) int {
	workers := cfg.Workers(rows)
	if workers <= 1 {
		return rows
	}
	return max(1, rows/(workers*16))
}
