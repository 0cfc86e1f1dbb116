package sparse

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/spmm/internal/parallel"
)

// denseMatMul is the naive reference: C[i,j] = sum_k A[i,k] * B[k,j].
func denseMatMul(a, b []float64, m, k, n int) []float64 {
	c := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
	return c
}

func randomSparse(rng *rand.Rand, size int, density float64) []float64 {
	data := make([]float64, size)
	for i := range data {
		if rng.Float64() < density {
			data[i] = rng.NormFloat64()
		}
	}
	return data
}

func TestMulDense(t *testing.T) {
	left := FromDense([]float32{1, 0, 2, 0, 0, 3}, 2, 3)
	right := []float32{1, 1, 1, 1, 1, 1}

	got := MulDense(left, right, 2, parallel.Sequential())
	assert.Equal(t, []float32{3, 3, 3, 3}, got)
}

func TestMulDense_MatchesDense(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m, k, n := 37, 23, 11
	a := randomSparse(rng, m*k, 0.3)
	b := randomSparse(rng, k*n, 1)

	got := MulDense(FromDense(a, m, k), b, n, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	want := denseMatMul(a, b, m, k, n)

	require.Len(t, got, len(want))
	for i := range want {
		assert.InDeltaf(t, want[i], got[i], 1e-9, "element %d", i)
	}
}

func TestMulDense_WorkerCountDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m, k, n := 200, 64, 48
	a := randomSparse(rng, m*k, 0.15)
	b := randomSparse(rng, k*n, 0.9)
	csr := FromDense(a, m, k)

	base := MulDense(csr, b, n, parallel.Sequential())
	for _, workers := range []int{2, 3, 8, 16} {
		cfg := parallel.Config{Enabled: true, NumWorkers: workers, MinChunkSize: 1}
		for run := 0; run < 3; run++ {
			got := MulDense(csr, b, n, cfg)
			require.Equalf(t, base, got, "workers=%d run=%d", workers, run)
		}
	}
}

func TestMulDenseBatchInto(t *testing.T) {
	first := FromDense([]float64{1, 0, 0, 2}, 2, 2)
	second := FromDense([]float64{0, 0, 3, 0}, 2, 2)
	b := []float64{1, 2, 3, 4}

	out := make([]float64, 8)
	MulDenseBatchInto(out, []*CSR[float64]{first, second}, b, 2, parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1})

	assert.Equal(t, []float64{
		1, 2, 6, 8,
		0, 0, 3, 6,
	}, out)
}

func TestMulDenseBatchInto_Panics(t *testing.T) {
	a := FromDense([]float32{1, 0, 0, 2}, 2, 2)
	b := FromDense([]float32{1, 0, 0}, 1, 3)

	assert.Panics(t, func() {
		MulDenseBatchInto(make([]float32, 8), []*CSR[float32]{a, b}, []float32{1, 2, 3, 4}, 2, parallel.Sequential())
	})
	assert.Panics(t, func() {
		MulDenseBatchInto(make([]float32, 4), []*CSR[float32]{a}, []float32{1, 2, 3}, 2, parallel.Sequential())
	})
	assert.Panics(t, func() {
		MulDenseBatchInto(make([]float32, 3), []*CSR[float32]{a}, []float32{1, 2, 3, 4}, 2, parallel.Sequential())
	})
}

func TestRowGrain(t *testing.T) {
	assert.Equal(t, 10, rowGrain(10, parallel.Sequential()))
	assert.Equal(t, 1, rowGrain(10, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}))
	assert.Equal(t, 15, rowGrain(1000, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}))
}

func BenchmarkMulDense(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	m, k, n := 512, 512, 512
	a := randomSparse(rng, m*k, 0.1)
	dense := randomSparse(rng, k*n, 1)
	csr := FromDense(a, m, k)

	b.Run("parallel", func(b *testing.B) {
		cfg := parallel.DefaultConfig()
		for i := 0; i < b.N; i++ {
			MulDense(csr, dense, n, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			MulDense(csr, dense, n, parallel.Sequential())
		}
	})
}
