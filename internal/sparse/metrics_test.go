package sparse

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/spmm/internal/parallel"
)

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestMatmulLastNNZ_SumsBatches(t *testing.T) {
	first := FromDense([]float64{1, 0, 0, 2}, 2, 2)
	second := FromDense([]float64{0, 0, 3, 0}, 2, 2)

	out := make([]float64, 8)
	MulDenseBatchInto(out, []*CSR[float64]{first, second}, []float64{1, 2, 3, 4}, 2, parallel.Sequential())
	assert.Equal(t, 3.0, gaugeValue(t, matmulLastNNZ))

	MulDense(second, []float64{1, 2, 3, 4}, 2, parallel.Sequential())
	assert.Equal(t, 1.0, gaugeValue(t, matmulLastNNZ))
}
