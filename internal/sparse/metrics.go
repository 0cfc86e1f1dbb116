package sparse

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sparsifyTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spmm_sparsify_total",
		Help: "Total number of dense to CSR conversions",
	})

	sparsifyDensity = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spmm_sparsify_density_ratio",
		Help:    "Fraction of non-zero elements in converted matrices",
		Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
	})


	matmulTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spmm_matmul_total",
		Help: "Total number of CSR x dense multiplications",
	})

	matmulRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spmm_matmul_rows_total",
		Help: "Total number of output rows produced by CSR x dense multiplications",
	})

	matmulLastNNZ = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spmm_matmul_last_nnz",
		Help: "Non-zero count of the sparse operand of the most recent multiplication, summed over batches",
	})

	matmulDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spmm_matmul_duration_seconds",
		Help:    "Time spent in CSR x dense multiplication kernels",
		Buckets: prometheus.DefBuckets,
	})
)
