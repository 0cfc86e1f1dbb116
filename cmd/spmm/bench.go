package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/spmm/tensor"
)

var tracer = otel.Tracer("spmm")

// benchConfig describes one benchmark invocation.
type benchConfig struct {
	Batch   int
	Rows    int
	Inner   int
	Cols    int
	Density float64
	Runs    int
	Seed    int64
	Verify  bool
	Pool    tensor.Config
}

// benchResult summarizes the timed runs.
type benchResult struct {
	NNZ      int
	Density  float64
	Best     time.Duration
	Mean     time.Duration
	MaxError float64
}

func (c benchConfig) validate() error {
	if c.Batch < 0 || c.Rows <= 0 || c.Inner <= 0 || c.Cols <= 0 {
		return fmt.Errorf("dimensions must be positive (batch=%d rows=%d inner=%d cols=%d)", c.Batch, c.Rows, c.Inner, c.Cols)
	}
	if c.Density <= 0 || c.Density > 1 {
		return fmt.Errorf("density must be in (0, 1], got %g", c.Density)
	}
	if c.Runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	return nil
}

func (c benchConfig) leftShape() tensor.Shape {
	if c.Batch > 0 {
		return tensor.Shape{c.Batch, c.Rows, c.Inner}
	}
	return tensor.Shape{c.Rows, c.Inner}
}

// activationInput returns randn - shift, where shift is chosen so that the
// expected fraction of positive entries equals density. At density 1 every
// entry is positive (log-normal), so the following relu keeps all of them.
func activationInput[T tensor.Float](shape tensor.Shape, density float64, rng *rand.Rand) (*tensor.Dense[T], error) {
	x := tensor.Randn[T](shape, rng)
	if density >= 1 {
		return x.Exp(), nil
	}
	shift := T(distuv.UnitNormal.Quantile(1 - density))
	return x.Sub(tensor.Full[T](shape, shift))
}

// runBench builds random operands and times cfg.Runs multiplications.
func runBench[T tensor.Float](ctx context.Context, cfg benchConfig) (*benchResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // G404: benchmark data only

	pre, err := activationInput[T](cfg.leftShape(), cfg.Density, rng)
	if err != nil {
		return nil, err
	}
	left := pre.ReLUWith(cfg.Pool)
	right := tensor.Randn[T](tensor.Shape{cfg.Inner, cfg.Cols}, rng)

	nnz, err := countNonZero(left)
	if err != nil {
		return nil, err
	}
	res := &benchResult{
		NNZ:     nnz,
		Density: float64(nnz) / float64(left.NumElements()),
	}

	var (
		out   *tensor.Dense[T]
		total time.Duration
	)
	for i := 0; i < cfg.Runs; i++ {
		_, span := tracer.Start(ctx, "matmul", trace.WithAttributes(
			attribute.Int("run", i),
			attribute.String("left", left.Shape().String()),
			attribute.String("right", right.Shape().String()),
			attribute.Int("nnz", res.NNZ),
		))
		start := time.Now()
		out, err = tensor.MatMulWith(left, right, cfg.Pool)
		elapsed := time.Since(start)
		span.End()
		if err != nil {
			return nil, err
		}

		total += elapsed
		if i == 0 || elapsed < res.Best {
			res.Best = elapsed
		}
		log.Debug().Int("run", i).Dur("elapsed", elapsed).Msg("Run complete")
	}
	res.Mean = total / time.Duration(cfg.Runs)

	if cfg.Verify {
		_, span := tracer.Start(ctx, "verify")
		res.MaxError, err = verify(left, right, out)
		span.End()
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// countNonZero sparsifies x, stacking batches into rows, and returns the
// number of stored values.
func countNonZero[T tensor.Float](x *tensor.Dense[T]) (int, error) {
	shape := x.Shape()
	if len(shape) == 2 {
		m, err := x.Sparsify()
		if err != nil {
			return 0, err
		}
		return m.NNZ(), nil
	}

	flat, err := x.Reshape(tensor.Shape{shape[0] * shape[1], shape[2]})
	if err != nil {
		return 0, err
	}
	return countNonZero(flat)
}

// verify compares out against gonum's dense product and returns the largest
// absolute difference.
func verify[T tensor.Float](left, right, out *tensor.Dense[T]) (float64, error) {
	shape := left.Shape()
	if len(shape) == 3 {
		var err error
		if left, err = left.Reshape(tensor.Shape{shape[0] * shape[1], shape[2]}); err != nil {
			return 0, err
		}
		outShape := out.Shape()
		if out, err = out.Reshape(tensor.Shape{outShape[0] * outShape[1], outShape[2]}); err != nil {
			return 0, err
		}
	}

	a, err := left.ToMat()
	if err != nil {
		return 0, err
	}
	b, err := right.ToMat()
	if err != nil {
		return 0, err
	}
	got, err := out.ToMat()
	if err != nil {
		return 0, err
	}

	var want, diff mat.Dense
	want.Mul(a, b)
	diff.Sub(got, &want)

	maxErr := 0.0
	for _, v := range diff.RawMatrix().Data {
		maxErr = math.Max(maxErr, math.Abs(v))
	}
	return maxErr, nil
}
