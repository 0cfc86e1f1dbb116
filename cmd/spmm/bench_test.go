package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/spmm/internal/parallel"
	"github.com/born-ml/spmm/tensor"
)

func smallConfig() benchConfig {
	return benchConfig{
		Rows:    40,
		Inner:   30,
		Cols:    20,
		Density: 0.25,
		Runs:    2,
		Seed:    3,
		Verify:  true,
		Pool:    parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1},
	}
}

func TestRunBench(t *testing.T) {
	res, err := runBench[float64](context.Background(), smallConfig())
	require.NoError(t, err)

	assert.Positive(t, res.NNZ)
	assert.Less(t, res.NNZ, 40*30)
	assert.InDelta(t, 0.25, res.Density, 0.1)
	assert.LessOrEqual(t, res.Best, res.Mean)
	assert.Less(t, res.MaxError, 1e-9)
}

func TestRunBench_Batched(t *testing.T) {
	cfg := smallConfig()
	cfg.Batch = 3

	res, err := runPrecision(context.Background(), "fp32", cfg)
	require.NoError(t, err)
	assert.Less(t, res.MaxError, 1e-3)
}

func TestRunBench_FullDensity(t *testing.T) {
	cfg := smallConfig()
	cfg.Density = 1

	res, err := runBench[float64](context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 40*30, res.NNZ)
	assert.InDelta(t, 1.0, res.Density, 1e-12)
}

func TestActivationInput_FullDensityPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, shape := range []tensor.Shape{{50, 40}, {3, 20, 10}} {
		pre, err := activationInput[float32](shape, 1, rng)
		require.NoError(t, err)
		for _, v := range pre.ReLU().Data() {
			require.Positive(t, v)
		}
	}
}

func TestRunPrecision_Unknown(t *testing.T) {
	_, err := runPrecision(context.Background(), "fp8", smallConfig())
	assert.ErrorContains(t, err, "unknown precision")
}

func TestBenchConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *benchConfig)
	}{
		{"zero rows", func(c *benchConfig) { c.Rows = 0 }},
		{"negative batch", func(c *benchConfig) { c.Batch = -1 }},
		{"zero density", func(c *benchConfig) { c.Density = 0 }},
		{"density above one", func(c *benchConfig) { c.Density = 1.5 }},
		{"zero runs", func(c *benchConfig) { c.Runs = 0 }},
	}

	require.NoError(t, smallConfig().validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestPoolConfig(t *testing.T) {
	assert.False(t, poolConfig(1).Enabled)
	assert.Equal(t, parallel.Config{Enabled: true, NumWorkers: 6, MinChunkSize: 1}, poolConfig(6))
	assert.Equal(t, parallel.DefaultConfig(), poolConfig(0))
}

func TestActivationInput_Density(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	pre, err := activationInput[float64](tensor.Shape{200, 200}, 0.1, rng)
	require.NoError(t, err)

	positive := 0
	for _, v := range pre.Data() {
		if v > 0 {
			positive++
		}
	}
	assert.InDelta(t, 0.1, float64(positive)/40000, 0.02)
}
