// Package parallel provides the bounded worker pool used by tensor kernels.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MaxDefaultWorkers caps the worker count chosen by DefaultConfig.
const MaxDefaultWorkers = 8

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := min(runtime.NumCPU(), MaxDefaultWorkers)
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Sequential returns a config that runs every loop on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// Workers returns the number of goroutines a loop of n items would use.
func (cfg Config) Workers(n int) int {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize || n < 2 {
		return 1
	}
	return min(cfg.NumWorkers, n)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Work is split into static contiguous chunks.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if cfg.Workers(n) == 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch optimized for batch*rows iteration pattern.
// Used by the batched transpose.
func ForBatch(batch, rows int, f func(b, r int), cfg Config) {
	n := batch * rows
	For(n, func(k int) {
		f(k/rows, k%rows)
	}, cfg)
}

// ForDynamic executes f(i) for i in [0, n) on a fixed pool of workers that
// pull indices from a shared cursor, grain indices at a time.
// Items may have very different costs; idle workers keep taking the next
// unclaimed index instead of waiting on a precomputed partition.
// Each index is passed to f exactly once.
func ForDynamic(n, grain int, f func(i int), cfg Config) {
	if grain < 1 {
		grain = 1
	}
	workers := cfg.Workers(n)
	if workers == 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var (
		wg     sync.WaitGroup
		cursor atomic.Int64
	)
	step := int64(grain)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				start := int(cursor.Add(step) - step)
				if start >= n {
					return
				}
				end := min(start+grain, n)
				for i := start; i < end; i++ {
					f(i)
				}
			}
		}()
	}
	wg.Wait()
}
