// Package parallel splits flat index ranges across goroutines for the CPU kernels.
//
// Only kernel loops are parallelized. Graph construction and the backward
// pass stay sequential.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how a range is split.
type Config struct {
	Enabled  bool // Whether to fan out at all.
	Workers  int  // Upper bound on goroutines per call.
	MinChunk int  // Ranges shorter than this run inline.
}

// DefaultConfig uses one worker per CPU and keeps small arrays sequential.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:  n > 1,
		Workers:  n,
		MinChunk: 4096,
	}
}

// Sequential returns a Config that never spawns goroutines.
func Sequential() Config {
	return Config{Workers: 1, MinChunk: 1}
}

// Range calls fn(lo, hi) over disjoint sub-ranges covering [0, n).
// fn must only write to indices inside its own sub-range.
func Range(n int, cfg Config, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.Workers <= 1 || n < cfg.MinChunk {
		fn(0, n)
		return
	}

	chunk := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk)

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
