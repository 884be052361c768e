// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/nexus/internal/backend/cpu"
	"github.com/born-ml/nexus/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.Backend

// Config controls kernel parallelism.
type Config = internalcpu.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/nexus/autodiff"
//	    "github.com/born-ml/nexus/backend/cpu"
//	)
//
//	func main() {
//	    g := autodiff.New(cpu.New())
//	    x, _ := g.Leaf([]float64{1, 2, 3})
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
