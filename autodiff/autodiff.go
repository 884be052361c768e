// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Expressions are built on a Graph: leaves come from Graph.Leaf, and every
// operator method on Node appends a new node that remembers its operands.
// Node.Backward on a one-element result walks the graph in reverse
// topological order and accumulates gradients into every node it reaches.
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
//
//	    x, _ := g.Leaf([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
//	    w, _ := g.Leaf([][]float64{{0.5, -0.5}})
//
//	    out, _ := x.Linear(w)    // x @ wᵀ
//	    sq, _ := out.Pow(2)
//	    loss, _ := sq.Mean()
//
//	    if err := loss.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(w.Grad())
//	}
package autodiff

import (
	"github.com/born-ml/nexus/internal/autodiff"
	"github.com/born-ml/nexus/internal/autodiff/ops"
	"github.com/born-ml/nexus/tensor"
)

// Graph owns every node built in one graph-building session.
type Graph = autodiff.Graph

// Node is a handle to one value in a Graph.
type Node = autodiff.Node

// Config controls graph traversal.
type Config = autodiff.Config

// Kind identifies the operation that produced a node.
type Kind = ops.Kind

// Operation kinds.
const (
	KindLeaf      = ops.Leaf
	KindAdd       = ops.Add
	KindMul       = ops.Mul
	KindPow       = ops.Pow
	KindMatMul    = ops.MatMul
	KindTranspose = ops.Transpose
	KindMean      = ops.Mean
)

// Errors returned by graph construction and Backward.
var (
	ErrNonNumericExponent = autodiff.ErrNonNumericExponent
	ErrForeignNode        = autodiff.ErrForeignNode
	ErrNilNode            = autodiff.ErrNilNode
	ErrNotScalar          = autodiff.ErrNotScalar
	ErrCycle              = autodiff.ErrCycle
	ErrDepthExceeded      = autodiff.ErrDepthExceeded
)

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return autodiff.DefaultConfig()
}

// New creates an empty graph that computes with backend.
func New(backend tensor.Backend) *Graph {
	return autodiff.New(backend)
}

// NewWithConfig creates an empty graph with an explicit configuration.
func NewWithConfig(backend tensor.Backend, cfg Config) *Graph {
	return autodiff.NewWithConfig(backend, cfg)
}
