package autodiff

import "errors"

// Errors returned by graph construction and the backward pass.
var (
	// ErrNonNumericExponent is returned by Pow for exponents that are not Go numbers.
	ErrNonNumericExponent = errors.New("only numeric exponents supported")

	// ErrForeignNode is returned when an operand belongs to a different Graph.
	ErrForeignNode = errors.New("node belongs to a different graph")

	// ErrNilNode is returned when a nil *Node is used as an operand.
	ErrNilNode = errors.New("nil node")

	// ErrNotScalar is returned by Backward when the seed has more than one element.
	ErrNotScalar = errors.New("backward seed must be a scalar")

	// ErrCycle is returned when the traversal finds a node on its own path.
	ErrCycle = errors.New("cycle in computation graph")

	// ErrDepthExceeded is returned when a dependency chain is deeper than Config.MaxDepth.
	ErrDepthExceeded = errors.New("computation graph too deep")
)
