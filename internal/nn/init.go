package nn

import (
	"math"
	"math/rand/v2"

	"github.com/born-ml/nexus/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Array {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = (rng.Float64()*2.0 - 1.0) * bound
	}
	return tensor.Wrap(shape.Clone(), data)
}
