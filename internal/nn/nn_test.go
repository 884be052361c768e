package nn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nexus/internal/autodiff"
	"github.com/born-ml/nexus/internal/backend/cpu"
	"github.com/born-ml/nexus/internal/nn"
	"github.com/born-ml/nexus/internal/optim"
	"github.com/born-ml/nexus/internal/tensor"
)

func TestLinear_Forward(t *testing.T) {
	weight := tensor.Wrap(tensor.Shape{2, 3}, []float64{1, 0, -1, 2, 1, 0})
	bias := tensor.Wrap(tensor.Shape{2}, []float64{0.5, -1})
	layer, err := nn.NewLinearFrom(weight, bias)
	require.NoError(t, err)

	assert.Equal(t, 3, layer.InFeatures())
	assert.Equal(t, 2, layer.OutFeatures())
	assert.Len(t, layer.Parameters(), 2)

	g := autodiff.New(cpu.New())
	x, err := g.Leaf([][]float64{{1, 2, 3}, {0, 1, 0}})
	require.NoError(t, err)

	out, err := layer.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float64{-1.5, 3, 0.5, 0}, out.Data().Data())
}

func TestLinear_Backward(t *testing.T) {
	layer, err := nn.NewLinearFrom(
		tensor.Wrap(tensor.Shape{1, 2}, []float64{0.5, -0.5}),
		tensor.Wrap(tensor.Shape{1}, []float64{0}),
	)
	require.NoError(t, err)

	g := autodiff.New(cpu.New())
	x, err := g.Leaf([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	require.NoError(t, err)
	out, err := layer.Forward(x)
	require.NoError(t, err)
	loss, err := nn.NewMSELoss().Forward(out, [][]float64{{0}, {1}, {1}, {0}})
	require.NoError(t, err)
	require.NoError(t, loss.Backward())

	assert.InDeltaSlice(t, []float64{-0.25, -0.75}, layer.Weight().Grad().Data(), 1e-12)
	// d/db = mean(2r) = 2 * (-2) / 4
	assert.Equal(t, tensor.Shape{1}, layer.Bias().Grad().Shape())
	assert.InDeltaSlice(t, []float64{-1}, layer.Bias().Grad().Data(), 1e-12)
}

func TestLinear_NoBias(t *testing.T) {
	layer := nn.NewLinear(4, 3, false, rand.New(rand.NewPCG(1, 2)))
	assert.Nil(t, layer.Bias())
	assert.Len(t, layer.Parameters(), 1)
	assert.Equal(t, tensor.Shape{3, 4}, layer.Weight().Value().Shape())
}

func TestNewLinearFrom_Invalid(t *testing.T) {
	_, err := nn.NewLinearFrom(tensor.Ones(tensor.Shape{3}), nil)
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = nn.NewLinearFrom(tensor.Ones(tensor.Shape{2, 3}), tensor.Ones(tensor.Shape{3}))
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestLinear_ShapeMismatch(t *testing.T) {
	layer := nn.NewLinear(3, 1, true, rand.New(rand.NewPCG(1, 2)))
	g := autodiff.New(cpu.New())
	x, err := g.Leaf([][]float64{{1, 2}})
	require.NoError(t, err)

	_, err = layer.Forward(x)
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestXavier(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	w := nn.Xavier(10, 20, tensor.Shape{20, 10}, rng)

	bound := math.Sqrt(6.0 / 30)
	assert.Equal(t, tensor.Shape{20, 10}, w.Shape())
	for _, v := range w.Values() {
		assert.LessOrEqual(t, math.Abs(v), bound)
	}

	again := nn.Xavier(10, 20, tensor.Shape{20, 10}, rand.New(rand.NewPCG(42, 0)))
	assert.Equal(t, w.Data(), again.Data(), "same seed, same weights")
}

func TestParameter_BindAndGrad(t *testing.T) {
	p := nn.NewParameter("w", tensor.Wrap(tensor.Shape{2}, []float64{1, 2}))
	assert.Nil(t, p.Grad(), "unbound")
	assert.Nil(t, p.Node())

	g := autodiff.New(cpu.New())
	n1, err := p.Bind(g)
	require.NoError(t, err)
	n2, err := p.Bind(g)
	require.NoError(t, err)
	assert.Equal(t, n1.ID(), n2.ID())
	assert.Nil(t, p.Grad(), "bound but no backward yet")

	sq, err := n1.Mul(n1)
	require.NoError(t, err)
	loss, err := sq.Mean()
	require.NoError(t, err)
	require.NoError(t, loss.Backward())
	assert.Equal(t, []float64{1, 2}, p.Grad().Data())

	// A new graph gets a new leaf.
	n3, err := p.Bind(autodiff.New(cpu.New()))
	require.NoError(t, err)
	assert.NotSame(t, n1.Graph(), n3.Graph())
	assert.Nil(t, p.Grad())
}

func TestParameter_SetValue(t *testing.T) {
	p := nn.NewParameter("w", tensor.Zeros(tensor.Shape{2}))
	require.NoError(t, p.SetValue(tensor.Ones(tensor.Shape{2})))
	assert.Equal(t, []float64{1, 1}, p.Value().Data())
	assert.ErrorIs(t, p.SetValue(tensor.Ones(tensor.Shape{3})), tensor.ErrShape)
}

func TestStateDict(t *testing.T) {
	layer := nn.NewLinear(2, 1, true, rand.New(rand.NewPCG(7, 7)))
	state := nn.StateDict(layer)
	require.Contains(t, state, "weight")
	require.Contains(t, state, "bias")

	other := nn.NewLinear(2, 1, true, rand.New(rand.NewPCG(8, 8)))
	require.NoError(t, nn.LoadStateDict(other, state))
	assert.Equal(t, layer.Weight().Value().Data(), other.Weight().Value().Data())

	assert.Error(t, nn.LoadStateDict(other, map[string]*tensor.Array{"weight": state["weight"]}))
}

func TestStep_TrainsLinear(t *testing.T) {
	layer := nn.NewLinear(1, 1, true, rand.New(rand.NewPCG(3, 4)))
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.5})
	mse := nn.NewMSELoss()

	// y = 2x + 1
	xs := [][]float64{{-1}, {0}, {1}, {2}}
	ys := [][]float64{{-1}, {1}, {3}, {5}}

	for range 300 {
		g := autodiff.New(cpu.New())
		x, err := g.Leaf(xs)
		require.NoError(t, err)
		out, err := layer.Forward(x)
		require.NoError(t, err)
		loss, err := mse.Forward(out, ys)
		require.NoError(t, err)
		require.NoError(t, loss.Backward())
		require.NoError(t, nn.Step(opt, layer.Parameters()))
	}

	assert.InDelta(t, 2, layer.Weight().Value().Values()[0], 1e-3)
	assert.InDelta(t, 1, layer.Bias().Value().Values()[0], 1e-3)
}
