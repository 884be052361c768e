package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nexus/internal/autodiff/ops"
	"github.com/born-ml/nexus/internal/backend/cpu"
	"github.com/born-ml/nexus/internal/tensor"
)

func arr(t *testing.T, data any) *tensor.Array {
	t.Helper()
	a, err := tensor.FromData(data)
	require.NoError(t, err)
	return a
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "MatMul", ops.MatMul.String())
	assert.Equal(t, "Leaf", ops.Leaf.String())
	assert.Equal(t, "Kind(42)", ops.Kind(42).String())
}

func TestKind_Arity(t *testing.T) {
	assert.Equal(t, 0, ops.Leaf.Arity())
	assert.Equal(t, 2, ops.Add.Arity())
	assert.Equal(t, 2, ops.MatMul.Arity())
	assert.Equal(t, 1, ops.Pow.Arity())
	assert.Equal(t, 1, ops.Mean.Arity())
}

func TestOp_Forward(t *testing.T) {
	backend := cpu.New()
	a := arr(t, [][]float64{{1, 2}, {3, 4}})
	b := arr(t, [][]float64{{1, 0}, {0, 1}})

	tests := []struct {
		op     ops.Op
		inputs []*tensor.Array
		want   []float64
	}{
		{ops.Op{Kind: ops.Add}, []*tensor.Array{a, b}, []float64{2, 2, 3, 5}},
		{ops.Op{Kind: ops.Mul}, []*tensor.Array{a, b}, []float64{1, 0, 0, 4}},
		{ops.Op{Kind: ops.Pow, Exponent: 2}, []*tensor.Array{a}, []float64{1, 4, 9, 16}},
		{ops.Op{Kind: ops.MatMul}, []*tensor.Array{a, b}, []float64{1, 2, 3, 4}},
		{ops.Op{Kind: ops.Transpose}, []*tensor.Array{a}, []float64{1, 3, 2, 4}},
		{ops.Op{Kind: ops.Mean}, []*tensor.Array{a}, []float64{2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.op.Kind.String(), func(t *testing.T) {
			out, err := tt.op.Forward(tt.inputs, backend)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, out.Data(), 1e-12)
		})
	}
}

func TestOp_ForwardArity(t *testing.T) {
	_, err := ops.Op{Kind: ops.Add}.Forward([]*tensor.Array{arr(t, 1)}, cpu.New())
	assert.Error(t, err)

	_, err = ops.Op{Kind: ops.Leaf}.Forward(nil, cpu.New())
	assert.Error(t, err)
}

func TestAdd_Backward(t *testing.T) {
	backend := cpu.New()
	a := arr(t, []float64{1, 2, 3})
	b := arr(t, []float64{4, 5, 6})

	grads, err := ops.Op{Kind: ops.Add}.Backward([]*tensor.Array{a, b}, arr(t, []float64{1, 1, 1}), backend)
	require.NoError(t, err)
	require.Len(t, grads, 2)

	assert.Equal(t, []float64{1, 1, 1}, grads[0].Data())
	assert.Equal(t, []float64{1, 1, 1}, grads[1].Data())
}

func TestAdd_BroadcastBackward(t *testing.T) {
	backend := cpu.New()
	// a[3] + b[1] -> c[3]; grad_b is summed back to shape [1].
	a := arr(t, []float64{1, 2, 3})
	b := arr(t, []float64{10})

	grads, err := ops.Op{Kind: ops.Add}.Backward([]*tensor.Array{a, b}, arr(t, []float64{1, 1, 1}), backend)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1, 1}, grads[0].Data())
	assert.Equal(t, tensor.Shape{1}, grads[1].Shape())
	assert.Equal(t, []float64{3}, grads[1].Data())
}

func TestMul_Backward(t *testing.T) {
	backend := cpu.New()
	a := arr(t, []float64{2, 3, 4})
	b := arr(t, []float64{5, 6, 7})

	grads, err := ops.Op{Kind: ops.Mul}.Backward([]*tensor.Array{a, b}, arr(t, []float64{1, 1, 1}), backend)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 6, 7}, grads[0].Data())
	assert.Equal(t, []float64{2, 3, 4}, grads[1].Data())
}

func TestMul_ScalarOperandBackward(t *testing.T) {
	backend := cpu.New()
	x := arr(t, [][]float64{{1, 2}, {3, 4}})
	k := arr(t, -1)

	grads, err := ops.Op{Kind: ops.Mul}.Backward([]*tensor.Array{x, k}, tensor.Ones(tensor.Shape{2, 2}), backend)
	require.NoError(t, err)

	assert.Equal(t, []float64{-1, -1, -1, -1}, grads[0].Data())
	assert.Equal(t, 0, grads[1].Rank())
	assert.Equal(t, []float64{10}, grads[1].Data())
}

func TestPow_Backward(t *testing.T) {
	backend := cpu.New()
	x := arr(t, []float64{1, 2, 3})

	grads, err := ops.Op{Kind: ops.Pow, Exponent: 3}.Backward([]*tensor.Array{x}, arr(t, []float64{1, 1, 2}), backend)
	require.NoError(t, err)

	// 3x² * g
	assert.InDeltaSlice(t, []float64{3, 12, 54}, grads[0].Data(), 1e-12)
}

func TestMatMul_Backward(t *testing.T) {
	backend := cpu.New()
	a := arr(t, [][]float64{{1, 2}, {3, 4}})
	b := arr(t, [][]float64{{5, 6}, {7, 8}})
	g := tensor.Ones(tensor.Shape{2, 2})

	grads, err := ops.Op{Kind: ops.MatMul}.Backward([]*tensor.Array{a, b}, g, backend)
	require.NoError(t, err)

	// grad_a = g @ b^T, grad_b = a^T @ g
	assert.Equal(t, []float64{11, 15, 11, 15}, grads[0].Data())
	assert.Equal(t, []float64{4, 4, 6, 6}, grads[1].Data())
}

func TestMatMul_BackwardNonSquare(t *testing.T) {
	backend := cpu.New()
	a := tensor.Ones(tensor.Shape{4, 2})
	b := tensor.Ones(tensor.Shape{2, 1})
	g := tensor.Ones(tensor.Shape{4, 1})

	grads, err := ops.Op{Kind: ops.MatMul}.Backward([]*tensor.Array{a, b}, g, backend)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{4, 2}, grads[0].Shape())
	assert.Equal(t, tensor.Shape{2, 1}, grads[1].Shape())
	assert.Equal(t, []float64{4, 4}, grads[1].Data())
}

func TestTranspose_Backward(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros(tensor.Shape{1, 3})
	g := arr(t, [][]float64{{1}, {2}, {3}})

	grads, err := ops.Op{Kind: ops.Transpose}.Backward([]*tensor.Array{x}, g, backend)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{1, 3}, grads[0].Shape())
	assert.Equal(t, []float64{1, 2, 3}, grads[0].Data())
}

func TestMean_Backward(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros(tensor.Shape{4, 1})

	grads, err := ops.Op{Kind: ops.Mean}.Backward([]*tensor.Array{x}, tensor.Scalar(2), backend)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{4, 1}, grads[0].Shape())
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5, 0.5}, grads[0].Data(), 1e-12)
}

func TestLeaf_Backward(t *testing.T) {
	grads, err := ops.Op{Kind: ops.Leaf}.Backward(nil, tensor.Scalar(1), cpu.New())
	require.NoError(t, err)
	assert.Nil(t, grads)
}
