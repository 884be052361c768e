package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 3, Shape{3}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "()", Shape{}.String())
	assert.Equal(t, "(3,)", Shape{3}.String())
	assert.Equal(t, "(4, 2)", Shape{4, 2}.String())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		fail      bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{5}, Shape{2, 5}, Shape{2, 5}, true, false},
		{Shape{}, Shape{4, 2}, Shape{4, 2}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.fail {
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrShape)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v vs %v", tt.a, tt.b)
		assert.Equal(t, tt.broadcast, broadcast, "%v vs %v", tt.a, tt.b)
	}
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{0, 1}, BroadcastStrides(Shape{3}, Shape{2, 3}))
	assert.Equal(t, []int{1, 0}, BroadcastStrides(Shape{3, 1}, Shape{3, 4}))
	assert.Equal(t, []int{0, 0}, BroadcastStrides(Shape{}, Shape{3, 4}))
}

func TestNew(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	a, err := New(Shape{2, 2}, data)
	require.NoError(t, err)

	data[0] = 100
	assert.Equal(t, 1.0, a.At(0, 0), "New must copy its input")

	_, err = New(Shape{3}, data)
	assert.ErrorIs(t, err, ErrShape)

	_, err = New(Shape{0, 2}, nil)
	assert.Error(t, err)

	// 2^32 * 2^32 wraps to 0 and must not match an empty buffer.
	_, err = New(Shape{1 << 32, 1 << 32}, nil)
	assert.ErrorContains(t, err, "overflows")
}

func TestArray_Immutable(t *testing.T) {
	a, err := New(Shape{2}, []float64{1, 2})
	require.NoError(t, err)

	d := a.Data()
	d[0] = 9
	s := a.Shape()
	s[0] = 7

	assert.Equal(t, []float64{1, 2}, a.Data())
	assert.Equal(t, Shape{2}, a.Shape())
}

func TestScalarAndFromSlice(t *testing.T) {
	s := Scalar(3)
	assert.Equal(t, 0, s.Rank())
	v, err := s.Item()
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	a, err := FromSlice([]int32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6.0, a.At(1, 2))

	_, err = FromSlice([]float32{1, 2}, Shape{3})
	assert.ErrorIs(t, err, ErrShape)
}

func TestArray_Item(t *testing.T) {
	one, err := New(Shape{1, 1}, []float64{4})
	require.NoError(t, err)
	v, err := one.Item()
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	_, err = Ones(Shape{2}).Item()
	assert.ErrorIs(t, err, ErrNotScalar)
}

func TestArray_At_Panics(t *testing.T) {
	a := Zeros(Shape{2, 2})
	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.At(0) })
}

func TestArray_AllClose(t *testing.T) {
	a := Full(Shape{2}, 1)
	b, err := New(Shape{2}, []float64{1, 1 + 1e-10})
	require.NoError(t, err)

	assert.True(t, a.AllClose(b, 1e-9))
	assert.False(t, a.AllClose(Full(Shape{2}, 2), 1e-9))
	assert.False(t, a.AllClose(Full(Shape{1, 2}, 1), 1e-9))
	assert.False(t, a.AllClose(nil, 1e-9))
}

func TestArray_String(t *testing.T) {
	assert.Equal(t, "0.5", Scalar(0.5).String())

	v, err := FromData([]float64{1, -0.5})
	require.NoError(t, err)
	assert.Equal(t, "[1 -0.5]", v.String())

	m, err := FromData([][]int{{0, 0}, {0, 1}})
	require.NoError(t, err)
	assert.Equal(t, "[[0 0]\n [0 1]]", m.String())

	c, err := FromData([][][]int{{{1}}, {{2}}})
	require.NoError(t, err)
	assert.Equal(t, "[[[1]]\n\n [[2]]]", c.String())
}
