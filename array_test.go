package post

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The column-major contract: for shape (a, b, c), flattened position
// p = i + j·a + k·a·b must hold the element with index (i, j, k).
func TestFlattenColumnMajor(t *testing.T) {
	a, b, c := 2, 3, 4
	shape := Shape{a, b, c}
	//row-major source: value encodes the index so we can check reordering
	rm := make([]float64, shape.NumElements())
	p := 0
	for i := 0; i < a; i++ {
		for j := 0; j < b; j++ {
			for k := 0; k < c; k++ {
				rm[p] = float64(100*i + 10*j + k)
				p++
			}
		}
	}
	arr, err := NewArrayRowMajor(shape, rm)
	require.NoError(t, err)

	for i := 0; i < a; i++ {
		for j := 0; j < b; j++ {
			for k := 0; k < c; k++ {
				require.Equal(t, float64(100*i+10*j+k), arr.At(i, j, k))
			}
		}
	}
	flat := arr.FlattenColumnMajor()
	for i := 0; i < a; i++ {
		for j := 0; j < b; j++ {
			for k := 0; k < c; k++ {
				pos := i + j*a + k*a*b
				require.Equal(t, float64(100*i+10*j+k), flat[pos], "position %d", pos)
			}
		}
	}
}

func TestNewArrayChecksSize(t *testing.T) {
	_, err := NewArray(Shape{2, 2}, make([]float64, 3))
	require.Error(t, err)
	_, err = NewArray(Shape{2, 0}, nil)
	require.Error(t, err)
	arr, err := NewArray(Shape{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 4, arr.Len())
	require.Equal(t, 3.0, arr.At(0, 1))
}

func TestReshapeSharesData(t *testing.T) {
	arr, err := NewArray(Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	flat, err := arr.Reshape(Shape{1, 6})
	require.NoError(t, err)
	require.Equal(t, arr.FlattenColumnMajor(), flat.FlattenColumnMajor())
	_, err = arr.Reshape(Shape{7})
	require.Error(t, err)
}

func TestShapeHelpers(t *testing.T) {
	require.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	require.Equal(t, 1, Shape{}.NumElements())
	require.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	require.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	require.Error(t, Shape{2, -1}.Validate())
	require.NoError(t, Shape{5}.Validate())
}
