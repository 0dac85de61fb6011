package hdf

import (
	"path/filepath"
	"testing"

	post "github.com/kmahrez/gopost"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.h5"))
	require.Error(t, err)
}

// flatten must recover the row-major shape of the nested slices the
// underlying reader produces and keep index semantics when the data is
// re-linearized column-major.
func TestFlattenNested(t *testing.T) {
	values := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
	}
	shape, data, err := flatten(values)
	require.NoError(t, err)
	require.True(t, shape.Equal(post.Shape{2, 3}))
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, data)

	arr, err := post.NewArrayRowMajor(shape, data)
	require.NoError(t, err)
	require.Equal(t, 6.0, arr.At(1, 2))
	//column-major flatten walks the first index fastest
	require.Equal(t, []float64{1, 4, 2, 5, 3, 6}, arr.FlattenColumnMajor())
}

func TestFlattenScalarAndInts(t *testing.T) {
	shape, data, err := flatten(float64(2.5))
	require.NoError(t, err)
	require.True(t, shape.Equal(post.Shape{1}))
	require.Equal(t, []float64{2.5}, data)

	shape, data, err = flatten([]int32{7, 8})
	require.NoError(t, err)
	require.True(t, shape.Equal(post.Shape{2}))
	require.Equal(t, []float64{7, 8}, data)
}

func TestFlattenRejectsRagged(t *testing.T) {
	_, _, err := flatten([][]float64{{1, 2}, {3}})
	require.Error(t, err)
	_, _, err = flatten([]string{"no"})
	require.Error(t, err)
}
