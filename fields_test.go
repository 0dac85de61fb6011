package post

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Insertion order decides the on-disk block order, so it has to survive
// arbitrary additions.
func TestFieldsKeepInsertionOrder(t *testing.T) {
	f := NewFields()
	names := []string{"Pressure", "Velocity", "Q", "Alpha"}
	comps := []int{1, 3, 1, 2}
	for i, name := range names {
		arr, err := NewArray(Shape{comps[i], 4}, make([]float64, comps[i]*4))
		require.NoError(t, err)
		require.NoError(t, f.Add(name, comps[i], arr))
	}
	require.Equal(t, names, f.Names())
	require.Equal(t, 4, f.Len())
	require.Equal(t, 3, f.Components("Velocity"))
	require.NotNil(t, f.Array("Q"))
}

func TestFieldsRejectsBadAdds(t *testing.T) {
	f := NewFields()
	arr, err := NewArray(Shape{1, 4}, make([]float64, 4))
	require.NoError(t, err)
	require.NoError(t, f.Add("p", 1, arr))
	require.Error(t, f.Add("p", 1, arr), "duplicate name")
	require.Error(t, f.Add("", 1, arr), "empty name")
	require.Error(t, f.Add("q", 1, nil), "nil array")
	vec, err := NewArray(Shape{3, 4}, make([]float64, 12))
	require.NoError(t, err)
	require.Error(t, f.Add("v", 2, vec), "component count disagrees with leading axis")
}

func TestNilFieldsAreEmpty(t *testing.T) {
	var f *Fields
	require.Equal(t, 0, f.Len())
	require.Empty(t, f.Names())
}
