package table

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestWriteReadRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "forces.dat")
	data := mat.NewDense(3, 2, []float64{
		0.0, 1.25,
		0.1, -2.5e-3,
		0.2, 3.75e6,
	})
	require.NoError(t, Write(name, data, []string{"t", "cd"}, "drag history\nsecond line"))

	back, items, err := Read(name)
	require.NoError(t, err)
	require.Equal(t, []string{"t", "cd"}, items)
	r, c := back.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := data.At(i, j)
			require.InDelta(t, want, back.At(i, j), 1e-6*(1+math.Abs(want)))
		}
	}

	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	text := string(raw)
	require.Contains(t, text, "# drag history")
	require.Contains(t, text, "# second line")
	require.Contains(t, text, "$")
}

func TestWriteRefusesOverwrite(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.dat")
	data := mat.NewDense(1, 1, []float64{1})
	require.NoError(t, Write(name, data, []string{"a"}))
	require.Error(t, Write(name, data, []string{"a"}))
}

func TestWriteChecksItems(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.dat")
	data := mat.NewDense(1, 2, []float64{1, 2})
	require.Error(t, Write(name, data, []string{"only-one"}))
	require.Error(t, Write(name, data, []string{"a", strings.Repeat("x", 20)}))
}

func TestReadNeedsSeparator(t *testing.T) {
	name := filepath.Join(t.TempDir(), "lite.dat")
	data := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, WriteLite(name, data, []string{"a", "b"}))
	_, _, err := Read(name)
	require.Error(t, err, "lite files have no '$' separator")
}

func TestReadRejectsRaggedRows(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.dat")
	require.NoError(t, os.WriteFile(name, []byte("$ \n a b\n 1 2\n 3\n"), 0o644))
	_, _, err := Read(name)
	require.Error(t, err)
}
