package geom

import (
	"os"
	"path/filepath"
	"testing"

	post "github.com/kmahrez/gopost"
	"github.com/stretchr/testify/require"
)

func TestReadRing(t *testing.T) {
	name := filepath.Join(t.TempDir(), "body.geom")
	content := "4\n3\n0.0 0.0\n1.0 0.0\n0.5 1.0\n"
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))

	ctp, nz, err := ReadRing(name)
	require.NoError(t, err)
	require.Equal(t, 4, nz)
	require.Len(t, ctp, 3)
	require.Equal(t, [2]float64{0.5, 1.0}, ctp[2])
}

func TestReadRingRejectsShortFiles(t *testing.T) {
	name := filepath.Join(t.TempDir(), "short.geom")
	require.NoError(t, os.WriteFile(name, []byte("4\n3\n0 0\n1 0\n"), 0o644))
	_, _, err := ReadRing(name)
	require.Error(t, err)
}

func TestExtrudeWritesClosedShell(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "body.vts")
	ctp := [][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	nz := 3

	fields := post.NewFields()
	p, err := post.NewArray(post.Shape{1, len(ctp), nz}, ramp(len(ctp)*nz))
	require.NoError(t, err)
	require.NoError(t, fields.Add("p", 1, p))

	require.NoError(t, Extrude(name, ctp, nz, 0, 1, fields))
	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	header := string(raw[:256])
	//the grid gains the duplicated seam point: 5 ring points, 3 stations
	require.Contains(t, header, `WholeExtent="1 5 1 3 1 1"`)
}

func TestExtrudeChecksFieldShape(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.vts")
	ctp := [][2]float64{{1, 0}, {0, 1}, {-1, 0}}
	fields := post.NewFields()
	p, err := post.NewArray(post.Shape{1, 7}, ramp(7))
	require.NoError(t, err)
	require.NoError(t, fields.Add("p", 1, p))
	require.Error(t, Extrude(name, ctp, 4, 0, 1, fields))
	_, statErr := os.Stat(name)
	require.True(t, os.IsNotExist(statErr))
}

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
