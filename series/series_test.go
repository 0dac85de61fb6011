package series

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	post "github.com/kmahrez/gopost"
	"github.com/stretchr/testify/require"
)

func writeDoubles(t *testing.T, name string, vals ...float64) {
	t.Helper()
	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, vals))
	require.NoError(t, f.Close())
}

func TestUniformRead(t *testing.T) {
	name := filepath.Join(t.TempDir(), "hist.bin")
	writeDoubles(t, name, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	fmt3, err := Uniform('d', 3)
	require.NoError(t, err)
	table, err := ReadAll(name, fmt3, 0)
	require.NoError(t, err)
	r, c := table.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	require.Equal(t, 6.0, table.At(1, 2))
}

// 2.5 rows' worth of bytes must give exactly 2 rows; the trailing partial
// record is discarded silently.
func TestTruncatedFileDropsPartialRow(t *testing.T) {
	name := filepath.Join(t.TempDir(), "part.bin")
	f, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, []float64{1, 2, 3, 4, 5, 6, 7})) //7 of 9
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(42)))                      //half a column
	require.NoError(t, f.Close())

	fmt3, err := Uniform('d', 3)
	require.NoError(t, err)
	table, err := ReadAll(name, fmt3, 0)
	require.NoError(t, err)
	r, _ := table.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 5.0, table.At(1, 1))
}

func TestMaxRowsTruncation(t *testing.T) {
	name := filepath.Join(t.TempDir(), "long.bin")
	vals := make([]float64, 27) //9 rows of 3
	for i := range vals {
		vals[i] = float64(i)
	}
	writeDoubles(t, name, vals...)
	fmt3, err := Uniform('d', 3)
	require.NoError(t, err)
	table, err := ReadAll(name, fmt3, 2)
	require.NoError(t, err)
	r, c := table.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 0.0, table.At(0, 0)) //first rows in file order
	require.Equal(t, 5.0, table.At(1, 2))
}

// Heterogeneous rows: an int32 step counter followed by two doubles.
func TestCustomFormat(t *testing.T) {
	name := filepath.Join(t.TempDir(), "mixed.bin")
	f, err := os.Create(name)
	require.NoError(t, err)
	for step := int32(1); step <= 3; step++ {
		require.NoError(t, binary.Write(f, binary.LittleEndian, step))
		require.NoError(t, binary.Write(f, binary.LittleEndian, []float64{float64(step) * 0.5, float64(step) * 2}))
	}
	require.NoError(t, f.Close())

	format, err := Parse("idd")
	require.NoError(t, err)
	require.Equal(t, 3, format.Cols())
	require.Equal(t, 20, format.RowBytes())
	table, err := ReadAll(name, format, 0)
	require.NoError(t, err)
	require.Equal(t, 2.0, table.At(1, 0))
	require.Equal(t, 1.0, table.At(1, 1))
	require.Equal(t, 4.0, table.At(1, 2))
}

// A zero-row result is valid: nil table, no error.
func TestEmptyFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(name, nil, 0o644))
	fmt3, err := Uniform('d', 3)
	require.NoError(t, err)
	table, err := ReadAll(name, fmt3, 0)
	require.NoError(t, err)
	require.Nil(t, table)
}

func TestBadFormats(t *testing.T) {
	_, err := Parse("idq")
	require.Error(t, err)
	_, err = Parse("")
	require.Error(t, err)
	_, err = Uniform('d', 0)
	require.Error(t, err)
	_, err = New(filepath.Join(t.TempDir(), "x.bin"), Format{})
	require.Error(t, err)
}

func TestNextSignalsEndOfData(t *testing.T) {
	name := filepath.Join(t.TempDir(), "two.bin")
	writeDoubles(t, name, 1, 2, 3, 4)
	fmt2, err := Uniform('d', 2)
	require.NoError(t, err)
	r, err := New(name, fmt2)
	require.NoError(t, err)
	defer r.Close()
	row := make([]float64, 2)
	require.NoError(t, r.Next(row))
	require.Equal(t, []float64{1, 2}, row)
	require.NoError(t, r.Next(row))
	err = r.Next(row)
	require.Error(t, err)
	_, clean := err.(post.EndOfData)
	require.True(t, clean, "end of file is a clean termination")
	require.False(t, r.Readable())
}

func TestGzipInput(t *testing.T) {
	name := filepath.Join(t.TempDir(), "hist.bin.gz")
	f, err := os.Create(name)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	require.NoError(t, binary.Write(zw, binary.LittleEndian, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	fmt2, err := Uniform('d', 2)
	require.NoError(t, err)
	table, err := ReadAll(name, fmt2, 0)
	require.NoError(t, err)
	r, _ := table.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 4.0, table.At(1, 1))
}

func TestZstdInput(t *testing.T) {
	name := filepath.Join(t.TempDir(), "hist.bin.zst")
	f, err := os.Create(name)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	require.NoError(t, binary.Write(zw, binary.LittleEndian, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	fmt3, err := Uniform('d', 3)
	require.NoError(t, err)
	table, err := ReadAll(name, fmt3, 0)
	require.NoError(t, err)
	r, _ := table.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 6.0, table.At(1, 2))
}
