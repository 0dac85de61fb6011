/*
 * series.go, part of gopost
 *
 * Copyright 2023 Karim Mahrez <kmahrez_at_pm-dot-me>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

//Package series reads headerless binary time-series files: fixed-width
//little-endian records, one per time step, whose column layout must be known
//out of band. Both the homogeneous case (n columns of one precision) and
//custom per-column layouts like "iffffdddd" are supported. Files compressed
//with gzip (.gz) or zstandard (.zst) are decompressed transparently.
package series

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	post "github.com/kmahrez/gopost"
	"gonum.org/v1/gonum/mat"
)

// Format is the layout of one record: one type letter per column, in struct
// format style. 'i' is int32, 'f' float32, 'd' float64. All values are
// little-endian.
type Format struct {
	cols []byte
}

// Parse builds a Format from a format string such as "iffffdddd". Any
// character outside i/f/d is a FormatError.
func Parse(spec string) (Format, error) {
	if spec == "" {
		return Format{}, &FormatError{message: "empty format string"}
	}
	for i := 0; i < len(spec); i++ {
		switch spec[i] {
		case 'i', 'f', 'd':
		default:
			return Format{}, &FormatError{message: fmt.Sprintf("unknown column type %q in format %q", spec[i], spec)}
		}
	}
	return Format{cols: []byte(spec)}, nil
}

// Uniform derives the format of ncols homogeneous columns of precision
// 'f' (single) or 'd' (double). It covers the common case where the file
// is just a run of same-typed samples.
func Uniform(prec byte, ncols int) (Format, error) {
	if ncols <= 0 {
		return Format{}, &FormatError{message: fmt.Sprintf("%d columns requested", ncols)}
	}
	return Parse(strings.Repeat(string(prec), ncols))
}

// Cols returns the number of columns per record.
func (f Format) Cols() int { return len(f.cols) }

// RowBytes returns the fixed byte width of one record.
func (f Format) RowBytes() int {
	n := 0
	for _, c := range f.cols {
		if c == 'd' {
			n += 8
		} else {
			n += 4
		}
	}
	return n
}

// Reader reads records one at a time from a binary time-series file.
type Reader struct {
	f        *os.File
	z        io.ReadCloser //decompressor, nil for plain files
	h        io.Reader
	format   Format
	buf      []byte
	filename string
	readable bool
}

// New opens a time-series file for reading with the given record format.
// Files ending in .gz or .zst are decompressed on the fly; anything else is
// read as is.
func New(name string, format Format) (*Reader, error) {
	if format.Cols() == 0 {
		return nil, &FormatError{message: "no record format given", filename: name}
	}
	r := &Reader{format: format, filename: name, buf: make([]byte, format.RowBytes())}
	var err error
	r.f, err = os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"os.Open", "New"}, true}
	}
	in := bufio.NewReader(r.f)
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		gz, err := gzip.NewReader(in)
		if err != nil {
			r.f.Close()
			return nil, Error{err.Error(), name, []string{"gzip.NewReader", "New"}, true}
		}
		r.z = gz
		r.h = gz
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		zr, err := zstd.NewReader(in)
		if err != nil {
			r.f.Close()
			return nil, Error{err.Error(), name, []string{"zstd.NewReader", "New"}, true}
		}
		r.z = zstdql{zr.Close, zr}
		r.h = zr
	default:
		r.h = in
	}
	r.readable = true
	return r, nil
}

// *zstd.Decoder.Close returns nothing, so it can't be an io.ReadCloser by
// itself. Same workaround as elsewhere in the ecosystem.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

// Cols returns the number of columns per record.
func (r *Reader) Cols() int { return r.format.Cols() }

// Readable reports whether Next can still be called on r.
func (r *Reader) Readable() bool { return r.readable }

// Next reads one record into row, which must hold at least Cols() values.
// A clean end of file, including a trailing partial record, returns an error
// implementing post.EndOfData; anything else is a real failure. After the
// end of data the reader is closed and no longer readable.
func (r *Reader) Next(row []float64) error {
	if !r.readable {
		return Error{"reader is closed", r.filename, []string{"Next"}, true}
	}
	if len(row) < r.format.Cols() {
		return errDecorate(post.ShapeErrorf("row buffer holds %d values, record has %d columns",
			len(row), r.format.Cols()), "Next")
	}
	if _, err := io.ReadFull(r.h, r.buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			//Short reads are the normal termination: trailing bytes that do
			//not fill a record are discarded, as in the original format.
			r.Close()
			return newLastRecordError(r.filename, "Next")
		}
		return Error{err.Error(), r.filename, []string{"io.ReadFull", "Next"}, true}
	}
	off := 0
	for i, c := range r.format.cols {
		switch c {
		case 'i':
			row[i] = float64(int32(binary.LittleEndian.Uint32(r.buf[off:])))
			off += 4
		case 'f':
			row[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(r.buf[off:])))
			off += 4
		case 'd':
			row[i] = math.Float64frombits(binary.LittleEndian.Uint64(r.buf[off:]))
			off += 8
		}
	}
	return nil
}

// Close releases the decompressor, if any, and the file. It is safe to call
// more than once.
func (r *Reader) Close() {
	if !r.readable {
		return
	}
	if r.z != nil {
		r.z.Close()
	}
	r.f.Close()
	r.readable = false
}

// ReadAll reads up to maxRows records (all of them if maxRows <= 0) into a
// dense table of shape (rows, format.Cols()), rows in arrival order. A file
// with no complete record yields a nil table and no error; gonum cannot
// represent a 0×n matrix, so nil is the empty result.
func ReadAll(name string, format Format, maxRows int) (*mat.Dense, error) {
	r, err := New(name, format)
	if err != nil {
		return nil, errDecorate(err, "ReadAll")
	}
	defer r.Close()
	ncols := format.Cols()
	row := make([]float64, ncols)
	var data []float64
	rows := 0
	for maxRows <= 0 || rows < maxRows {
		if err := r.Next(row); err != nil {
			if _, ok := err.(post.EndOfData); ok {
				break
			}
			return nil, errDecorate(err, "ReadAll")
		}
		data = append(data, row...)
		rows++
	}
	if rows == 0 {
		return nil, nil
	}
	return mat.NewDense(rows, ncols, data), nil
}
