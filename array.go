/*
 * array.go, part of gopost
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

package post

// Array is a dense N-dimensional array of float64 stored in column-major
// (Fortran) order: index (i0, i1, ..., ik) of a shape (d0, d1, ..., dk)
// array lives at position i0 + i1·d0 + i2·d0·d1 + ... in the backing slice.
// That linearization is the one the VTK appended-data payload wants, so the
// storage order of an Array is also its on-disk order.
type Array struct {
	shape Shape
	data  []float64
}

// NewArray wraps data, already in column-major order, into an Array of the
// given shape. The slice is kept, not copied. The length of data must match
// the shape exactly.
func NewArray(shape Shape, data []float64) (*Array, error) {
	if err := shape.Validate(); err != nil {
		err.(Error).Decorate("NewArray")
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, ShapeErrorf("NewArray: %d elements given for shape %v (wants %d)", len(data), shape, shape.NumElements())
	}
	return &Array{shape: shape.Clone(), data: data}, nil
}

// NewArrayRowMajor builds an Array from data laid out in row-major (C) order,
// the convention of HDF5 and most external producers, reordering it into the
// column-major storage used here. The numeric values are untouched.
func NewArrayRowMajor(shape Shape, data []float64) (*Array, error) {
	a, err := NewArray(shape, make([]float64, len(data)))
	if err != nil {
		err.(Error).Decorate("NewArrayRowMajor")
		return nil, err
	}
	cm := shape.strides()
	idx := make([]int, len(shape))
	for p := 0; p < len(data); p++ { //p walks the row-major source
		rest := p
		for ax := len(shape) - 1; ax >= 0; ax-- { //last index fastest
			idx[ax] = rest % shape[ax]
			rest /= shape[ax]
		}
		q := 0
		for ax, i := range idx {
			q += i * cm[ax]
		}
		a.data[q] = data[p]
	}
	return a, nil
}

// ZeroArray returns a zero-filled Array of the given shape. It panics on an
// invalid shape; callers building grids by hand pass literal dimensions.
func ZeroArray(shape Shape) *Array {
	a, err := NewArray(shape, make([]float64, shape.NumElements()))
	if err != nil {
		panic(err.Error())
	}
	return a
}

// Shape returns the dimensions of the array. The caller must not modify it.
func (a *Array) Shape() Shape { return a.shape }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) }

// At returns the element at the given index, which must have one entry per
// axis. Out-of-range access panics, it is a caller bug like slice misuse.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic("gopost: Array index has wrong number of axes")
	}
	off := 0
	stride := 1
	for ax, i := range idx {
		if i < 0 || i >= a.shape[ax] {
			panic("gopost: Array index out of range")
		}
		off += i * stride
		stride *= a.shape[ax]
	}
	return off
}

// FlattenColumnMajor returns the elements linearized with the first axis
// varying fastest. Since that is the storage order, this is a plain copy;
// it exists so callers get a slice they own.
func (a *Array) FlattenColumnMajor() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

// Reshape returns a new Array sharing this one's backing data under a
// different shape with the same element count. Handy for the (1, n) view
// the field writers want for scalar data.
func (a *Array) Reshape(shape Shape) (*Array, error) {
	if shape.NumElements() != len(a.data) {
		return nil, ShapeErrorf("Reshape: cannot view %d elements as shape %v", len(a.data), shape)
	}
	if err := shape.Validate(); err != nil {
		err.(Error).Decorate("Reshape")
		return nil, err
	}
	return &Array{shape: shape.Clone(), data: a.data}, nil
}
