/*
 * hdf.go, part of gopost
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

//Package hdf is a thin accessor for named HDF5 datasets, the way the solver
//output files use them: numeric datasets at the root level, no groups, no
//attributes. It is deliberately not a general HDF5 engine; anything fancier
//than "list the dataset names, give me one as an array" belongs to the
//underlying go-native-netcdf library.
package hdf

import (
	"fmt"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/hdf5"
	post "github.com/kmahrez/gopost"
)

// File is an open HDF5 file.
type File struct {
	g        api.Group
	filename string
	datasets []string
}

// Open opens an HDF5 file for reading.
func Open(name string) (*File, error) {
	g, err := hdf5.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"hdf5.Open", "Open"}, true}
	}
	return &File{g: g, filename: name, datasets: g.ListVariables()}, nil
}

// Datasets returns the names of the root-level datasets, in file order.
func (f *File) Datasets() []string { return f.datasets }

// Get reads a dataset into a post.Array. The values are converted to
// float64 and the row-major layout of HDF5 is reordered into the
// column-major storage convention of post.Array; index meanings are kept,
// only the linearization changes.
func (f *File) Get(name string) (*post.Array, error) {
	v, err := f.g.GetVariable(name)
	if err != nil {
		return nil, Error{err.Error(), f.filename, []string{"GetVariable", "Get"}, true}
	}
	shape, data, err := flatten(v.Values)
	if err != nil {
		return nil, Error{fmt.Sprintf("dataset %q: %s", name, err.Error()), f.filename, []string{"Get"}, true}
	}
	a, err := post.NewArrayRowMajor(shape, data)
	if err != nil {
		return nil, errDecorate(err, "Get")
	}
	return a, nil
}

// Close closes the file.
func (f *File) Close() {
	if f.g != nil {
		f.g.Close()
		f.g = nil
	}
}

// flatten walks the nested slices go-native-netcdf hands back and returns
// the row-major shape plus the values as float64. Ragged data or non-numeric
// element types are rejected.
func flatten(values interface{}) (post.Shape, []float64, error) {
	var shape post.Shape
	rv := reflect.ValueOf(values)
	sliced := rv.Kind() == reflect.Slice
	for rv.Kind() == reflect.Slice {
		if rv.Len() == 0 {
			return nil, nil, fmt.Errorf("empty dimension in dataset")
		}
		shape = append(shape, rv.Len())
		rv = rv.Index(0)
	}
	if !sliced { //a scalar dataset reads back as shape (1)
		shape = post.Shape{1}
	}
	data := make([]float64, 0, shape.NumElements())
	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		if sliced && depth < len(shape) {
			if v.Kind() != reflect.Slice {
				return fmt.Errorf("ragged dataset")
			}
			if v.Len() != shape[depth] {
				return fmt.Errorf("ragged dataset: dimension %d is %d, expected %d", depth, v.Len(), shape[depth])
			}
			for i := 0; i < v.Len(); i++ {
				if err := walk(v.Index(i), depth+1); err != nil {
					return err
				}
			}
			return nil
		}
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			data = append(data, v.Float())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			data = append(data, float64(v.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			data = append(data, float64(v.Uint()))
		case reflect.Interface:
			return walk(v.Elem(), depth)
		default:
			return fmt.Errorf("unsupported element type %s", v.Kind())
		}
		return nil
	}
	if err := walk(reflect.ValueOf(values), 0); err != nil {
		return nil, nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, nil, fmt.Errorf("ragged dataset: %d values for shape %v", len(data), shape)
	}
	return shape, data, nil
}

// Error is the error type for HDF5 access. It fulfills post.Error and
// post.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("hdf file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }
func (err Error) Format() string   { return "hdf5" }
func (err Error) Critical() bool   { return err.critical }

func errDecorate(err error, caller string) error {
	err2 := err.(post.Error)
	err2.Decorate(caller)
	return err2
}
