/*
 * fields.go, part of gopost
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

// Fields is an ordered collection of named point fields. Insertion order is
// preserved and is semantically load-bearing: the grid writers declare the
// fields in the header and lay out the binary payload in exactly this order,
// and the two must agree byte for byte.
//
// Each field is an Array whose leading axis is the component axis: a scalar
// pressure on an (nx, ny, nz) grid is shape (1, nx, ny, nz) (or (1, n)),
// a velocity is (3, nx, ny, nz). Column-major storage then interleaves the
// components of one grid point next to each other, which is what the VTK
// NumberOfComponents convention wants inside a single DataArray block.
type Fields struct {
	names  []string
	comps  map[string]int
	arrays map[string]*Array
}

// NewFields returns an empty field collection.
func NewFields() *Fields {
	return &Fields{
		comps:  make(map[string]int),
		arrays: make(map[string]*Array),
	}
}

// Add appends a field. components is 1 for a scalar, 2 or 3 for a vector,
// and must match the leading axis of the array's shape. Re-using a name is
// an error, as it would silently shadow a declared payload block.
func (f *Fields) Add(name string, components int, a *Array) error {
	if name == "" {
		return ShapeErrorf("Fields.Add: empty field name")
	}
	if a == nil {
		return ShapeErrorf("Fields.Add: nil array for field %q", name)
	}
	if components < 1 {
		return ShapeErrorf("Fields.Add: field %q has %d components", name, components)
	}
	if len(a.Shape()) < 1 || a.Shape()[0] != components {
		return ShapeErrorf("Fields.Add: field %q declares %d components but its leading axis is %v", name, components, a.Shape())
	}
	if _, dup := f.arrays[name]; dup {
		return ShapeErrorf("Fields.Add: field %q added twice", name)
	}
	f.names = append(f.names, name)
	f.comps[name] = components
	f.arrays[name] = a
	return nil
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Names returns the field names in insertion order. The caller must not
// modify the returned slice.
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	return f.names
}

// Components returns the component count of a field, or 0 if absent.
func (f *Fields) Components(name string) int { return f.comps[name] }

// Array returns the data of a field, or nil if absent.
func (f *Fields) Array(name string) *Array { return f.arrays[name] }
