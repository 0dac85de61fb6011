/*
 * grid.go, part of gopost
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

// CellKind is the VTK topology type code of an unstructured-grid cell. The
// numeric values are fixed by the VTK format, do not renumber.
type CellKind int32

const (
	Vertex     CellKind = 1
	Line       CellKind = 3
	Triangle   CellKind = 5
	Quad       CellKind = 9
	Tetra      CellKind = 10
	Voxel      CellKind = 11
	Hexahedron CellKind = 12
	Wedge      CellKind = 13
	Pyramid    CellKind = 14
)

// Cell is one unstructured-grid cell: a topology tag plus the indices of its
// vertices, in the order the caller wants them on disk. The number of
// vertices is implicit in the length of Verts; the writers derive the VTK
// offsets array from it as an inclusive prefix sum over the cell sizes.
type Cell struct {
	Kind  CellKind
	Verts []int32
}
