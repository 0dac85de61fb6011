/*
 * doc.go, part of gopost
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

/*
Package post collects the pieces shared by the gopost format codecs:
the dense column-major Array container, the ordered Fields collection,
unstructured-grid cells, and the error interfaces every subpackage
implements.

The subpackages do the actual file work. vtk writes the three VTK
XML+appended-binary grid containers (.vtr, .vts, .vtu), series reads
fixed-width binary time-series records, table reads and writes the
plain-text spreadsheet format, hdf is a thin accessor for named HDF5
datasets, and geom builds extruded-body structured grids. The
cmd/hdf2vtk command strings them together for the common
HDF5-to-rectilinear-grid conversion.

Everything here works on in-memory arrays handed over by the caller;
there is no shared state and each read or write call owns its file
handle for the duration of the call only.
*/
package post
