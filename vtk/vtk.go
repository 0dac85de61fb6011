/*
 * vtk.go, part of gopost
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

package vtk

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	post "github.com/kmahrez/gopost"
)

// Every element on disk is 4 bytes wide (float32 or int32). The offset
// arithmetic below depends on it.
const elemBytes = 4

type arrayKind int

const (
	float32Kind arrayKind = iota
	int32Kind
)

// dataArray is one declared block: its header attributes plus the payload
// it will contribute to the appended-data section.
type dataArray struct {
	name  string
	comps int
	kind  arrayKind
	f     []float32 //set when kind is float32Kind
	i     []int32   //set when kind is int32Kind
}

func (d *dataArray) count() int {
	if d.kind == int32Kind {
		return len(d.i)
	}
	return len(d.f)
}

func (d *dataArray) nbytes() int { return elemBytes * d.count() }

func (d *dataArray) typeName() string {
	if d.kind == int32Kind {
		return "Int32"
	}
	return "Float32"
}

// declaration returns the header line for the block, given its byte offset
// into the appended-data section.
func (d *dataArray) declaration(off int) string {
	return fmt.Sprintf(`<DataArray type="%s" Name="%s" format="appended" offset="%d" NumberOfComponents="%d"/>`,
		d.typeName(), d.name, off, d.comps)
}

// writeBlock emits the int32 byte-count prefix and then the packed
// little-endian elements, with no padding or alignment.
func writeBlock(w io.Writer, d *dataArray) error {
	if err := binary.Write(w, binary.LittleEndian, int32(d.nbytes())); err != nil {
		return err
	}
	if d.kind == int32Kind {
		return binary.Write(w, binary.LittleEndian, d.i)
	}
	return binary.Write(w, binary.LittleEndian, d.f)
}

// geometry is the topology-specific part of a grid file: which XML grid
// element it uses, how many points it has, and which data arrays describe
// its geometry. The surrounding header/offset/payload pipeline is shared.
type geometry interface {
	gridElement() string       //XML element name, also the VTKFile type
	gridAttr() string          //attributes of the grid element, with leading space
	pieceAttr() string         //attributes of <Piece>
	npoints() int              //grid points a field must cover
	arrays() []dataArray       //geometry blocks, in on-disk order
	sections(offs []int) []string //header lines declaring those blocks
	ext() string               //"vtr", "vts" or "vtu", for error reports
}

// ---- rectilinear ----

type rectilinear struct {
	x, y, z []float32
}

func (g *rectilinear) gridElement() string { return "RectilinearGrid" }

func (g *rectilinear) extent() string {
	return fmt.Sprintf("1 %d 1 %d 1 %d", len(g.x), len(g.y), len(g.z))
}

func (g *rectilinear) gridAttr() string  { return fmt.Sprintf(` WholeExtent="%s"`, g.extent()) }
func (g *rectilinear) pieceAttr() string { return fmt.Sprintf(` Extent="%s"`, g.extent()) }
func (g *rectilinear) npoints() int      { return len(g.x) * len(g.y) * len(g.z) }
func (g *rectilinear) ext() string       { return "vtr" }

func (g *rectilinear) arrays() []dataArray {
	return []dataArray{
		{name: "x", comps: 1, kind: float32Kind, f: g.x},
		{name: "y", comps: 1, kind: float32Kind, f: g.y},
		{name: "z", comps: 1, kind: float32Kind, f: g.z},
	}
}

func (g *rectilinear) sections(offs []int) []string {
	a := g.arrays()
	return []string{
		"<Coordinates>",
		a[0].declaration(offs[0]),
		a[1].declaration(offs[1]),
		a[2].declaration(offs[2]),
		"</Coordinates>",
	}
}

// ---- structured ----

type structured struct {
	nx, ny, nz int
	pts        []float32 //x,y,z interleaved, k-outer j-middle i-inner point order
}

func (g *structured) gridElement() string { return "StructuredGrid" }

func (g *structured) extent() string {
	return fmt.Sprintf("1 %d 1 %d 1 %d", g.nx, g.ny, g.nz)
}

func (g *structured) gridAttr() string  { return fmt.Sprintf(` WholeExtent="%s"`, g.extent()) }
func (g *structured) pieceAttr() string { return fmt.Sprintf(` Extent="%s"`, g.extent()) }
func (g *structured) npoints() int      { return g.nx * g.ny * g.nz }
func (g *structured) ext() string       { return "vts" }

func (g *structured) arrays() []dataArray {
	return []dataArray{{name: "Points", comps: 3, kind: float32Kind, f: g.pts}}
}

func (g *structured) sections(offs []int) []string {
	a := g.arrays()
	return []string{"<Points>", a[0].declaration(offs[0]), "</Points>"}
}

// ---- unstructured ----

type unstructured struct {
	pts     []float32 //x,y,z interleaved, in vertex list order
	conn    []int32
	offsets []int32
	types   []int32
}

func (g *unstructured) gridElement() string { return "UnstructuredGrid" }
func (g *unstructured) gridAttr() string    { return "" }
func (g *unstructured) npoints() int        { return len(g.pts) / 3 }
func (g *unstructured) ext() string         { return "vtu" }

func (g *unstructured) pieceAttr() string {
	return fmt.Sprintf(` NumberOfPoints="%d" NumberOfCells="%d"`, g.npoints(), len(g.types))
}

func (g *unstructured) arrays() []dataArray {
	return []dataArray{
		{name: "Points", comps: 3, kind: float32Kind, f: g.pts},
		{name: "connectivity", comps: 1, kind: int32Kind, i: g.conn},
		{name: "offsets", comps: 1, kind: int32Kind, i: g.offsets},
		{name: "types", comps: 1, kind: int32Kind, i: g.types},
	}
}

func (g *unstructured) sections(offs []int) []string {
	a := g.arrays()
	return []string{
		"<Points>",
		a[0].declaration(offs[0]),
		"</Points>",
		"<Cells>",
		a[1].declaration(offs[1]),
		a[2].declaration(offs[2]),
		a[3].declaration(offs[3]),
		"</Cells>",
	}
}

// ---- shared pipeline ----

// write validates the fields against the geometry, computes the full offset
// table, and only then opens the output. The file is written to a temporary
// name in the target directory and renamed on success.
func write(name string, g geometry, fields *post.Fields) error {
	decls := g.arrays()
	ngeom := len(decls)
	np := g.npoints()
	for _, fname := range fields.Names() {
		comps := fields.Components(fname)
		arr := fields.Array(fname)
		if arr.Len() != comps*np {
			return post.ShapeErrorf("field %q has %d elements, grid wants %d components × %d points",
				fname, arr.Len(), comps, np)
		}
		decls = append(decls, dataArray{
			name:  fname,
			comps: comps,
			kind:  float32Kind,
			f:     f32(arr.FlattenColumnMajor()),
		})
	}

	// Running offset: each block is its 4-byte length prefix plus payload.
	offs := make([]int, len(decls))
	off := 0
	for i := range decls {
		offs[i] = off
		off += elemBytes + decls[i].nbytes()
	}

	lines := make([]string, 0, len(decls)+10)
	lines = append(lines,
		fmt.Sprintf(`<VTKFile type="%s" version="0.1" byte_order="LittleEndian">`, g.gridElement()),
		fmt.Sprintf(`<%s%s>`, g.gridElement(), g.gridAttr()),
		fmt.Sprintf(`<Piece%s>`, g.pieceAttr()),
	)
	lines = append(lines, g.sections(offs[:ngeom])...)
	if fields.Len() > 0 {
		lines = append(lines, "<PointData>")
		for i := ngeom; i < len(decls); i++ {
			lines = append(lines, decls[i].declaration(offs[i]))
		}
		lines = append(lines, "</PointData>")
	}
	lines = append(lines,
		"</Piece>",
		fmt.Sprintf("</%s>", g.gridElement()),
		`<AppendedData encoding="raw">`,
	)

	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp-*")
	if err != nil {
		return Error{err.Error(), name, g.ext(), []string{"os.CreateTemp", "write"}, true}
	}
	done := false
	defer func() {
		//On any failure path the half-written temp file must not survive.
		if !done {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	werr := func(err error) error {
		return Error{err.Error(), name, g.ext(), []string{"write"}, true}
	}
	w := bufio.NewWriter(tmp)
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			return werr(err)
		}
	}
	//The underscore ends the XML part; the binary payload follows with no
	//separator whatsoever.
	if _, err := w.WriteString("_"); err != nil {
		return werr(err)
	}
	for i := range decls {
		if err := writeBlock(w, &decls[i]); err != nil {
			return werr(err)
		}
	}
	if _, err := w.WriteString("\n</AppendedData>\n</VTKFile>\n"); err != nil {
		return werr(err)
	}
	if err := w.Flush(); err != nil {
		return werr(err)
	}
	if err := tmp.Close(); err != nil {
		return werr(err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return Error{err.Error(), name, g.ext(), []string{"os.Rename", "write"}, true}
	}
	done = true
	return nil
}

func f32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

// WriteRectilinear writes a rectilinear grid file (conventionally name ends
// in ".vtr"). x, y and z are the independent 1D coordinate axes; the grid is
// their outer product, so each field must cover len(x)·len(y)·len(z) points.
// fields may be nil or empty, in which case no PointData block is declared.
func WriteRectilinear(name string, x, y, z []float64, fields *post.Fields) error {
	if len(x) == 0 || len(y) == 0 || len(z) == 0 {
		return errDecorate(post.ShapeErrorf("empty coordinate axis (%d, %d, %d points)",
			len(x), len(y), len(z)), "WriteRectilinear")
	}
	g := &rectilinear{x: f32(x), y: f32(y), z: f32(z)}
	if err := write(name, g, fields); err != nil {
		return errDecorate(err, "WriteRectilinear")
	}
	return nil
}

// WriteStructured writes a structured grid file (".vts"). x, y and z hold
// the explicit per-vertex coordinates and must share one 3-axis shape.
// Points are emitted with k varying slowest and i fastest, the opposite
// nesting from the column-major field flattening; both orders are part of
// the on-disk contract.
func WriteStructured(name string, x, y, z *post.Array, fields *post.Fields) error {
	if x == nil || y == nil || z == nil {
		return errDecorate(post.ShapeErrorf("nil coordinate array"), "WriteStructured")
	}
	sh := x.Shape()
	if len(sh) != 3 {
		return errDecorate(post.ShapeErrorf("structured coordinates must be 3-D, got shape %v", sh), "WriteStructured")
	}
	if !sh.Equal(y.Shape()) || !sh.Equal(z.Shape()) {
		return errDecorate(post.ShapeErrorf("coordinate shapes differ: %v, %v, %v",
			sh, y.Shape(), z.Shape()), "WriteStructured")
	}
	nx, ny, nz := sh[0], sh[1], sh[2]
	pts := make([]float32, 0, 3*nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				pts = append(pts, float32(x.At(i, j, k)), float32(y.At(i, j, k)), float32(z.At(i, j, k)))
			}
		}
	}
	g := &structured{nx: nx, ny: ny, nz: nz, pts: pts}
	if err := write(name, g, fields); err != nil {
		return errDecorate(err, "WriteStructured")
	}
	return nil
}

// WriteUnstructured writes an unstructured grid file (".vtu") from a flat
// vertex list and explicit cells. Every vertex index of every cell must lie
// in [0, len(points)). The Cells section holds, in this order, the flattened
// connectivity, the inclusive prefix sum of the cell sizes, and the topology
// type codes, all as int32.
func WriteUnstructured(name string, points [][3]float64, cells []post.Cell, fields *post.Fields) error {
	if len(points) == 0 {
		return errDecorate(post.ShapeErrorf("empty vertex list"), "WriteUnstructured")
	}
	pts := make([]float32, 0, 3*len(points))
	for _, p := range points {
		pts = append(pts, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	var conn []int32
	offsets := make([]int32, len(cells))
	types := make([]int32, len(cells))
	var total int32
	for c, cell := range cells {
		if len(cell.Verts) == 0 {
			return errDecorate(post.ShapeErrorf("cell %d has no vertices", c), "WriteUnstructured")
		}
		for _, v := range cell.Verts {
			if v < 0 || int(v) >= len(points) {
				return errDecorate(post.ShapeErrorf("cell %d references vertex %d, have %d vertices",
					c, v, len(points)), "WriteUnstructured")
			}
		}
		conn = append(conn, cell.Verts...)
		total += int32(len(cell.Verts))
		offsets[c] = total
		types[c] = int32(cell.Kind)
	}
	g := &unstructured{pts: pts, conn: conn, offsets: offsets, types: types}
	if err := write(name, g, fields); err != nil {
		return errDecorate(err, "WriteUnstructured")
	}
	return nil
}
