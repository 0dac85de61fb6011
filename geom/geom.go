/*
 * geom.go, part of gopost
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

//Package geom handles the small text format describing a spanwise-extruded
//body (a closed 2D ring of surface points swept along z) and turns it, plus
//the field histories sampled on it, into a structured grid file for viewing.
package geom

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	post "github.com/kmahrez/gopost"
	"github.com/kmahrez/gopost/vtk"
)

// ReadRing reads a body geometry file. The format is
//
//	nz
//	n
//	x1 y1
//	...
//	xn yn
//
// where nz is the number of spanwise stations and the n pairs are the ring
// points of one cross-section.
func ReadRing(name string) (ctp [][2]float64, nz int, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, Error{err.Error(), name, []string{"os.Open", "ReadRing"}, true}
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	readInt := func(what string) (int, error) {
		if !sc.Scan() {
			return 0, Error{"missing " + what + " line", name, []string{"ReadRing"}, true}
		}
		v, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			return 0, Error{fmt.Sprintf("can't parse %s: %s", what, err.Error()), name, []string{"ReadRing"}, true}
		}
		return v, nil
	}
	nz, err = readInt("nz")
	if err != nil {
		return nil, 0, err
	}
	n, err := readInt("point count")
	if err != nil {
		return nil, 0, err
	}
	if nz < 2 || n < 3 {
		return nil, 0, Error{fmt.Sprintf("degenerate body: %d ring points, %d stations", n, nz),
			name, []string{"ReadRing"}, true}
	}
	ctp = make([][2]float64, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, 0, Error{fmt.Sprintf("only %d of %d ring points present", i, n),
				name, []string{"ReadRing"}, true}
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return nil, 0, Error{fmt.Sprintf("ring point %d: want 'x y', got %q", i, sc.Text()),
				name, []string{"ReadRing"}, true}
		}
		for j := 0; j < 2; j++ {
			ctp[i][j], err = strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, 0, Error{fmt.Sprintf("ring point %d: %s", i, err.Error()),
					name, []string{"ReadRing"}, true}
			}
		}
	}
	return ctp, nz, nil
}

// Extrude sweeps the ring along z from lzs to lze over nz stations and
// writes the result as a structured grid file. The ring is closed by
// duplicating its first point, so the grid is (n+1, nz, 1) and every
// field, given with shape (components, n, nz), gets its seam column
// duplicated the same way before writing.
func Extrude(name string, ctp [][2]float64, nz int, lzs, lze float64, fields *post.Fields) error {
	n := len(ctp)
	if n < 3 || nz < 2 {
		return errDecorate(post.ShapeErrorf("degenerate body: %d ring points, %d stations", n, nz), "Extrude")
	}
	shell := post.Shape{n + 1, nz, 1}
	x := post.ZeroArray(shell)
	y := post.ZeroArray(shell)
	z := post.ZeroArray(shell)
	dz := (lze - lzs) / float64(nz-1)
	for j := 0; j < nz; j++ {
		for i := 0; i < n; i++ {
			x.Set(ctp[i][0], i, j, 0)
			y.Set(ctp[i][1], i, j, 0)
			z.Set(lzs+float64(j)*dz, i, j, 0)
		}
		//close the ring
		x.Set(ctp[0][0], n, j, 0)
		y.Set(ctp[0][1], n, j, 0)
		z.Set(lzs+float64(j)*dz, n, j, 0)
	}
	closed, err := closeSeam(fields, n, nz)
	if err != nil {
		return errDecorate(err, "Extrude")
	}
	if err := vtk.WriteStructured(name, x, y, z, closed); err != nil {
		return errDecorate(err, "Extrude")
	}
	return nil
}

// closeSeam rebuilds every (comps, n, nz) field as (comps, n+1, nz),
// duplicating the i=0 column at i=n so the values match the duplicated
// seam point of the grid.
func closeSeam(fields *post.Fields, n, nz int) (*post.Fields, error) {
	if fields.Len() == 0 {
		return fields, nil
	}
	out := post.NewFields()
	for _, name := range fields.Names() {
		comps := fields.Components(name)
		arr := fields.Array(name)
		want := post.Shape{comps, n, nz}
		if !arr.Shape().Equal(want) {
			return nil, post.ShapeErrorf("field %q has shape %v, extrusion wants %v", name, arr.Shape(), want)
		}
		grown := post.ZeroArray(post.Shape{comps, n + 1, nz})
		for k := 0; k < nz; k++ {
			for i := 0; i < n; i++ {
				for c := 0; c < comps; c++ {
					grown.Set(arr.At(c, i, k), c, i, k)
				}
			}
			for c := 0; c < comps; c++ {
				grown.Set(arr.At(c, 0, k), c, n, k)
			}
		}
		if err := out.Add(name, comps, grown); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Error is the error type for body geometry files. It fulfills post.Error
// and post.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("geom file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }
func (err Error) Format() string   { return "geom" }
func (err Error) Critical() bool   { return err.critical }

func errDecorate(err error, caller string) error {
	err2 := err.(post.Error)
	err2.Decorate(caller)
	return err2
}
