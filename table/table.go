/*
 * table.go, part of gopost
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

//Package table reads and writes the plain-text spreadsheet format used for
//small post-processing results. A full file is a '#'-commented preamble, a
//'$' separator line, a header of column names, and whitespace-separated
//numeric rows in scientific notation; the lite variant drops the preamble
//and separator. Cells are right-aligned in 15-character columns.
package table

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	post "github.com/kmahrez/gopost"
	"gonum.org/v1/gonum/mat"
)

const cellWidth = 15

// Write writes a full spreadsheet file: a commented preamble with the date
// and the optional description lines, the '$' separator, the column header,
// then the data. items must have one name per column of m, each shorter than
// the cell width. Write refuses to overwrite an existing file.
func Write(name string, m mat.Matrix, items []string, description ...string) error {
	return output(name, m, items, true, description)
}

// WriteLite writes only the column header and the data, no preamble.
func WriteLite(name string, m mat.Matrix, items []string) error {
	return output(name, m, items, false, nil)
}

func output(name string, m mat.Matrix, items []string, full bool, description []string) error {
	_, cols := m.Dims()
	if len(items) != cols {
		return errDecorate(post.ShapeErrorf("%d column names for %d columns", len(items), cols), "table.Write")
	}
	for _, it := range items {
		if len(it) > cellWidth-1 {
			return Error{fmt.Sprintf("item %q longer than %d characters", it, cellWidth-1), name, []string{"Write"}, true}
		}
	}
	if _, err := os.Stat(name); err == nil {
		//Results are cheap to regenerate and easy to clobber; make the
		//caller delete the old file on purpose.
		return Error{"file already exists", name, []string{"Write"}, true}
	}
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"os.Create", "Write"}, true}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if full {
		now := time.Now()
		fmt.Fprintf(w, "# gopost table \n")
		fmt.Fprintf(w, "# Date: %d/%d/%d \n", now.Year(), int(now.Month()), now.Day())
		fmt.Fprintf(w, "# Time: %d:%d \n", now.Hour(), now.Minute())
		for _, d := range description {
			for _, line := range strings.Split(d, "\n") {
				fmt.Fprintf(w, "# %s \n", line)
			}
		}
		fmt.Fprintf(w, "$ \n")
	}
	for _, it := range items {
		fmt.Fprintf(w, "%*s", cellWidth, it)
	}
	fmt.Fprintln(w)
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			fmt.Fprintf(w, "%*.*e", cellWidth, cellWidth/2-1, m.At(i, j))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return Error{err.Error(), name, []string{"Flush", "Write"}, true}
	}
	return nil
}

// Read reads a full spreadsheet file back: it skips everything up to and
// including the '$' line, takes the next line as the column names, and
// parses the remaining non-empty lines as float64 rows. A file without a
// '$' separator is malformed.
func Read(name string) (*mat.Dense, []string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, Error{err.Error(), name, []string{"os.Open", "Read"}, true}
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	found := false
	for sc.Scan() {
		if strings.HasPrefix(strings.TrimSpace(sc.Text()), "$") {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, Error{"no '$' separator found", name, []string{"Read"}, true}
	}
	if !sc.Scan() {
		return nil, nil, Error{"no column header after '$'", name, []string{"Read"}, true}
	}
	items := strings.Fields(sc.Text())
	if len(items) == 0 {
		return nil, nil, Error{"empty column header", name, []string{"Read"}, true}
	}
	var data []float64
	rows := 0
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(items) {
			return nil, nil, Error{fmt.Sprintf("row %d has %d cells, header has %d",
				rows+1, len(fields), len(items)), name, []string{"Read"}, true}
		}
		for _, cell := range fields {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("can't parse cell %q: %s", cell, err.Error()),
					name, []string{"Read"}, true}
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	if rows == 0 {
		return nil, items, nil
	}
	return mat.NewDense(rows, len(items), data), items, nil
}

// Error is the error type for spreadsheet I/O. It fulfills post.Error and
// post.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("table file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }
func (err Error) Format() string   { return "table" }
func (err Error) Critical() bool   { return err.critical }

func errDecorate(err error, caller string) error {
	err2 := err.(post.Error)
	err2.Decorate(caller)
	return err2
}
