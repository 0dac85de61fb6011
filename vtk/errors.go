/*
 * errors.go, part of gopost
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
	"fmt"

	post "github.com/kmahrez/gopost"
)

// Error is the error type for grid file writing. It fulfills post.Error and
// post.FileError.
type Error struct {
	message  string
	filename string
	format   string //"vtr", "vts" or "vtu"
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("%s file %s error: %s", err.format, err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Not a pointer receiver, but deco is a slice, hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file whose writing failed
func (err Error) FileName() string { return err.filename }

// Format returns the grid file format associated to the error
func (err Error) Format() string { return err.format }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

// errDecorate asserts that err implements post.Error and adds the caller's
// name to it before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(post.Error)
	err2.Decorate(caller)
	return err2
}
