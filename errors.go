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

package post

import "fmt"

// Error is the interface all errors in this library implement. The Decorate
// method adds information as the error is passed up, so the final message
// carries the chain of callers that saw it. Each call returns the current
// decoration slice; passing an empty string only queries it, nothing is added.
type Error interface {
	error
	Decorate(string) []string
}

// FileError is the interface for errors tied to one input or output file.
type FileError interface {
	Error
	FileName() string //the file associated to the failure, or "" if none
	Format() string   //the format of that file ("vtk", "series", ...)
	Critical() bool
}

// EndOfData marks the harmless error used by the record readers to signal a
// clean end of file. The extra method does nothing; it only separates this
// interface from real FileErrors so callers can terminate their loops quietly.
type EndOfData interface {
	FileError
	NormalLastRecordTermination() //does nothing
}

// ShapeError reports caller-supplied arrays whose dimensions disagree with
// the grid, or with each other. It is always critical: the writers check
// shapes before opening the output file, so no partial file is left behind.
type ShapeError struct {
	message string
	deco    []string
}

// ShapeErrorf builds a ShapeError with an fmt-style message.
func ShapeErrorf(format string, args ...interface{}) *ShapeError {
	return &ShapeError{message: fmt.Sprintf(format, args...)}
}

func (err *ShapeError) Error() string {
	return fmt.Sprintf("gopost: shape mismatch: %s", err.message)
}

// Decorate adds new information to the error
func (err *ShapeError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *ShapeError) Critical() bool { return true }
