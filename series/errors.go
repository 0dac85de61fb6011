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

package series

import (
	"fmt"

	post "github.com/kmahrez/gopost"
)

// Error is the general error type for time-series reading. It fulfills
// post.Error and post.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("series file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }
func (err Error) Format() string   { return "series" }
func (err Error) Critical() bool   { return err.critical }

// FormatError reports a malformed or ambiguous record schema: an unknown
// column letter, a non-positive column count, or no format at all.
type FormatError struct {
	message  string
	filename string
	deco     []string
}

func (err *FormatError) Error() string {
	return fmt.Sprintf("series format error: %s", err.message)
}

// Decorate adds new information to the error
func (err *FormatError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *FormatError) FileName() string { return err.filename }
func (err *FormatError) Format() string   { return "series" }
func (err *FormatError) Critical() bool   { return true }

// lastRecordError implements post.EndOfData: the clean end of the record
// stream, not a failure.
type lastRecordError struct {
	fileName string
	deco     []string
}

func newLastRecordError(filename, caller string) *lastRecordError {
	return &lastRecordError{fileName: filename, deco: []string{caller}}
}

// NormalLastRecordTermination does nothing
func (err *lastRecordError) NormalLastRecordTermination() {}

func (err *lastRecordError) Error() string    { return "EOF" }
func (err *lastRecordError) FileName() string { return err.fileName }
func (err *lastRecordError) Format() string   { return "series" }
func (err *lastRecordError) Critical() bool   { return false }

// Decorate adds new information to the error
func (err *lastRecordError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// errDecorate asserts that err implements post.Error and adds the caller's
// name to it before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(post.Error)
	err2.Decorate(caller)
	return err2
}
