// seehuhn.de/go/pslite - a minimal PostScript-like stack interpreter
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pslite

import (
	"fmt"
)

// Category classifies the errors raised by the scanner, the stacks and
// the operators.
type Category int

// These are the error categories.  The names follow the PostScript error
// names where one exists.
const (
	ScanError Category = iota + 1
	StackUnderflow
	StackOverflow
	DictStackUnderflow
	DictStackOverflow
	ExecStackOverflow
	TypeCheck
	UndefinedName
	RangeCheck
	UndefinedResult
	InvalidAccess
	NoCurrentPoint
	IOError
)

func (c Category) String() string {
	switch c {
	case ScanError:
		return "syntaxerror"
	case StackUnderflow:
		return "stackunderflow"
	case StackOverflow:
		return "stackoverflow"
	case DictStackUnderflow:
		return "dictstackunderflow"
	case DictStackOverflow:
		return "dictstackoverflow"
	case ExecStackOverflow:
		return "execstackoverflow"
	case TypeCheck:
		return "typecheck"
	case UndefinedName:
		return "undefined"
	case RangeCheck:
		return "rangecheck"
	case UndefinedResult:
		return "undefinedresult"
	case InvalidAccess:
		return "invalidaccess"
	case NoCurrentPoint:
		return "nocurrentpoint"
	case IOError:
		return "ioerror"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Error is the error type used for all failures inside the interpreter.
type Error struct {
	Category Category
	Msg      string

	// Err is the underlying error, if any.  This is set for I/O errors
	// from the program source and for errors reported by a graphics device.
	Err error
}

func (err *Error) Error() string {
	msg := err.Category.String()
	if err.Msg != "" {
		msg += ": " + err.Msg
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Is reports whether target is one of the category sentinels below and
// matches the category of err.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Err == nil && t.Category == err.Category
}

// Sentinel errors for use with errors.Is.
var (
	ErrScan               = &Error{Category: ScanError}
	ErrStackUnderflow     = &Error{Category: StackUnderflow}
	ErrStackOverflow      = &Error{Category: StackOverflow}
	ErrDictStackUnderflow = &Error{Category: DictStackUnderflow}
	ErrDictStackOverflow  = &Error{Category: DictStackOverflow}
	ErrExecStackOverflow  = &Error{Category: ExecStackOverflow}
	ErrTypeCheck          = &Error{Category: TypeCheck}
	ErrUndefinedName      = &Error{Category: UndefinedName}
	ErrRangeCheck         = &Error{Category: RangeCheck}
	ErrUndefinedResult    = &Error{Category: UndefinedResult}
	ErrInvalidAccess      = &Error{Category: InvalidAccess}
	ErrNoCurrentPoint     = &Error{Category: NoCurrentPoint}
	ErrIO                 = &Error{Category: IOError}
)

// e creates a new error of the given category.  By convention the message
// starts with the name of the operator which raised the error.
func e(cat Category, format string, args ...any) error {
	return &Error{Category: cat, Msg: fmt.Sprintf(format, args...)}
}

func wrap(cat Category, err error, format string, args ...any) error {
	return &Error{Category: cat, Msg: fmt.Sprintf(format, args...), Err: err}
}
