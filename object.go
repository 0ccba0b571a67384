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
	"strconv"
	"strings"
)

// Kind is the type tag of an Object.
type Kind uint8

// These are the kinds of objects the interpreter knows about.
const (
	InvalidKind Kind = iota
	IntegerKind
	RealKind
	NameKind
	StringKind
	OperatorKind
	ProcedureKind
)

func (k Kind) String() string {
	switch k {
	case IntegerKind:
		return "integertype"
	case RealKind:
		return "realtype"
	case NameKind:
		return "nametype"
	case StringKind:
		return "stringtype"
	case OperatorKind:
		return "operatortype"
	case ProcedureKind:
		return "arraytype"
	default:
		return "invalidtype"
	}
}

// Access describes which operations may be applied to an object.
// The values are ordered from least to most restrictive.
type Access uint8

// These are the access modes.
const (
	Unlimited Access = iota
	ReadOnly
	ExecuteOnly
	NoAccess
)

func (a Access) String() string {
	switch a {
	case Unlimited:
		return "unlimited"
	case ReadOnly:
		return "readonly"
	case ExecuteOnly:
		return "executeonly"
	case NoAccess:
		return "noaccess"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

// Operator is the signature of a native procedure.  Operators only see the
// two stacks they are given.
type Operator func(os *OperandStack, ds *DictionaryStack) error

// Object is a value of the language.  The kind of an object is fixed when
// the object is constructed.  Objects are immutable; copying an Object
// shares the payload of strings and procedures instead of duplicating it.
//
// The zero Object has kind InvalidKind.
type Object struct {
	kind   Kind
	access Access
	exec   bool

	i    int64
	r    float64
	text string // name text, or the name of an operator
	str  []byte
	op   Operator
	proc []Object
}

// Integer returns a new integer object.
func Integer(x int64) Object {
	return Object{kind: IntegerKind, i: x}
}

// Real returns a new real object.
func Real(x float64) Object {
	return Object{kind: RealKind, r: x}
}

// Name returns a new literal name.  When executed, a literal name is
// pushed onto the operand stack.
func Name(s string) Object {
	return Object{kind: NameKind, text: s}
}

// ExecName returns a new executable name.  When executed, the name is
// looked up on the dictionary stack and the value found there is invoked.
func ExecName(s string) Object {
	return Object{kind: NameKind, text: s, exec: true}
}

// String returns a new string object.  The object refers to b; the caller
// must not modify b afterwards.
func String(b []byte) Object {
	return Object{kind: StringKind, str: b}
}

// NewOperator wraps a native procedure as an object.
func NewOperator(name string, fn Operator) Object {
	return Object{kind: OperatorKind, text: name, op: fn, exec: true}
}

// Procedure returns an executable procedure with the given body.
func Procedure(body ...Object) Object {
	return Object{kind: ProcedureKind, proc: body, exec: true}
}

// Kind returns the type tag of the object.
func (o Object) Kind() Kind {
	return o.kind
}

// Access returns the access mode of the object.
func (o Object) Access() Access {
	return o.access
}

// WithAccess returns a copy of o with the access mode set to a.
func (o Object) WithAccess(a Access) Object {
	o.access = a
	return o
}

// IsExecutable reports whether the object is executed, rather than
// pushed, when the interpreter encounters it.
func (o Object) IsExecutable() bool {
	return o.exec
}

// IsNumber reports whether o is an Integer or a Real.
func (o Object) IsNumber() bool {
	return o.kind == IntegerKind || o.kind == RealKind
}

// AsInteger returns the value of an integer object.
func (o Object) AsInteger() (int64, error) {
	if o.kind != IntegerKind {
		return 0, e(TypeCheck, "expected integer, got %s", o.kind)
	}
	return o.i, nil
}

// AsReal returns the value of a real object.
func (o Object) AsReal() (float64, error) {
	if o.kind != RealKind {
		return 0, e(TypeCheck, "expected real, got %s", o.kind)
	}
	return o.r, nil
}

// AsNumber returns the value of an integer or real object as a float64.
func (o Object) AsNumber() (float64, error) {
	switch o.kind {
	case IntegerKind:
		return float64(o.i), nil
	case RealKind:
		return o.r, nil
	default:
		return 0, e(TypeCheck, "expected number, got %s", o.kind)
	}
}

// AsName returns the text of a name object.
func (o Object) AsName() (string, error) {
	if o.kind != NameKind {
		return "", e(TypeCheck, "expected name, got %s", o.kind)
	}
	return o.text, nil
}

// AsString returns the bytes of a string object.
// The returned slice is shared with the object and must not be modified.
func (o Object) AsString() ([]byte, error) {
	if o.kind != StringKind {
		return nil, e(TypeCheck, "expected string, got %s", o.kind)
	}
	return o.str, nil
}

// AsOperator returns the native procedure of an operator object.
func (o Object) AsOperator() (Operator, error) {
	if o.kind != OperatorKind {
		return nil, e(TypeCheck, "expected operator, got %s", o.kind)
	}
	return o.op, nil
}

// AsProcedure returns the body of a procedure.
// The returned slice is shared with the object and must not be modified.
func (o Object) AsProcedure() ([]Object, error) {
	if o.kind != ProcedureKind {
		return nil, e(TypeCheck, "expected procedure, got %s", o.kind)
	}
	return o.proc, nil
}

// Equal reports whether two objects have the same kind, executable flag,
// access mode and value.  Operators compare by name.
func (o Object) Equal(other Object) bool {
	if o.kind != other.kind || o.exec != other.exec || o.access != other.access {
		return false
	}
	switch o.kind {
	case IntegerKind:
		return o.i == other.i
	case RealKind:
		return o.r == other.r
	case NameKind, OperatorKind:
		return o.text == other.text
	case StringKind:
		return string(o.str) == string(other.str)
	case ProcedureKind:
		if len(o.proc) != len(other.proc) {
			return false
		}
		for i := range o.proc {
			if !o.proc[i].Equal(other.proc[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (o Object) String() string {
	switch o.kind {
	case IntegerKind:
		return strconv.FormatInt(o.i, 10)
	case RealKind:
		s := strconv.FormatFloat(o.r, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case NameKind:
		if o.exec {
			return o.text
		}
		return "/" + o.text
	case StringKind:
		return "(" + string(o.str) + ")"
	case OperatorKind:
		return "--" + o.text + "--"
	case ProcedureKind:
		var ss []string
		for _, oi := range o.proc {
			ss = append(ss, oi.String())
		}
		return "{" + strings.Join(ss, " ") + "}"
	default:
		return "<invalid>"
	}
}
