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
	"errors"
	"testing"
)

func TestObjectAccessors(t *testing.T) {
	o := Integer(7)
	if _, err := o.AsReal(); !errors.Is(err, ErrTypeCheck) {
		t.Errorf("AsReal on integer: %v", err)
	}
	if _, err := o.AsName(); !errors.Is(err, ErrTypeCheck) {
		t.Errorf("AsName on integer: %v", err)
	}
	if x, err := o.AsNumber(); err != nil || x != 7 {
		t.Errorf("AsNumber: %v %v", x, err)
	}

	n := Name("abc")
	if n.IsExecutable() {
		t.Error("literal name is executable")
	}
	if !ExecName("abc").IsExecutable() {
		t.Error("executable name is not executable")
	}
	if n.Equal(ExecName("abc")) {
		t.Error("literal and executable names compare equal")
	}
	if _, err := String([]byte("x")).AsOperator(); !errors.Is(err, ErrTypeCheck) {
		t.Errorf("AsOperator on string: %v", err)
	}
}

func TestObjectAccess(t *testing.T) {
	o := Integer(1)
	if o.Access() != Unlimited {
		t.Errorf("default access is %s", o.Access())
	}
	r := o.WithAccess(ReadOnly)
	if r.Access() != ReadOnly || o.Access() != Unlimited {
		t.Error("WithAccess modified the original object")
	}
}

func TestObjectString(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{Integer(-3), "-3"},
		{Real(2), "2.0"},
		{Real(0.5), "0.5"},
		{Name("x"), "/x"},
		{ExecName("x"), "x"},
		{String([]byte("hi")), "(hi)"},
		{NewOperator("add", bAdd), "--add--"},
		{Procedure(Integer(1), ExecName("add")), "{1 add}"},
		{Object{}, "<invalid>"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.out {
			t.Errorf("got %q, want %q", got, c.out)
		}
	}
}
