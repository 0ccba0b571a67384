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
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(s string, stackLen int) (*Interpreter, error) {
	intp := NewInterpreter()
	if !intp.LoadString(s) {
		return intp, intp.Err()
	}
	if n := len(intp.Stack()); n != stackLen {
		return intp, fmt.Errorf("stack length is %d, expected %d", n, stackLen)
	}
	return intp, nil
}

// runOp executes a single operator on a stack holding args.
func runOp(t *testing.T, op string, args ...Object) (*Interpreter, error) {
	t.Helper()
	intp := NewInterpreter()
	if err := intp.Push(args...); err != nil {
		t.Fatal(err)
	}
	intp.LoadString(op)
	return intp, intp.Err()
}

func TestCmdAdd(t *testing.T) {
	type testCase struct {
		a, b Object
		out  Object
	}
	cases := []testCase{
		{Integer(1), Integer(2), Integer(3)},
		{Integer(1), Real(2), Real(3)},
		{Real(1), Integer(2), Real(3)},
		{Real(1), Real(2), Real(3)},
		{Integer(math.MaxInt64), Integer(1), Real(math.MaxInt64 + 1)},
		{Integer(math.MinInt64), Integer(-1), Real(math.MinInt64 - 1.0)},
	}
	for _, c := range cases {
		intp, err := runOp(t, "add", c.a, c.b)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff([]Object{c.out}, intp.Stack()); d != "" {
			t.Errorf("%s %s add: %s", c.a, c.b, d)
		}
	}
}

func TestCmdSub(t *testing.T) {
	type testCase struct {
		a, b Object
		out  Object
	}
	cases := []testCase{
		{Integer(5), Integer(3), Integer(2)},
		{Integer(3), Integer(5), Integer(-2)},
		{Real(0.5), Integer(1), Real(-0.5)},
		{Integer(0), Integer(math.MinInt64), Real(-float64(math.MinInt64))},
		{Integer(math.MinInt64), Integer(1), Real(float64(math.MinInt64) - 1)},
	}
	for _, c := range cases {
		intp, err := runOp(t, "sub", c.a, c.b)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff([]Object{c.out}, intp.Stack()); d != "" {
			t.Errorf("%s %s sub: %s", c.a, c.b, d)
		}
	}
}

func TestCmdMul(t *testing.T) {
	type testCase struct {
		a, b Object
		out  Object
	}
	cases := []testCase{
		{Integer(6), Integer(7), Integer(42)},
		{Integer(0), Integer(math.MinInt64), Integer(0)},
		{Integer(2), Real(1.5), Real(3)},
		{Integer(math.MaxInt64), Integer(2), Real(2 * float64(math.MaxInt64))},
		{Integer(math.MinInt64), Integer(-1), Real(-float64(math.MinInt64))},
		{Integer(-1), Integer(math.MinInt64), Real(-float64(math.MinInt64))},
	}
	for _, c := range cases {
		intp, err := runOp(t, "mul", c.a, c.b)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff([]Object{c.out}, intp.Stack()); d != "" {
			t.Errorf("%s %s mul: %s", c.a, c.b, d)
		}
	}
}

func TestCmdDiv(t *testing.T) {
	type testCase struct {
		a, b Object
		out  Object
	}
	cases := []testCase{
		{Integer(6), Integer(3), Integer(2)},
		{Integer(7), Integer(2), Integer(3)},
		{Integer(-7), Integer(2), Integer(-3)},
		{Integer(100), Integer(-200), Integer(0)},
		{Integer(7), Real(2), Real(3.5)},
		{Real(1), Integer(4), Real(0.25)},
		{Integer(math.MinInt64), Integer(-1), Real(-float64(math.MinInt64))},
	}
	for _, c := range cases {
		intp, err := runOp(t, "div", c.a, c.b)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff([]Object{c.out}, intp.Stack()); d != "" {
			t.Errorf("%s %s div: %s", c.a, c.b, d)
		}
	}

	for _, zero := range []Object{Integer(0), Real(0)} {
		intp, err := runOp(t, "div", Integer(1), zero)
		if !errors.Is(err, ErrUndefinedResult) {
			t.Errorf("1 %s div: expected undefinedresult, got %v", zero, err)
		}
		if len(intp.Stack()) != 2 {
			t.Errorf("1 %s div: operands were consumed", zero)
		}
	}
}

func TestCmdIdivMod(t *testing.T) {
	intp, err := run("7 2 idiv -7 2 idiv 7 2 mod -7 2 mod", 4)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(3, -3, 1, -1), intp.Stack()); d != "" {
		t.Error(d)
	}

	_, err = runOp(t, "idiv", Real(7), Integer(2))
	if !errors.Is(err, ErrTypeCheck) {
		t.Errorf("expected typecheck, got %v", err)
	}
	_, err = runOp(t, "mod", Integer(7), Integer(0))
	if !errors.Is(err, ErrUndefinedResult) {
		t.Errorf("expected undefinedresult, got %v", err)
	}
}

func TestCmdNegAbs(t *testing.T) {
	type testCase struct {
		op  string
		in  Object
		out Object
	}
	cases := []testCase{
		{"neg", Integer(3), Integer(-3)},
		{"neg", Real(-1.5), Real(1.5)},
		{"neg", Integer(math.MinInt64), Real(-float64(math.MinInt64))},
		{"abs", Integer(0), Integer(0)},
		{"abs", Integer(-100), Integer(100)},
		{"abs", Integer(math.MinInt64), Real(-float64(math.MinInt64))},
		{"abs", Real(-1), Real(1)},
	}
	for _, c := range cases {
		intp, err := runOp(t, c.op, c.in)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff([]Object{c.out}, intp.Stack()); d != "" {
			t.Errorf("%s %s: %s", c.in, c.op, d)
		}
	}
}

func TestArithmeticErrors(t *testing.T) {
	for _, op := range []string{"add", "sub", "mul", "div"} {
		intp, err := runOp(t, op, Integer(1))
		if !errors.Is(err, ErrStackUnderflow) {
			t.Errorf("%s: expected stackunderflow, got %v", op, err)
		}
		if d := cmp.Diff(ints(1), intp.Stack()); d != "" {
			t.Errorf("%s: %s", op, d)
		}

		intp, err = runOp(t, op, Integer(1), Name("x"))
		if !errors.Is(err, ErrTypeCheck) {
			t.Errorf("%s: expected typecheck, got %v", op, err)
		}
		if len(intp.Stack()) != 2 {
			t.Errorf("%s: operands were consumed", op)
		}
	}
}

func TestCmdPop(t *testing.T) {
	intp, err := run("1 2 3 pop", 2)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(1, 2), intp.Stack()); d != "" {
		t.Fatal(d)
	}
}

func TestCmdExch(t *testing.T) {
	intp, err := run("1 2 3 exch", 3)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(1, 3, 2), intp.Stack()); d != "" {
		t.Fatal(d)
	}
}

func TestCmdDup(t *testing.T) {
	intp, err := run("1 2 3 dup", 4)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(1, 2, 3, 3), intp.Stack()); d != "" {
		t.Fatal(d)
	}
}

func TestCmdCopy(t *testing.T) {
	intp, err := run("1 2 3 2 copy", 5)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(1, 2, 3, 2, 3), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	_, err = run("1 2 3 copy", 0)
	if !errors.Is(err, ErrRangeCheck) {
		t.Errorf("expected rangecheck, got %v", err)
	}
	_, err = run("1 -1 copy", 0)
	if !errors.Is(err, ErrRangeCheck) {
		t.Errorf("expected rangecheck, got %v", err)
	}
	_, err = run("1 /a copy", 0)
	if !errors.Is(err, ErrTypeCheck) {
		t.Errorf("expected typecheck, got %v", err)
	}
}

func TestCmdIndex(t *testing.T) {
	intp, err := run("10 20 30 40 1 index", 5)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(10, 20, 30, 40, 30), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	intp, err = run("10 20 30 40 3 index", 5)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(10, 20, 30, 40, 10), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	intp, err = run("10 20 4 index", 0)
	if !errors.Is(err, ErrRangeCheck) {
		t.Errorf("expected rangecheck, got %v", err)
	}
	if d := cmp.Diff(ints(10, 20, 4), intp.Stack()); d != "" {
		t.Error(d)
	}
}

func TestCmdRoll(t *testing.T) {
	intp, err := run("1 2 3 3 1 roll", 3)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(3, 1, 2), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	intp, err = run("1 2 3 3 -1 roll", 3)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(2, 3, 1), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	_, err = run("1 2 3 -1 1 roll", 0)
	if !errors.Is(err, ErrRangeCheck) {
		t.Errorf("expected rangecheck, got %v", err)
	}
	_, err = run("1 2 4 1 roll", 0)
	if !errors.Is(err, ErrRangeCheck) {
		t.Errorf("expected rangecheck, got %v", err)
	}
	_, err = run("1 2 2 1.5 roll", 0)
	if !errors.Is(err, ErrTypeCheck) {
		t.Errorf("expected typecheck, got %v", err)
	}
}

func TestCmdClearCount(t *testing.T) {
	intp, err := run("1 2 3 count", 4)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(1, 2, 3, 3), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	_, err = run("1 2 3 clear", 0)
	if err != nil {
		t.Fatal(err)
	}
	intp, err = run("clear count", 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(0), intp.Stack()); d != "" {
		t.Fatal(d)
	}
}

func TestCmdDef(t *testing.T) {
	intp, err := run("/a 1 def /b 2 def a b add", 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(3), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	frames := intp.Dictionaries()
	user := frames[len(frames)-1]
	exp := Dictionary{"a": Integer(1), "b": Integer(2)}
	if d := cmp.Diff(exp, user); d != "" {
		t.Error(d)
	}

	_, err = run("1 2 def", 0)
	if !errors.Is(err, ErrTypeCheck) {
		t.Errorf("expected typecheck, got %v", err)
	}
}

func TestCmdDefShadowsBuiltin(t *testing.T) {
	intp, err := run("/add /sub load def 5 3 add", 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(2), intp.Stack()); d != "" {
		t.Fatal(d)
	}
}

func TestCmdLoad(t *testing.T) {
	intp, err := run("/x 7 def /x load", 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(ints(7), intp.Stack()); d != "" {
		t.Fatal(d)
	}

	intp, err = run("/nosuchname load", 0)
	if !errors.Is(err, ErrUndefinedName) {
		t.Errorf("expected undefined, got %v", err)
	}
	if d := cmp.Diff([]Object{Name("nosuchname")}, intp.Stack()); d != "" {
		t.Error(d)
	}
}

func TestCmdAccess(t *testing.T) {
	intp, err := run("1 readonly 2 executeonly 3 noaccess", 3)
	if err != nil {
		t.Fatal(err)
	}
	exp := []Access{ReadOnly, ExecuteOnly, NoAccess}
	for i, o := range intp.Stack() {
		if o.Access() != exp[i] {
			t.Errorf("%d: access %s, want %s", i, o.Access(), exp[i])
		}
	}

	_, err = run("1 noaccess readonly", 0)
	if !errors.Is(err, ErrInvalidAccess) {
		t.Errorf("expected invalidaccess, got %v", err)
	}
}
