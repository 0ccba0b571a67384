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
	"math"
)

// makeSystemDict returns a new table of the builtin operators.
func makeSystemDict() Dictionary {
	ops := map[string]Operator{
		"abs":         bAbs,
		"add":         bAdd,
		"clear":       bClear,
		"copy":        bCopy,
		"count":       bCount,
		"def":         bDef,
		"div":         bDiv,
		"dup":         bDup,
		"exch":        bExch,
		"executeonly": bExecuteonly,
		"idiv":        bIdiv,
		"index":       bIndex,
		"load":        bLoad,
		"mod":         bMod,
		"mul":         bMul,
		"neg":         bNeg,
		"noaccess":    bNoaccess,
		"pop":         bPop,
		"readonly":    bReadonly,
		"roll":        bRoll,
		"sub":         bSub,
	}
	systemDict := make(Dictionary, len(ops))
	for name, fn := range ops {
		systemDict[name] = NewOperator(name, fn)
	}
	return systemDict
}

// numArgs checks that the top two objects on the stack are numbers and
// returns them, without popping.  The first return value is the deeper
// of the two objects, i.e. the left operand.
func numArgs(s *OperandStack, op string) (a, b Object, err error) {
	if s.Depth() < 2 {
		return Object{}, Object{}, e(StackUnderflow, "%s: not enough arguments", op)
	}
	a, _ = s.PeekAt(1)
	b, _ = s.PeekAt(0)
	if !a.IsNumber() || !b.IsNumber() {
		return Object{}, Object{}, e(TypeCheck, "%s: needs numbers, got %s and %s", op, a.Kind(), b.Kind())
	}
	return a, b, nil
}

// intArgs is like numArgs, but requires integers.
func intArgs(s *OperandStack, op string) (a, b int64, err error) {
	if s.Depth() < 2 {
		return 0, 0, e(StackUnderflow, "%s: not enough arguments", op)
	}
	ao, _ := s.PeekAt(1)
	bo, _ := s.PeekAt(0)
	a, errA := ao.AsInteger()
	b, errB := bo.AsInteger()
	if errA != nil || errB != nil {
		return 0, 0, e(TypeCheck, "%s: needs integers, got %s and %s", op, ao.Kind(), bo.Kind())
	}
	return a, b, nil
}

// replace pops n objects and pushes res.  The caller must have checked
// that n objects are present.
func replace(s *OperandStack, n int, res Object) error {
	for range n {
		s.Pop()
	}
	return s.Push(res)
}

// arith implements the promotion rule shared by add, sub and mul: if either
// operand is real the result is real, otherwise fi is used.  fi returns
// false if the integer result overflows, in which case the real result is
// used instead.
func arith(s *OperandStack, op string, fi func(a, b int64) (int64, bool), fr func(a, b float64) float64) error {
	a, b, err := numArgs(s, op)
	if err != nil {
		return err
	}
	if a.Kind() == IntegerKind && b.Kind() == IntegerKind {
		ai, _ := a.AsInteger()
		bi, _ := b.AsInteger()
		if ci, ok := fi(ai, bi); ok {
			return replace(s, 2, Integer(ci))
		}
	}
	ar, _ := a.AsNumber()
	br, _ := b.AsNumber()
	return replace(s, 2, Real(fr(ar, br)))
}

func bAdd(s *OperandStack, _ *DictionaryStack) error {
	return arith(s, "add",
		func(a, b int64) (int64, bool) {
			c := a + b
			// check for integer overflow
			ok := !(a < 0 && b < 0 && c >= 0) && !(a > 0 && b > 0 && c <= 0)
			return c, ok
		},
		func(a, b float64) float64 { return a + b })
}

func bSub(s *OperandStack, _ *DictionaryStack) error {
	return arith(s, "sub",
		func(a, b int64) (int64, bool) {
			c := a - b
			// check for integer overflow
			ok := !(a < 0 && b > 0 && c >= 0) && !(a >= 0 && b < 0 && c < 0)
			return c, ok
		},
		func(a, b float64) float64 { return a - b })
}

func bMul(s *OperandStack, _ *DictionaryStack) error {
	return arith(s, "mul",
		func(a, b int64) (int64, bool) {
			if a == 0 || b == 0 {
				return 0, true
			}
			c := a * b
			// check for integer overflow
			if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
				return 0, false
			}
			return c, true
		},
		func(a, b float64) float64 { return a * b })
}

// bDiv divides two numbers.  Two integers divide with truncation towards
// zero; the result is a real if either operand is real.
func bDiv(s *OperandStack, _ *DictionaryStack) error {
	a, b, err := numArgs(s, "div")
	if err != nil {
		return err
	}
	if a.Kind() == IntegerKind && b.Kind() == IntegerKind {
		ai, _ := a.AsInteger()
		bi, _ := b.AsInteger()
		if bi == 0 {
			return e(UndefinedResult, "div: division by zero")
		}
		if ai == math.MinInt64 && bi == -1 {
			return replace(s, 2, Real(-float64(ai)))
		}
		return replace(s, 2, Integer(ai/bi))
	}
	ar, _ := a.AsNumber()
	br, _ := b.AsNumber()
	if br == 0 {
		return e(UndefinedResult, "div: division by zero")
	}
	return replace(s, 2, Real(ar/br))
}

func bIdiv(s *OperandStack, _ *DictionaryStack) error {
	a, b, err := intArgs(s, "idiv")
	if err != nil {
		return err
	}
	if b == 0 {
		return e(UndefinedResult, "idiv: division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return replace(s, 2, Real(-float64(a)))
	}
	return replace(s, 2, Integer(a/b))
}

func bMod(s *OperandStack, _ *DictionaryStack) error {
	a, b, err := intArgs(s, "mod")
	if err != nil {
		return err
	}
	if b == 0 {
		return e(UndefinedResult, "mod: division by zero")
	}
	return replace(s, 2, Integer(a%b))
}

func bNeg(s *OperandStack, _ *DictionaryStack) error {
	x, err := s.Peek()
	if err != nil {
		return e(StackUnderflow, "neg: not enough arguments")
	}
	switch x.Kind() {
	case IntegerKind:
		xi, _ := x.AsInteger()
		if xi == math.MinInt64 {
			return replace(s, 1, Real(-float64(xi)))
		}
		return replace(s, 1, Integer(-xi))
	case RealKind:
		xr, _ := x.AsReal()
		return replace(s, 1, Real(-xr))
	default:
		return e(TypeCheck, "neg: needs a number, got %s", x.Kind())
	}
}

func bAbs(s *OperandStack, _ *DictionaryStack) error {
	x, err := s.Peek()
	if err != nil {
		return e(StackUnderflow, "abs: not enough arguments")
	}
	switch x.Kind() {
	case IntegerKind:
		xi, _ := x.AsInteger()
		if xi == math.MinInt64 {
			return replace(s, 1, Real(-float64(xi)))
		} else if xi < 0 {
			return replace(s, 1, Integer(-xi))
		}
		return nil
	case RealKind:
		xr, _ := x.AsReal()
		return replace(s, 1, Real(math.Abs(xr)))
	default:
		return e(TypeCheck, "abs: needs a number, got %s", x.Kind())
	}
}

func bPop(s *OperandStack, _ *DictionaryStack) error {
	if _, err := s.Pop(); err != nil {
		return e(StackUnderflow, "pop: not enough arguments")
	}
	return nil
}

func bExch(s *OperandStack, _ *DictionaryStack) error {
	if s.Depth() < 2 {
		return e(StackUnderflow, "exch: not enough arguments")
	}
	return s.Roll(2, 1)
}

func bDup(s *OperandStack, _ *DictionaryStack) error {
	if s.Depth() < 1 {
		return e(StackUnderflow, "dup: not enough arguments")
	}
	return s.Index(0)
}

// countArg checks that the top of the stack is an integer and returns it
// without popping.
func countArg(s *OperandStack, op string) (int64, error) {
	o, err := s.Peek()
	if err != nil {
		return 0, e(StackUnderflow, "%s: not enough arguments", op)
	}
	n, err := o.AsInteger()
	if err != nil {
		return 0, e(TypeCheck, "%s: needs an integer, got %s", op, o.Kind())
	}
	return n, nil
}

func bCopy(s *OperandStack, _ *DictionaryStack) error {
	n, err := countArg(s, "copy")
	if err != nil {
		return err
	}
	if n < 0 || n > int64(s.Depth()-1) {
		return e(RangeCheck, "copy: count %d out of range 0..%d", n, s.Depth()-1)
	}
	// the count is replaced by its first copy
	if err := s.checkRoom(int(n) - 1); err != nil {
		return err
	}
	s.Pop()
	return s.Copy(int(n))
}

func bIndex(s *OperandStack, _ *DictionaryStack) error {
	n, err := countArg(s, "index")
	if err != nil {
		return err
	}
	if n < 0 || n >= int64(s.Depth()-1) {
		return e(RangeCheck, "index: %d out of range 0..%d", n, s.Depth()-2)
	}
	s.Pop()
	return s.Index(int(n))
}

func bRoll(s *OperandStack, _ *DictionaryStack) error {
	if s.Depth() < 2 {
		return e(StackUnderflow, "roll: not enough arguments")
	}
	no, _ := s.PeekAt(1)
	jo, _ := s.PeekAt(0)
	n, err := no.AsInteger()
	if err != nil {
		return e(TypeCheck, "roll: count must be an integer, got %s", no.Kind())
	}
	j, err := jo.AsInteger()
	if err != nil {
		return e(TypeCheck, "roll: shift must be an integer, got %s", jo.Kind())
	}
	if n < 0 || n > int64(s.Depth()-2) {
		return e(RangeCheck, "roll: count %d out of range 0..%d", n, s.Depth()-2)
	}
	s.Pop()
	s.Pop()
	return s.Roll(int(n), j)
}

func bClear(s *OperandStack, _ *DictionaryStack) error {
	s.Clear()
	return nil
}

func bCount(s *OperandStack, _ *DictionaryStack) error {
	return s.Push(Integer(int64(s.Depth())))
}

func bDef(s *OperandStack, ds *DictionaryStack) error {
	if s.Depth() < 2 {
		return e(StackUnderflow, "def: not enough arguments")
	}
	key, _ := s.PeekAt(1)
	name, err := key.AsName()
	if err != nil {
		return e(TypeCheck, "def: needs a name, got %s", key.Kind())
	}
	val, _ := s.PeekAt(0)
	if err := ds.Define(name, val); err != nil {
		return err
	}
	s.Pop()
	s.Pop()
	return nil
}

func bLoad(s *OperandStack, ds *DictionaryStack) error {
	key, err := s.Peek()
	if err != nil {
		return e(StackUnderflow, "load: not enough arguments")
	}
	name, err := key.AsName()
	if err != nil {
		return e(TypeCheck, "load: needs a name, got %s", key.Kind())
	}
	val, err := ds.Resolve(name)
	if err != nil {
		return err
	}
	return replace(s, 1, val)
}

// setAccess replaces the top of the stack by a copy with access mode a.
// Access can only be reduced, never increased.
func setAccess(s *OperandStack, op string, a Access) error {
	o, err := s.Peek()
	if err != nil {
		return e(StackUnderflow, "%s: not enough arguments", op)
	}
	if o.Access() > a {
		return e(InvalidAccess, "%s: object is already %s", op, o.Access())
	}
	return replace(s, 1, o.WithAccess(a))
}

func bReadonly(s *OperandStack, _ *DictionaryStack) error {
	return setAccess(s, "readonly", ReadOnly)
}

func bExecuteonly(s *OperandStack, _ *DictionaryStack) error {
	return setAccess(s, "executeonly", ExecuteOnly)
}

func bNoaccess(s *OperandStack, _ *DictionaryStack) error {
	return setAccess(s, "noaccess", NoAccess)
}
