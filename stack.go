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
	"strings"
)

// OperandStack is the LIFO stack of values operators work on.
//
// Pushing an object which is already on the stack, as dup, copy and index
// do, adds another reference to the same value.
type OperandStack struct {
	data []Object
	max  int
}

// NewOperandStack returns an empty stack which holds at most max objects.
// If max is zero or negative, the depth is not limited.
func NewOperandStack(max int) *OperandStack {
	return &OperandStack{max: max}
}

// Depth returns the number of objects on the stack.
func (s *OperandStack) Depth() int {
	return len(s.data)
}

// Push adds o to the top of the stack.
func (s *OperandStack) Push(o Object) error {
	if err := s.checkRoom(1); err != nil {
		return err
	}
	s.data = append(s.data, o)
	return nil
}

// Pop removes and returns the top of the stack.
func (s *OperandStack) Pop() (Object, error) {
	n := len(s.data)
	if n == 0 {
		return Object{}, e(StackUnderflow, "pop: stack is empty")
	}
	o := s.data[n-1]
	s.data[n-1] = Object{}
	s.data = s.data[:n-1]
	return o, nil
}

// Peek returns the top of the stack without removing it.
func (s *OperandStack) Peek() (Object, error) {
	return s.PeekAt(0)
}

// PeekAt returns the object i positions below the top of the stack,
// without removing anything.  PeekAt(0) is the top of the stack.
func (s *OperandStack) PeekAt(i int) (Object, error) {
	if i < 0 || i >= len(s.data) {
		return Object{}, e(StackUnderflow, "peek: depth %d, need %d", len(s.data), i+1)
	}
	return s.data[len(s.data)-1-i], nil
}

// Clear removes all objects from the stack.
func (s *OperandStack) Clear() {
	clear(s.data)
	s.data = s.data[:0]
}

// Copy duplicates the top n objects, keeping their order.
func (s *OperandStack) Copy(n int) error {
	if n < 0 || n > len(s.data) {
		return e(RangeCheck, "copy: count %d out of range 0..%d", n, len(s.data))
	}
	if err := s.checkRoom(n); err != nil {
		return err
	}
	s.data = append(s.data, s.data[len(s.data)-n:]...)
	return nil
}

// Index pushes the object n positions below the top of the stack.
// Index(0) duplicates the top of the stack.
func (s *OperandStack) Index(n int) error {
	if n < 0 || n >= len(s.data) {
		return e(RangeCheck, "index: %d out of range 0..%d", n, len(s.data)-1)
	}
	if err := s.checkRoom(1); err != nil {
		return err
	}
	s.data = append(s.data, s.data[len(s.data)-1-n])
	return nil
}

// Roll rotates the top n objects by j positions.  For positive j, objects
// move towards the top of the stack: the object j positions below the top
// becomes the new top.  Negative j rotates the other way.
func (s *OperandStack) Roll(n int, j int64) error {
	if n < 0 || n > len(s.data) {
		return e(RangeCheck, "roll: count %d out of range 0..%d", n, len(s.data))
	}
	if n <= 1 {
		return nil
	}
	j %= int64(n)
	if j < 0 {
		j += int64(n)
	}
	if j == 0 {
		return nil
	}

	// Move the top j elements below the remaining n-j elements.
	ji := int(j)
	data := s.data[len(s.data)-n:]
	tmp := make([]Object, ji)
	copy(tmp, data[n-ji:])
	copy(data[ji:], data[:n-ji])
	copy(data, tmp)
	return nil
}

// Items returns a copy of the stack contents, bottom first.
func (s *OperandStack) Items() []Object {
	res := make([]Object, len(s.data))
	copy(res, s.data)
	return res
}

func (s *OperandStack) String() string {
	var ss []string
	for _, o := range s.data {
		ss = append(ss, o.String())
	}
	return strings.Join(ss, " ")
}

func (s *OperandStack) checkRoom(n int) error {
	if s.max > 0 && len(s.data)+n > s.max {
		return e(StackOverflow, "operand stack limit %d exceeded", s.max)
	}
	return nil
}
