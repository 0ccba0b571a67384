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
	"golang.org/x/exp/maps"
)

// Dictionary maps names to values.
type Dictionary map[string]Object

// DictionaryStack is the stack of dictionaries used to look up executable
// names.  The innermost (most recently pushed) dictionary is searched first.
//
// The dictionaries given to NewDictionaryStack are permanent: they can never
// be popped from the stack.
type DictionaryStack struct {
	frames    []Dictionary
	permanent int
	max       int
}

// NewDictionaryStack returns a dictionary stack with the given permanent
// frames, outermost first.  At most max frames can be on the stack; if max is
// zero or negative, the depth is not limited.
func NewDictionaryStack(max int, permanent ...Dictionary) *DictionaryStack {
	frames := make([]Dictionary, len(permanent))
	copy(frames, permanent)
	return &DictionaryStack{
		frames:    frames,
		permanent: len(permanent),
		max:       max,
	}
}

// Depth returns the number of frames on the stack.
func (ds *DictionaryStack) Depth() int {
	return len(ds.frames)
}

// Begin pushes a new frame.
func (ds *DictionaryStack) Begin(d Dictionary) error {
	if ds.max > 0 && len(ds.frames) >= ds.max {
		return e(DictStackOverflow, "begin: dictionary stack limit %d exceeded", ds.max)
	}
	ds.frames = append(ds.frames, d)
	return nil
}

// End pops the innermost frame.
func (ds *DictionaryStack) End() error {
	if len(ds.frames) <= ds.permanent {
		return e(DictStackUnderflow, "end: no dictionary to pop")
	}
	ds.frames[len(ds.frames)-1] = nil
	ds.frames = ds.frames[:len(ds.frames)-1]
	return nil
}

// Current returns the innermost frame.
func (ds *DictionaryStack) Current() Dictionary {
	if len(ds.frames) == 0 {
		return nil
	}
	return ds.frames[len(ds.frames)-1]
}

// Define stores val under name in the innermost frame.
func (ds *DictionaryStack) Define(name string, val Object) error {
	d := ds.Current()
	if d == nil {
		return e(DictStackUnderflow, "def: dictionary stack is empty")
	}
	d[name] = val
	return nil
}

// Resolve looks up name, starting from the innermost frame.
func (ds *DictionaryStack) Resolve(name string) (Object, error) {
	for j := len(ds.frames) - 1; j >= 0; j-- {
		if val, ok := ds.frames[j][name]; ok {
			return val, nil
		}
	}
	return Object{}, e(UndefinedName, "%s", name)
}

// Frames returns copies of all frames, outermost first.
func (ds *DictionaryStack) Frames() []Dictionary {
	res := make([]Dictionary, len(ds.frames))
	for i, d := range ds.frames {
		res[i] = maps.Clone(d)
	}
	return res
}
