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
	"io"
	"strings"

	"seehuhn.de/go/pslite/graphics"
)

const (
	defaultMaxOperandStack = 500
	defaultMaxDictStack    = 20
	maxExecDepth           = 250
)

// State describes what the interpreter is currently doing.
type State uint8

// These are the interpreter states.
const (
	Idle State = iota
	Scanning
	Dispatching
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Dispatching:
		return "dispatching"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Interpreter executes programs.  An interpreter must only be used by one
// goroutine at a time.
type Interpreter struct {
	operands *OperandStack
	dicts    *DictionaryStack

	systemDict Dictionary
	userDict   Dictionary

	// scanner is only set while Load is running.
	scanner *Scanner

	logf      func(format string, args ...any)
	device    graphics.Device
	maxStack  int
	execDepth int

	state State
	err   error
}

// Option configures an Interpreter.
type Option func(intp *Interpreter)

// WithLogf sets a function which is used to trace execution and to report
// failures.  log.Printf is a suitable value.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(intp *Interpreter) {
		intp.logf = logf
	}
}

// WithDevice installs the graphics operators.  The operators draw on dev.
func WithDevice(dev graphics.Device) Option {
	return func(intp *Interpreter) {
		intp.device = dev
	}
}

// WithMaxOperandStack limits the depth of the operand stack.
// Zero or a negative value remove the limit.
func WithMaxOperandStack(n int) Option {
	return func(intp *Interpreter) {
		intp.maxStack = n
	}
}

// NewInterpreter returns a new interpreter with an empty operand stack.
// The dictionary stack holds the builtin operators, the graphics operators
// if a device was given, and an initially empty user dictionary.
func NewInterpreter(opts ...Option) *Interpreter {
	intp := &Interpreter{
		maxStack: defaultMaxOperandStack,
	}
	for _, opt := range opts {
		opt(intp)
	}
	intp.systemDict = makeSystemDict()
	intp.reset()
	return intp
}

func (intp *Interpreter) reset() {
	frames := []Dictionary{intp.systemDict}
	if intp.device != nil {
		frames = append(frames, makeGraphicsDict(intp.device))
	}
	intp.userDict = Dictionary{}
	frames = append(frames, intp.userDict)

	intp.operands = NewOperandStack(intp.maxStack)
	intp.dicts = NewDictionaryStack(defaultMaxDictStack, frames...)
	intp.state = Idle
	intp.err = nil
}

// Reset clears the operand stack and all user definitions.
func (intp *Interpreter) Reset() {
	intp.reset()
}

// LoadString executes the program given as a string.
func (intp *Interpreter) LoadString(code string) bool {
	return intp.Load(strings.NewReader(code))
}

// Load reads a program from r and executes it.  The return value indicates
// whether the program ran to completion.  If execution fails, the stacks are
// left in the state they had just before the failing step, and Err
// returns the reason for the failure.
func (intp *Interpreter) Load(r io.Reader) bool {
	intp.scanner = NewScanner(r)
	defer func() {
		intp.scanner = nil
	}()
	intp.err = nil

	for {
		intp.state = Scanning
		tok, err := intp.scanner.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return intp.fail(err)
		}
		if tok.Kind == CommentToken {
			continue
		}
		o, err := tok.Object()
		if err != nil {
			return intp.fail(err)
		}

		intp.state = Dispatching
		err = intp.execute(o)
		if err != nil {
			return intp.fail(err)
		}
	}

	intp.state = Idle
	return true
}

func (intp *Interpreter) fail(err error) bool {
	intp.state = Failed
	intp.err = err
	if intp.logf != nil && intp.scanner != nil {
		intp.logf("%d:%d: %v", intp.scanner.Line+1, intp.scanner.Col+1, err)
	}
	return false
}

// execute applies the dispatch rule to a single object: executable names
// are resolved and invoked, everything else is pushed.
func (intp *Interpreter) execute(o Object) error {
	if intp.logf != nil {
		intp.logf("|- %s | %s", intp.operands, o)
	}

	if o.Kind() != NameKind || !o.IsExecutable() {
		return intp.operands.Push(o)
	}

	name, _ := o.AsName()
	val, err := intp.dicts.Resolve(name)
	if err != nil {
		return err
	}
	return intp.invoke(val)
}

// invoke runs a value found on the dictionary stack.
func (intp *Interpreter) invoke(val Object) error {
	switch val.Kind() {
	case OperatorKind:
		op, _ := val.AsOperator()
		return op(intp.operands, intp.dicts)

	case ProcedureKind:
		if intp.execDepth >= maxExecDepth {
			return e(ExecStackOverflow, "procedure nesting exceeds %d", maxExecDepth)
		}
		intp.execDepth++
		defer func() {
			intp.execDepth--
		}()

		body, _ := val.AsProcedure()
		for _, o := range body {
			var err error
			if o.Kind() == OperatorKind {
				err = intp.invoke(o)
			} else {
				err = intp.execute(o)
			}
			if err != nil {
				return err
			}
		}
		return nil

	case NameKind:
		if val.IsExecutable() {
			if intp.execDepth >= maxExecDepth {
				return e(ExecStackOverflow, "name indirection exceeds %d", maxExecDepth)
			}
			intp.execDepth++
			defer func() {
				intp.execDepth--
			}()
			return intp.execute(val)
		}
		return intp.operands.Push(val)

	default:
		return intp.operands.Push(val)
	}
}

// Err returns the error which caused the most recent call to Load to fail.
// After a successful Load, Err returns nil.
func (intp *Interpreter) Err() error {
	return intp.err
}

// State returns the state of the interpreter.
func (intp *Interpreter) State() State {
	return intp.state
}

// Stack returns a copy of the operand stack, bottom first.
func (intp *Interpreter) Stack() []Object {
	return intp.operands.Items()
}

// StackString returns the operand stack in a human-readable form.
func (intp *Interpreter) StackString() string {
	return intp.operands.String()
}

// Push places objects on the operand stack, in order.
// This can be used to supply arguments to a program.
func (intp *Interpreter) Push(objs ...Object) error {
	for _, o := range objs {
		if err := intp.operands.Push(o); err != nil {
			return err
		}
	}
	return nil
}

// Define binds name to val in the user dictionary.
func (intp *Interpreter) Define(name string, val Object) {
	intp.userDict[name] = val
}

// DefineProcedure binds name to a procedure with the given body in the
// user dictionary.
func (intp *Interpreter) DefineProcedure(name string, body ...Object) {
	intp.Define(name, Procedure(body...))
}

// Lookup resolves name on the dictionary stack.
func (intp *Interpreter) Lookup(name string) (Object, bool) {
	val, err := intp.dicts.Resolve(name)
	if errors.Is(err, ErrUndefinedName) {
		return Object{}, false
	}
	return val, err == nil
}

// Dictionaries returns copies of the frames on the dictionary stack,
// outermost first.
func (intp *Interpreter) Dictionaries() []Dictionary {
	return intp.dicts.Frames()
}
