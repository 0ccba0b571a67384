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

	"seehuhn.de/go/pslite/graphics"
)

// graphicsOps translates operand stack arguments into calls to a
// graphics device.
type graphicsOps struct {
	dev graphics.Device
}

// makeGraphicsDict returns a dictionary with the path construction and
// painting operators, drawing on dev.
func makeGraphicsDict(dev graphics.Device) Dictionary {
	g := &graphicsOps{dev: dev}
	ops := map[string]Operator{
		"closepath":    g.closepath,
		"fill":         g.fill,
		"lineto":       g.lineto,
		"moveto":       g.moveto,
		"newpath":      g.newpath,
		"scale":        g.scale,
		"setgray":      g.setgray,
		"setlinewidth": g.setlinewidth,
		"setrgbcolor":  g.setrgbcolor,
		"showpage":     g.showpage,
		"stroke":       g.stroke,
		"translate":    g.translate,
	}
	d := make(Dictionary, len(ops))
	for name, fn := range ops {
		d[name] = NewOperator(name, fn)
	}
	return d
}

// withNumbers calls fn with the top n numbers on the stack, in the order
// they were pushed.  The numbers are popped only if fn succeeds.
func withNumbers(s *OperandStack, op string, n int, fn func(x []float64) error) error {
	if s.Depth() < n {
		return e(StackUnderflow, "%s: not enough arguments", op)
	}
	x := make([]float64, n)
	for i := range n {
		o, _ := s.PeekAt(n - 1 - i)
		xi, err := o.AsNumber()
		if err != nil {
			return e(TypeCheck, "%s: needs numbers, got %s", op, o.Kind())
		}
		x[i] = xi
	}
	if err := fn(x); err != nil {
		return err
	}
	for range n {
		s.Pop()
	}
	return nil
}

func deviceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, graphics.ErrNoCurrentPoint) {
		return wrap(NoCurrentPoint, err, "%s", op)
	}
	return wrap(IOError, err, "%s", op)
}

func (g *graphicsOps) newpath(_ *OperandStack, _ *DictionaryStack) error {
	g.dev.NewPath()
	return nil
}

func (g *graphicsOps) moveto(s *OperandStack, _ *DictionaryStack) error {
	return withNumbers(s, "moveto", 2, func(x []float64) error {
		g.dev.MoveTo(x[0], x[1])
		return nil
	})
}

func (g *graphicsOps) lineto(s *OperandStack, _ *DictionaryStack) error {
	return withNumbers(s, "lineto", 2, func(x []float64) error {
		return deviceError("lineto", g.dev.LineTo(x[0], x[1]))
	})
}

func (g *graphicsOps) closepath(_ *OperandStack, _ *DictionaryStack) error {
	g.dev.ClosePath()
	return nil
}

func (g *graphicsOps) setgray(s *OperandStack, _ *DictionaryStack) error {
	return withNumbers(s, "setgray", 1, func(x []float64) error {
		g.dev.SetGray(x[0])
		return nil
	})
}

func (g *graphicsOps) setrgbcolor(s *OperandStack, _ *DictionaryStack) error {
	return withNumbers(s, "setrgbcolor", 3, func(x []float64) error {
		g.dev.SetRGBColor(x[0], x[1], x[2])
		return nil
	})
}

func (g *graphicsOps) setlinewidth(s *OperandStack, _ *DictionaryStack) error {
	return withNumbers(s, "setlinewidth", 1, func(x []float64) error {
		g.dev.SetLineWidth(x[0])
		return nil
	})
}

func (g *graphicsOps) translate(s *OperandStack, _ *DictionaryStack) error {
	return withNumbers(s, "translate", 2, func(x []float64) error {
		g.dev.Translate(x[0], x[1])
		return nil
	})
}

func (g *graphicsOps) scale(s *OperandStack, _ *DictionaryStack) error {
	return withNumbers(s, "scale", 2, func(x []float64) error {
		g.dev.Scale(x[0], x[1])
		return nil
	})
}

func (g *graphicsOps) stroke(_ *OperandStack, _ *DictionaryStack) error {
	return deviceError("stroke", g.dev.Stroke())
}

func (g *graphicsOps) fill(_ *OperandStack, _ *DictionaryStack) error {
	return deviceError("fill", g.dev.Fill())
}

func (g *graphicsOps) showpage(_ *OperandStack, _ *DictionaryStack) error {
	return deviceError("showpage", g.dev.ShowPage())
}
