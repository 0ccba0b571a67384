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

package graphics

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Color is an RGB color with components in the range [0, 1].
type Color struct {
	R, G, B float64
}

// PaintOp says how a path was painted.
type PaintOp uint8

// These are the painting operations.
const (
	OpStroke PaintOp = iota + 1
	OpFill
)

func (op PaintOp) String() string {
	switch op {
	case OpStroke:
		return "stroke"
	case OpFill:
		return "fill"
	default:
		return "unknown"
	}
}

// Painted is a path which has been stroked or filled.
// Path coordinates are in device space.
type Painted struct {
	Op        PaintOp
	Path      *path.Data
	Color     Color
	LineWidth float64
}

// BBox returns the bounding box of the painted path in device space.
// The line width is not taken into account.
func (p *Painted) BBox() rect.Rect {
	return p.Path.Iter().BBox()
}

// Recorder is a Device which records everything painted on each page.
type Recorder struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	// Pages holds the finished pages.
	Pages [][]*Painted

	items     []*Painted
	color     Color
	lineWidth float64
	path      *path.Data
	hasPoint  bool
	segments  int
}

var _ Device = (*Recorder)(nil)

// NewRecorder returns a Recorder with an identity transformation, black
// color and a line width of 1.
func NewRecorder() *Recorder {
	return &Recorder{
		CTM:       matrix.Identity,
		lineWidth: 1,
	}
}

// NewPath implements the Device interface.
func (r *Recorder) NewPath() {
	r.path = nil
	r.hasPoint = false
	r.segments = 0
}

// MoveTo implements the Device interface.
func (r *Recorder) MoveTo(x, y float64) {
	if r.path == nil {
		r.path = &path.Data{}
	}
	r.path.MoveTo(r.toDevice(x, y))
	r.hasPoint = true
}

// LineTo implements the Device interface.
func (r *Recorder) LineTo(x, y float64) error {
	if !r.hasPoint {
		return ErrNoCurrentPoint
	}
	r.path.LineTo(r.toDevice(x, y))
	r.segments++
	return nil
}

// ClosePath implements the Device interface.
func (r *Recorder) ClosePath() {
	if r.hasPoint {
		r.path.Close()
	}
}

// SetGray implements the Device interface.
func (r *Recorder) SetGray(g float64) {
	g = clamp(g)
	r.color = Color{g, g, g}
}

// SetRGBColor implements the Device interface.
func (r *Recorder) SetRGBColor(red, green, blue float64) {
	r.color = Color{clamp(red), clamp(green), clamp(blue)}
}

// SetLineWidth implements the Device interface.
// Negative widths are treated like their absolute value.
func (r *Recorder) SetLineWidth(w float64) {
	if w < 0 {
		w = -w
	}
	r.lineWidth = w
}

// Translate implements the Device interface.
func (r *Recorder) Translate(tx, ty float64) {
	r.CTM = matrix.Translate(tx, ty).Mul(r.CTM)
}

// Scale implements the Device interface.
func (r *Recorder) Scale(sx, sy float64) {
	r.CTM = matrix.Scale(sx, sy).Mul(r.CTM)
}

// Stroke implements the Device interface.
func (r *Recorder) Stroke() error {
	r.paint(OpStroke)
	return nil
}

// Fill implements the Device interface.
func (r *Recorder) Fill() error {
	r.paint(OpFill)
	return nil
}

// ShowPage implements the Device interface.
func (r *Recorder) ShowPage() error {
	r.Pages = append(r.Pages, r.items)
	r.items = nil
	r.NewPath()
	return nil
}

// Page returns the items painted on the current page so far.
func (r *Recorder) Page() []*Painted {
	return r.items
}

func (r *Recorder) paint(op PaintOp) {
	// paths without any line segments leave no marks
	if r.segments > 0 {
		r.items = append(r.items, &Painted{
			Op:        op,
			Path:      r.path,
			Color:     r.color,
			LineWidth: r.lineWidth,
		})
	}
	r.NewPath()
}

// toDevice maps a point from user space to device space.
func (r *Recorder) toDevice(x, y float64) vec.Vec2 {
	pt := &path.Data{}
	pt.MoveTo(vec.Vec2{X: x, Y: y})
	for _, points := range pt.Iter().Transform(r.CTM) {
		return points[0]
	}
	return vec.Vec2{X: x, Y: y}
}

func clamp(x float64) float64 {
	if x < 0 {
		return 0
	} else if x > 1 {
		return 1
	}
	return x
}
