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

// Package graphics defines the drawing interface used by the graphics
// operators of the interpreter, together with a Recorder which collects the
// painted paths instead of rendering them.
package graphics

import (
	"errors"
)

// Device receives the path construction and painting calls of a program.
// Coordinates are given in user space.
type Device interface {
	// NewPath discards the current path.
	NewPath()

	// MoveTo starts a new sub-path at (x, y).
	MoveTo(x, y float64)

	// LineTo appends a straight line to the current sub-path.
	// If there is no current point, ErrNoCurrentPoint is returned.
	LineTo(x, y float64) error

	// ClosePath closes the current sub-path.
	ClosePath()

	// SetGray sets the current color to a shade of gray.
	SetGray(g float64)

	// SetRGBColor sets the current color.
	SetRGBColor(r, g, b float64)

	// SetLineWidth sets the line width used by Stroke.
	SetLineWidth(w float64)

	// Translate moves the origin of user space to (tx, ty).
	Translate(tx, ty float64)

	// Scale scales user space by (sx, sy).
	Scale(sx, sy float64)

	// Stroke paints a line along the current path and then clears the path.
	Stroke() error

	// Fill paints the area enclosed by the current path and then clears
	// the path.
	Fill() error

	// ShowPage finishes the current page.
	ShowPage() error
}

// ErrNoCurrentPoint is returned by path operations which need a current
// point when the current path is empty.
var ErrNoCurrentPoint = errors.New("no current point")
