// Package core provides terminal-independent rendering primitives for the
// cookedbird front ends: a cell buffer, cell rectangles and the viewport that
// maps the fixed logical world onto a grid of any size.
// It has no external dependencies so it can be tested without a terminal.
package core

import "math"

// Rect is a rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and other, or an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1, y1 := min(r.Right(), other.Right()), min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Viewport maps world pixels (origin bottom-left, y up) onto a grid of
// Cols x Rows cells (origin top-left, y down). The world is stretched to
// fill the grid on both axes.
type Viewport struct {
	WorldW, WorldH float64
	Cols, Rows     int
}

// NewViewport creates a viewport. Non-positive sizes are raised to 1.
func NewViewport(worldW, worldH float64, cols, rows int) Viewport {
	return Viewport{
		WorldW: math.Max(worldW, 1),
		WorldH: math.Max(worldH, 1),
		Cols:   max(cols, 1),
		Rows:   max(rows, 1),
	}
}

// CellWidth returns the world width of one column.
func (v Viewport) CellWidth() float64 {
	return v.WorldW / float64(v.Cols)
}

// CellHeight returns the world height of one row.
func (v Viewport) CellHeight() float64 {
	return v.WorldH / float64(v.Rows)
}

// ToCell returns the cell containing the world point (x, y).
// Points outside the world map to cells outside the grid.
func (v Viewport) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x / v.CellWidth()))
	row = int(math.Floor((v.WorldH - y) / v.CellHeight()))
	return col, row
}

// ToWorld returns the world point at the center of a cell.
func (v Viewport) ToWorld(col, row int) (x, y float64) {
	x = (float64(col) + 0.5) * v.CellWidth()
	y = v.WorldH - (float64(row)+0.5)*v.CellHeight()
	return x, y
}

// RectToCells converts a world rectangle given by its bottom-left corner into
// the cells whose centers it covers. Rectangles thinner than a cell still get
// at least one cell if they overlap the grid.
func (v Viewport) RectToCells(x, y, w, h float64) Rect {
	if w <= 0 || h <= 0 {
		return Rect{}
	}
	cw, ch := v.CellWidth(), v.CellHeight()
	c0 := int(math.Round(x / cw))
	c1 := int(math.Round((x + w) / cw))
	r0 := int(math.Round((v.WorldH - y - h) / ch))
	r1 := int(math.Round((v.WorldH - y) / ch))
	if c1 == c0 {
		c1 = c0 + 1
	}
	if r1 == r0 {
		r1 = r0 + 1
	}
	grid := Rect{W: v.Cols, H: v.Rows}
	return grid.Intersect(Rect{X: c0, Y: r0, W: c1 - c0, H: r1 - r0})
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
