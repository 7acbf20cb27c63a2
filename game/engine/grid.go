package engine

import "math"

// Grid is the bounded discrete playing field. Cells are valid when
// 0 <= X < Width and 0 <= Y < Height.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether a cell is inside the grid bounds
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Adjacent returns the neighboring cell in the given direction. The second
// return value is false when the step would leave the grid; callers treat
// that outcome as a boundary collision, never as an error.
func (g Grid) Adjacent(c Cell, d Direction) (Cell, bool) {
	dx, dy := d.Delta()
	next := Cell{X: c.X + dx, Y: c.Y + dy}
	return next, g.Contains(next)
}

// Center returns the cell closest to the middle of the grid
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2, Y: g.Height / 2}
}

// CellCount returns the total number of cells on the grid
func (g Grid) CellCount() int {
	return g.Width * g.Height
}

// Rescale maps a cell from an old grid onto this grid, scaling each axis
// proportionally, rounding to the nearest cell and clamping into bounds.
func (g Grid) Rescale(c Cell, from Grid) Cell {
	scaled := Cell{
		X: rescaleCoord(c.X, from.Width, g.Width),
		Y: rescaleCoord(c.Y, from.Height, g.Height),
	}
	return g.Clamp(scaled)
}

// Clamp forces a cell into grid bounds
func (g Grid) Clamp(c Cell) Cell {
	if c.X < 0 {
		c.X = 0
	}
	if c.X >= g.Width {
		c.X = g.Width - 1
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y >= g.Height {
		c.Y = g.Height - 1
	}
	return c
}

func rescaleCoord(v, from, to int) int {
	if from <= 0 {
		return 0
	}
	return int(math.Round(float64(v) * float64(to) / float64(from)))
}
