/*
Package grid implements the square grid of colored cells that carries an
encoded message.

Calibration anchors occupy fixed blocks in the corners of the grid. Every
other cell is a data cell and is visited, exactly once, by a Walker in the
order chosen for the grid. The grid itself holds no length or index
information so the writer and reader of a grid must walk it with the same
Layout and Order.
*/
package grid

import "github.com/bodgit/colorgrid/dictionary"

// Position is a cell coordinate.
type Position struct {
	Row, Col int
}

// Grid is an N by N array of colors stored row by row.
type Grid struct {
	size  int
	cells []dictionary.Color
}

// New returns a grid of the given size with every cell set to the
// background color.
func New(size int) *Grid {
	if size < 0 {
		size = 0
	}
	g := &Grid{
		size:  size,
		cells: make([]dictionary.Color, size*size),
	}
	for i := range g.cells {
		g.cells[i] = dictionary.Background
	}
	return g
}

// Size returns the length of a side.
func (g *Grid) Size() int {
	return g.size
}

// In reports whether the cell lies within the grid.
func (g *Grid) In(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// At returns the color of a cell. Cells outside the grid are background.
func (g *Grid) At(row, col int) dictionary.Color {
	if !g.In(row, col) {
		return dictionary.Background
	}
	return g.cells[row*g.size+col]
}

// Set changes the color of a cell. Cells outside the grid are ignored.
func (g *Grid) Set(row, col int, c dictionary.Color) {
	if g.In(row, col) {
		g.cells[row*g.size+col] = c
	}
}

// Equal reports whether both grids have the same size and cells. A nil grid
// is never equal.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil || g.size != o.size {
		return false
	}
	for i, c := range g.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}
