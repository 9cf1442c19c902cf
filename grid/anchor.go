package grid

import "github.com/bodgit/colorgrid/dictionary"

// DefaultAnchorSize is the side of a corner anchor block.
const DefaultAnchorSize = 3

// Layout describes which cells of a grid are reserved for anchors. The
// top-left, top-right and bottom-left corners always hold an AnchorSize
// block; a bottom-right block of side BottomRight is added when BottomRight
// is non-zero.
type Layout struct {
	AnchorSize  int
	BottomRight int
}

// DefaultLayout returns the three anchor layout.
func DefaultLayout() Layout {
	return Layout{AnchorSize: DefaultAnchorSize}
}

type block struct {
	row, col, side int
}

func (l Layout) blocks(size int) []block {
	a := l.AnchorSize
	b := []block{
		{0, 0, a},
		{0, size - a, a},
		{size - a, 0, a},
	}
	if br := l.BottomRight; br > 0 {
		b = append(b, block{size - br, size - br, br})
	}
	return b
}

// Fits reports whether the anchors fit in a grid of the given size without
// overlapping.
func (l Layout) Fits(size int) bool {
	a, br := l.AnchorSize, l.BottomRight
	return a > 0 && br >= 0 && 2*a <= size && a+br <= size
}

// IsReserved reports whether the cell belongs to an anchor. It agrees
// exactly with the cells painted by Stamp.
func (l Layout) IsReserved(row, col, size int) bool {
	a := l.AnchorSize
	top, left := row < a, col < a
	bottom, right := row >= size-a, col >= size-a

	switch {
	case top && left, top && right, bottom && left:
		return true
	case l.BottomRight > 0:
		return row >= size-l.BottomRight && col >= size-l.BottomRight
	}
	return false
}

// Reserved returns the number of anchor cells in a grid of the given size.
// The result is only meaningful when the layout fits.
func (l Layout) Reserved(size int) int {
	return 3*l.AnchorSize*l.AnchorSize + l.BottomRight*l.BottomRight
}

// Capacity returns the number of data cells in a grid of the given size, or
// zero if the anchors do not fit.
func (l Layout) Capacity(size int) int {
	if !l.Fits(size) {
		return 0
	}
	return size*size - l.Reserved(size)
}

// Stamp paints every anchor block onto g. Cell (i, j) of a block, counted
// from the block's own top-left corner, is painted with
// dictionary.Palette[(i+j)%3].
func (l Layout) Stamp(g *Grid) {
	for _, b := range l.blocks(g.Size()) {
		for i := 0; i < b.side; i++ {
			for j := 0; j < b.side; j++ {
				g.Set(b.row+i, b.col+j, dictionary.Palette[(i+j)%len(dictionary.Palette)])
			}
		}
	}
}
