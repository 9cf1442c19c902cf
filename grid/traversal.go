package grid

import "fmt"

// Order selects the path a Walker takes through the data cells.
type Order int

const (
	// Snake starts at the bottom of the rightmost column and sweeps each
	// column up and down in turn, moving left one column at every turn.
	Snake Order = iota

	// RowMajor reads each row left to right, starting with the first
	// cell after the top-left anchor.
	RowMajor
)

func (o Order) String() string {
	switch o {
	case Snake:
		return "snake"
	case RowMajor:
		return "row-major"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder returns the Order with the given name.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "snake", "":
		return Snake, nil
	case "row-major", "rows":
		return RowMajor, nil
	}
	return 0, fmt.Errorf("grid: unknown order %q", s)
}

const (
	up   = -1
	down = 1
)

// cursor is the complete traversal state.
type cursor struct {
	row, col, dir int
}

// Walker yields the data cells of a grid one at a time. A Walker is not safe
// for concurrent use but any number of walkers may cover the same grid.
type Walker struct {
	layout Layout
	order  Order
	size   int

	cur     cursor
	started bool
	done    bool
}

// Walk returns a Walker over the data cells of a grid of the given size.
func (l Layout) Walk(o Order, size int) *Walker {
	return &Walker{
		layout: l,
		order:  o,
		size:   size,
	}
}

// Reset rewinds the walker to the first cell.
func (w *Walker) Reset() {
	w.cur = cursor{}
	w.started = false
	w.done = false
}

// Next returns the next data cell. ok is false once every data cell has been
// returned.
func (w *Walker) Next() (p Position, ok bool) {
	if w.done {
		return Position{}, false
	}

	var c cursor
	if !w.started {
		c, ok = first(w.layout, w.order, w.size)
		w.started = true
	} else {
		c, ok = step(w.layout, w.order, w.size, w.cur)
	}
	if !ok {
		w.done = true
		return Position{}, false
	}

	w.cur = c
	return Position{Row: c.row, Col: c.col}, true
}

// All returns every remaining data cell.
func (w *Walker) All() []Position {
	var all []Position
	for p, ok := w.Next(); ok; p, ok = w.Next() {
		all = append(all, p)
	}
	return all
}

func first(l Layout, o Order, size int) (cursor, bool) {
	switch o {
	case RowMajor:
		return rowMajorStep(l, size, cursor{row: 0, col: -1})
	default:
		return snakeEnter(l, size, size-1, up)
	}
}

func step(l Layout, o Order, size int, c cursor) (cursor, bool) {
	switch o {
	case RowMajor:
		return rowMajorStep(l, size, c)
	default:
		return snakeStep(l, size, c)
	}
}

func rowMajorStep(l Layout, size int, c cursor) (cursor, bool) {
	row, col := c.row, c.col+1
	for {
		if col >= size {
			row, col = row+1, 0
		}
		if row >= size {
			return cursor{}, false
		}
		if !l.IsReserved(row, col, size) {
			return cursor{row: row, col: col}, true
		}

		// Jump over the whole anchor; anchors right of the left
		// block always run to the edge
		if col < l.AnchorSize {
			col = l.AnchorSize
		} else {
			col = size
		}
	}
}

// band returns the first and last free row of a column. lo > hi if the
// column is entirely reserved.
func band(l Layout, size, col int) (lo, hi int) {
	lo, hi = 0, size-1
	for lo < size && l.IsReserved(lo, col, size) {
		lo++
	}
	for hi >= lo && l.IsReserved(hi, col, size) {
		hi--
	}
	return lo, hi
}

// snakeEnter positions the cursor at the edge of the first column, from col
// leftwards, that has any free rows. Moving up starts at the bottom of the
// band, moving down at the top.
func snakeEnter(l Layout, size, col, dir int) (cursor, bool) {
	for ; col >= 0; col-- {
		lo, hi := band(l, size, col)
		if lo > hi {
			continue
		}
		row := lo
		if dir == up {
			row = hi
		}
		return cursor{row: row, col: col, dir: dir}, true
	}
	return cursor{}, false
}

func snakeStep(l Layout, size int, c cursor) (cursor, bool) {
	if row := c.row + c.dir; row >= 0 && row < size && !l.IsReserved(row, c.col, size) {
		return cursor{row: row, col: c.col, dir: c.dir}, true
	}
	return snakeEnter(l, size, c.col-1, -c.dir)
}
