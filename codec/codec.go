/*
Package codec implements the colorgrid encoder and decoder.

Text is split greedily into the longest tokens known to a dictionary and each
token's color is written to the next data cell of a grid, in the order given
by a grid.Walker. Decoding walks the same cells in the same order and maps
each color back to its token. Nothing in the grid records the message length;
unused cells are left as background and decode to nothing.
*/
package codec

import (
	"errors"
	"fmt"

	"github.com/bodgit/colorgrid/dictionary"
	"github.com/bodgit/colorgrid/grid"
)

// Defaults used by DefaultOptions.
const (
	DefaultMinSize = 6
	DefaultStep    = 1
	DefaultMaxSize = 512
)

var (
	errNoDictionary = errors.New("codec: no dictionary")
	errBadGrid      = errors.New("codec: grid too small for anchors")
)

// Options controls the geometry of encoded grids. The encoder and decoder of
// a grid must use equal Order and Layout values.
type Options struct {
	Order  grid.Order
	Layout grid.Layout

	// MinSize, Step and MaxSize bound the search for the smallest grid.
	MinSize int
	Step    int
	MaxSize int

	// Size forces every grid to one size when non-zero.
	Size int

	// Compact sizes the grid for the number of tokens emitted rather than
	// the worst case of one token per character.
	Compact bool
}

// DefaultOptions returns the snake order, three anchor layout options.
func DefaultOptions() Options {
	return Options{
		Order:   grid.Snake,
		Layout:  grid.DefaultLayout(),
		MinSize: DefaultMinSize,
		Step:    DefaultStep,
		MaxSize: DefaultMaxSize,
	}
}

// Codec encodes and decodes grids with one dictionary. It holds no mutable
// state and is safe for concurrent use.
type Codec struct {
	dict *dictionary.Dictionary
	opts Options
}

// New returns a Codec using d and o.
func New(d *dictionary.Dictionary, o Options) (*Codec, error) {
	if d == nil {
		return nil, errNoDictionary
	}
	if o.Layout.AnchorSize < 1 || o.Layout.BottomRight < 0 {
		return nil, fmt.Errorf("codec: invalid anchor layout %+v", o.Layout)
	}
	if o.Step < 1 {
		o.Step = DefaultStep
	}
	if o.MaxSize < 1 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Size != 0 && !o.Layout.Fits(o.Size) {
		return nil, fmt.Errorf("codec: anchors do not fit a %dx%d grid", o.Size, o.Size)
	}
	return &Codec{
		dict: d,
		opts: o,
	}, nil
}

// Dictionary returns the dictionary used by c.
func (c *Codec) Dictionary() *dictionary.Dictionary {
	return c.dict
}

// Options returns the options used by c.
func (c *Codec) Options() Options {
	return c.opts
}

func (c *Codec) walk(size int) *grid.Walker {
	return c.opts.Layout.Walk(c.opts.Order, size)
}
