package codec

import (
	"fmt"

	"github.com/bodgit/colorgrid/dictionary"
	"github.com/bodgit/colorgrid/grid"
)

// EncodeReport describes an encoded message.
type EncodeReport struct {
	// Characters is the length of the message in symbols.
	Characters int

	// Tokens holds each emitted token in order, with an empty string where
	// a symbol outside the alphabet was replaced by the background.
	Tokens []string

	// Colors holds the color written for each token.
	Colors []dictionary.Color

	// Substituted counts the symbols that could not be mapped.
	Substituted int

	// Size is the side of the grid.
	Size int
}

// Tokenize splits text into the colors that Encode would write, using
// greedy longest match. Symbols with no color become the background.
func (c *Codec) Tokenize(text string) *EncodeReport {
	runes := []rune(text)
	r := &EncodeReport{
		Characters: len(runes),
	}

	for i := 0; i < len(runes); {
		token, color, n, ok := c.dict.Match(runes[i:])
		if !ok {
			token, color, n = "", dictionary.Background, 1
			r.Substituted++
		}
		r.Tokens = append(r.Tokens, token)
		r.Colors = append(r.Colors, color)
		i += n
	}

	return r
}

func (c *Codec) size(r *EncodeReport) (int, error) {
	if c.opts.Size != 0 {
		return c.opts.Size, nil
	}
	required := r.Characters
	if c.opts.Compact {
		required = len(r.Colors)
	}
	return grid.SizeFor(required, c.opts.Layout, c.opts.MinSize, c.opts.Step, c.opts.MaxSize)
}

// Encode writes text into a new grid. An error wrapping grid.ErrCapacity is
// returned if the grid runs out of data cells before the text is written;
// the report is returned regardless.
func (c *Codec) Encode(text string) (*grid.Grid, *EncodeReport, error) {
	r := c.Tokenize(text)

	size, err := c.size(r)
	if err != nil {
		return nil, r, err
	}
	r.Size = size

	g := grid.New(size)
	c.opts.Layout.Stamp(g)

	w := c.walk(size)
	for i, color := range r.Colors {
		p, ok := w.Next()
		if !ok {
			return nil, r, fmt.Errorf("%w: %d of %d tokens fit in a %dx%d grid", grid.ErrCapacity, i, len(r.Colors), size, size)
		}
		g.Set(p.Row, p.Col, color)
	}

	return g, r, nil
}
