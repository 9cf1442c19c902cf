package codec

import (
	"strings"

	"github.com/bodgit/colorgrid/dictionary"
	"github.com/bodgit/colorgrid/grid"
)

// DecodeReport describes a decoded grid.
type DecodeReport struct {
	// Cells is the number of data cells read.
	Cells int

	// Tokens is the number of cells that mapped to a token.
	Tokens int

	// Blank is the number of background cells, either unused or holding
	// a substituted symbol.
	Blank int

	// Unrecognized lists the cells whose color is neither background nor
	// in the dictionary. They contribute nothing to the text.
	Unrecognized []grid.Position
}

// Decode reads the text from g. Cells that do not map to a token are
// skipped and counted in the report rather than failing the decode.
func (c *Codec) Decode(g *grid.Grid) (string, *DecodeReport, error) {
	if g == nil || !c.opts.Layout.Fits(g.Size()) {
		return "", nil, errBadGrid
	}

	var (
		sb strings.Builder
		r  DecodeReport
	)
	background := c.dict.Normalize(dictionary.Background)

	w := c.walk(g.Size())
	for p, ok := w.Next(); ok; p, ok = w.Next() {
		r.Cells++

		color := g.At(p.Row, p.Col)
		if token, ok := c.dict.Token(color); ok {
			sb.WriteString(token)
			r.Tokens++
			continue
		}

		if c.dict.Normalize(color) == background {
			r.Blank++
		} else {
			r.Unrecognized = append(r.Unrecognized, p)
		}
	}

	return sb.String(), &r, nil
}
