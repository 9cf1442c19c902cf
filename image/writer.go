package image

import (
	"errors"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/bodgit/colorgrid/grid"
)

var errBadScale = errors.New("image: scale must be at least 1")

// Render draws g with each cell as a scale by scale square.
func Render(g *grid.Grid, scale int) (*image.NRGBA, error) {
	if scale < 1 {
		return nil, errBadScale
	}

	n := g.Size()
	m := image.NewNRGBA(image.Rect(0, 0, n*scale, n*scale))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			r := image.Rect(col*scale, row*scale, col*scale+scale, row*scale+scale)
			draw.Draw(m, r, image.NewUniform(g.At(row, col)), image.Point{}, draw.Src)
		}
	}

	return m, nil
}

// Encode writes g to w as a PNG image.
func Encode(w io.Writer, g *grid.Grid, scale int) error {
	m, err := Render(g, scale)
	if err != nil {
		return err
	}

	e := png.Encoder{CompressionLevel: png.BestCompression}
	return e.Encode(w, m)
}
