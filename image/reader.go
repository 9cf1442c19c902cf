package image

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"

	"github.com/bodgit/colorgrid/dictionary"
	"github.com/bodgit/colorgrid/grid"
	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
)

var (
	errNoAnchor = errors.New("image: no anchor found")
	errBadSize  = errors.New("image: invalid grid size")
	errTooSmall = errors.New("image: fewer pixels than cells")
)

func toNRGBA(m image.Image) *image.NRGBA {
	if n, ok := m.(*image.NRGBA); ok {
		return n
	}
	b := m.Bounds()
	n := image.NewNRGBA(b)
	draw.Draw(n, b, m, b.Min, draw.Src)
	return n
}

func isBlack(c color.NRGBA) bool {
	return c.R <= anchorThreshold && c.G <= anchorThreshold && c.B <= anchorThreshold
}

func isRed(c color.NRGBA) bool {
	return c.R >= 0xff-anchorThreshold && c.G <= anchorThreshold && c.B <= anchorThreshold
}

// blackRun returns the number of black pixels on row y starting from the
// left edge, or zero if they are not followed by a red pixel.
func blackRun(m *image.NRGBA, y int) int {
	b := m.Bounds()
	x := b.Min.X
	for x < b.Max.X && isBlack(m.NRGBAAt(x, y)) {
		x++
	}
	if x == b.Min.X || x == b.Max.X || !isRed(m.NRGBAAt(x, y)) {
		return 0
	}
	return x - b.Min.X
}

// DetectSize returns the number of cells on a side of a rendered grid by
// measuring the first cell of the top-left anchor.
func DetectSize(m image.Image) (int, error) {
	img := toNRGBA(m)
	b := img.Bounds()
	if b.Empty() {
		return 0, errNoAnchor
	}

	w := blackRun(img, b.Min.Y)
	if w == 0 {
		return 0, errNoAnchor
	}

	// Measure again through the middle of the cell
	if mid := blackRun(img, b.Min.Y+w/2); mid > 0 {
		w = mid
	}

	return (b.Dx() + w/2) / w, nil
}

func denoise(m image.Image) image.Image {
	f := gift.New(gift.Median(3, false))
	dst := image.NewNRGBA(f.Bounds(m.Bounds()))
	f.Draw(dst, m)
	return dst
}

func sampleNearest(m image.Image, n int) *grid.Grid {
	small := resize.Resize(uint(n), uint(n), m, resize.NearestNeighbor)
	b := small.Bounds()

	g := grid.New(n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			g.Set(row, col, dictionary.FromColor(small.At(b.Min.X+col, b.Min.Y+row)))
		}
	}
	return g
}

// inset shrinks r by a quarter on each side, keeping at least one pixel.
func inset(r image.Rectangle) image.Rectangle {
	dx, dy := r.Dx()/4, r.Dy()/4
	return image.Rect(r.Min.X+dx, r.Min.Y+dy, r.Max.X-dx, r.Max.Y-dy)
}

func sampleDominant(m image.Image, n int) *grid.Grid {
	img := toNRGBA(m)
	b := img.Bounds()
	q := quantize.MedianCutQuantizer{}

	g := grid.New(n)
	for row := 0; row < n; row++ {
		y0 := b.Min.Y + row*b.Dy()/n
		y1 := b.Min.Y + (row+1)*b.Dy()/n
		for col := 0; col < n; col++ {
			x0 := b.Min.X + col*b.Dx()/n
			x1 := b.Min.X + (col+1)*b.Dx()/n

			cell := img.SubImage(inset(image.Rect(x0, y0, x1, y1)))
			if p := q.Quantize(make(color.Palette, 0, 1), cell); len(p) > 0 {
				g.Set(row, col, dictionary.FromColor(p[0]))
			}
		}
	}
	return g
}

// Sample reads one color per cell from m.
func Sample(m image.Image, o Options) (*grid.Grid, error) {
	if o.Denoise {
		m = denoise(m)
	}

	n := o.Size
	if n == 0 {
		var err error
		if n, err = DetectSize(m); err != nil {
			return nil, err
		}
	}
	if n < 1 {
		return nil, errBadSize
	}

	if b := m.Bounds(); b.Dx() < n || b.Dy() < n {
		return nil, errTooSmall
	}

	switch o.Sampling {
	case Dominant:
		return sampleDominant(m, n), nil
	default:
		return sampleNearest(m, n), nil
	}
}

// Decode reads an image in any registered format from r and samples it into
// a grid.
func Decode(r io.Reader, o Options) (*grid.Grid, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return Sample(m, o)
}
