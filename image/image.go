/*
Package image converts between colorgrid grids and raster images.

A grid is rendered with every cell drawn as a solid square of scale by scale
pixels, so an N cell grid becomes an N*scale pixel square image. Reading an
image back samples one color per cell. The grid size is either supplied by
the caller or detected from the top-left anchor, whose first cell is black
and is followed by a red cell.

Two sampling methods are supported. Nearest resizes the image down to N by N
pixels with nearest-neighbour interpolation, which is exact for images this
package wrote. Dominant takes the most representative color of the inner
part of each cell, which copes better with photographs and lossy formats.
*/
package image

import "fmt"

const (
	// DefaultScale is the side of a rendered cell in pixels.
	DefaultScale = 16

	// anchorThreshold is the largest channel value still read as zero
	// when looking for anchor cells, and 0xff minus the smallest value
	// read as full intensity.
	anchorThreshold = 0x60
)

// Sampling selects how a cell's color is read from an image.
type Sampling int

// Sampling methods.
const (
	Nearest Sampling = iota
	Dominant
)

func (s Sampling) String() string {
	switch s {
	case Nearest:
		return "nearest"
	case Dominant:
		return "dominant"
	}
	return fmt.Sprintf("Sampling(%d)", int(s))
}

// ParseSampling returns the Sampling with the given name.
func ParseSampling(s string) (Sampling, error) {
	switch s {
	case "nearest", "":
		return Nearest, nil
	case "dominant":
		return Dominant, nil
	}
	return 0, fmt.Errorf("image: unknown sampling %q", s)
}

// Options controls how an image is read into a grid.
type Options struct {
	// Size is the number of cells on a side. Zero detects it from the
	// top-left anchor.
	Size int

	Sampling Sampling

	// Denoise applies a median filter before sampling.
	Denoise bool
}
