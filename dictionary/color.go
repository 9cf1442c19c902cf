package dictionary

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

// Color is a packed 24-bit RGB value, 0xRRGGBB. It implements color.Color
// and is always fully opaque.
type Color uint32

// Calibration and background colors. None of these are ever assigned to a
// token.
const (
	Black Color = 0x000000
	Red   Color = 0xff0000
	Green Color = 0x00ff00
	White Color = 0xffffff
)

// Background is the color of unused cells and of symbols that could not be
// mapped.
const Background = White

// Palette is the calibration palette used to paint anchor cells.
var Palette = [3]Color{Black, Red, Green}

var errBadColor = errors.New("dictionary: invalid color")

// RGB returns a Color from its 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// FromColor converts any color.Color to a Color, discarding alpha.
func FromColor(c color.Color) Color {
	if v, ok := c.(Color); ok {
		return v
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B)
}

// ParseColor parses a "#RRGGBB" string.
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("%w: %q", errBadColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadColor, s)
	}
	return Color(v), nil
}

// Components returns the 8-bit red, green and blue values.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>16) & 0xff
	r |= r << 8
	g = uint32(c>>8) & 0xff
	g |= g << 8
	b = uint32(c) & 0xff
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xffffff)
}

// Model converts colors to Color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})
