package grid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/bodgit/colorgrid/dictionary"
)

// The binary form of a grid is the four byte magic, the size as a
// little-endian uint16 and then three bytes of red, green and blue for each
// cell, row by row.
const (
	magic   = "CGRD"
	maxSize = 1<<16 - 1
)

var (
	errBadMagic  = errors.New("grid: invalid magic")
	errNotEnough = errors.New("grid: not enough cell data")
	errTooMuch   = errors.New("grid: too much cell data")
	errTooLarge  = errors.New("grid: too large to marshal")
)

// MarshalBinary encodes the grid into binary form and returns the result.
func (g *Grid) MarshalBinary() ([]byte, error) {
	if g.size > maxSize {
		return nil, errTooLarge
	}

	b := new(bytes.Buffer)
	b.Grow(len(magic) + 2 + 3*len(g.cells))
	b.WriteString(magic)

	if err := binary.Write(b, binary.LittleEndian, uint16(g.size)); err != nil {
		return nil, err
	}

	for _, c := range g.cells {
		r, gr, bl := c.Components()
		b.Write([]byte{r, gr, bl})
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the grid from binary form.
func (g *Grid) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var m [len(magic)]byte
	if _, err := io.ReadFull(r, m[:]); err != nil || string(m[:]) != magic {
		return errBadMagic
	}

	var size uint16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return errNotEnough
	}

	n := int(size) * int(size)
	switch {
	case r.Len() < 3*n:
		return errNotEnough
	case r.Len() > 3*n:
		return errTooMuch
	}

	cells := make([]dictionary.Color, n)
	var tmp [3]byte
	for i := range cells {
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return errNotEnough
		}
		cells[i] = dictionary.RGB(tmp[0], tmp[1], tmp[2])
	}

	g.size = int(size)
	g.cells = cells

	return nil
}
