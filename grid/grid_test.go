package grid

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bodgit/colorgrid/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var layouts = []struct {
	name   string
	layout Layout
}{
	{"three anchors", DefaultLayout()},
	{"four anchors", Layout{AnchorSize: 3, BottomRight: 3}},
	{"small bottom right", Layout{AnchorSize: 3, BottomRight: 2}},
}

var orders = []Order{Snake, RowMajor}

func TestStampMatchesIsReserved(t *testing.T) {
	for _, l := range layouts {
		for size := 6; size <= 24; size++ {
			if !l.layout.Fits(size) {
				continue
			}
			t.Run(fmt.Sprintf("%s/%d", l.name, size), func(t *testing.T) {
				g := New(size)
				l.layout.Stamp(g)

				reserved := 0
				for row := 0; row < size; row++ {
					for col := 0; col < size; col++ {
						painted := g.At(row, col) != dictionary.Background
						assert.Equal(t, painted, l.layout.IsReserved(row, col, size), "cell %d,%d", row, col)
						if painted {
							reserved++
						}
					}
				}
				assert.Equal(t, reserved, l.layout.Reserved(size))
			})
		}
	}
}

func TestStampPalette(t *testing.T) {
	g := New(8)
	DefaultLayout().Stamp(g)

	want := [3][3]dictionary.Color{
		{dictionary.Black, dictionary.Red, dictionary.Green},
		{dictionary.Red, dictionary.Green, dictionary.Black},
		{dictionary.Green, dictionary.Black, dictionary.Red},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, want[i][j], g.At(i, j), "top-left %d,%d", i, j)
			assert.Equal(t, want[i][j], g.At(i, 5+j), "top-right %d,%d", i, j)
			assert.Equal(t, want[i][j], g.At(5+i, j), "bottom-left %d,%d", i, j)
		}
	}
	assert.Equal(t, dictionary.Background, g.At(7, 7))
}

func TestWalkCoversDataCells(t *testing.T) {
	for _, l := range layouts {
		for _, o := range orders {
			for size := 6; size <= 40; size++ {
				if !l.layout.Fits(size) {
					continue
				}
				t.Run(fmt.Sprintf("%s/%s/%d", l.name, o, size), func(t *testing.T) {
					seen := make(map[Position]bool)
					for _, p := range l.layout.Walk(o, size).All() {
						require.False(t, seen[p], "visited %v twice", p)
						require.True(t, p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size, "%v outside grid", p)
						require.False(t, l.layout.IsReserved(p.Row, p.Col, size), "%v is reserved", p)
						seen[p] = true
					}
					assert.Len(t, seen, l.layout.Capacity(size))
				})
			}
		}
	}
}

func TestWalkSnakeOrder(t *testing.T) {
	want := []Position{
		{5, 5}, {4, 5}, {3, 5},
		{3, 4}, {4, 4}, {5, 4},
		{5, 3}, {4, 3}, {3, 3},
	}
	assert.Equal(t, want, DefaultLayout().Walk(Snake, 6).All())

	// Start just above the bottom-right anchor, then sweep the full
	// height of the middle columns
	got := Layout{AnchorSize: 3, BottomRight: 3}.Walk(Snake, 8).All()
	require.Len(t, got, 64-36)
	assert.Equal(t, []Position{{4, 7}, {3, 7}, {3, 6}, {4, 6}, {4, 5}, {3, 5}, {0, 4}}, got[:7])
	assert.Equal(t, Position{7, 4}, got[13])
	assert.Equal(t, Position{7, 3}, got[14])
	assert.Equal(t, Position{0, 3}, got[21])
	assert.Equal(t, Position{4, 0}, got[27])
}

func TestWalkRowMajorOrder(t *testing.T) {
	got := DefaultLayout().Walk(RowMajor, 7).All()
	require.Len(t, got, 49-27)

	assert.Equal(t, Position{0, 3}, got[0])
	assert.Equal(t, Position{1, 3}, got[1])
	assert.Equal(t, Position{3, 0}, got[3])
	assert.Equal(t, Position{6, 6}, got[len(got)-1])
}

func TestWalkerReset(t *testing.T) {
	w := Layout{AnchorSize: 3, BottomRight: 3}.Walk(Snake, 12)
	first := w.All()

	_, ok := w.Next()
	assert.False(t, ok)

	w.Reset()
	assert.Equal(t, first, w.All())
}

func TestSizeFor(t *testing.T) {
	l := DefaultLayout()

	n, err := SizeFor(2, l, 6, 1, 64)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = SizeFor(0, Layout{AnchorSize: 3, BottomRight: 3}, 1, 1, 64)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	for _, tt := range layouts {
		for _, step := range []int{1, 2} {
			for required := 0; required <= 500; required += 7 {
				n, err := SizeFor(required, tt.layout, 6, step, 64)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, tt.layout.Capacity(n), required)
				if smaller := n - step; smaller >= 6 {
					assert.Less(t, tt.layout.Capacity(smaller), required, "%s: size %d also fits %d", tt.name, smaller, required)
				}
			}
		}
	}

	_, err = SizeFor(1000, l, 6, 1, 20)
	assert.True(t, errors.Is(err, ErrCapacity))
}

func TestBinary(t *testing.T) {
	g := New(7)
	DefaultLayout().Stamp(g)
	g.Set(4, 4, dictionary.RGB(1, 2, 3))

	b, err := g.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, 4+2+3*49)

	var got Grid
	require.NoError(t, got.UnmarshalBinary(b))
	assert.True(t, g.Equal(&got))
	assert.Equal(t, dictionary.RGB(1, 2, 3), got.At(4, 4))

	tests := []struct {
		name string
		b    []byte
		err  error
	}{
		{"bad magic", append([]byte("XXXX"), b[4:]...), errBadMagic},
		{"short", b[:len(b)-1], errNotEnough},
		{"long", append(append([]byte{}, b...), 0), errTooMuch},
		{"empty", nil, errBadMagic},
		{"no size", []byte(magic), errNotEnough},
		{"header only", []byte{'C', 'G', 'R', 'D', 0xff, 0xff}, errNotEnough},
		{"truncated header", []byte{'C', 'G', 'R', 'D', 0x00, 0x20}, errNotEnough},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Grid
			assert.Equal(t, tt.err, g.UnmarshalBinary(tt.b))
		})
	}
}

func TestGridBounds(t *testing.T) {
	g := New(3)
	g.Set(-1, 0, dictionary.Red)
	g.Set(0, 3, dictionary.Red)
	assert.Equal(t, dictionary.Background, g.At(-1, 0))
	assert.Equal(t, dictionary.Background, g.At(3, 3))
	assert.False(t, g.Equal(New(4)))
	assert.False(t, g.Equal(nil))
	assert.True(t, g.Equal(g))
}

func TestParseOrder(t *testing.T) {
	for _, o := range orders {
		got, err := ParseOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOrder("spiral")
	assert.Error(t, err)
}
