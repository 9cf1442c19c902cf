package colorgrid

import (
	"testing"

	"github.com/bodgit/colorgrid/dictionary"
	"github.com/bodgit/colorgrid/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(c dictionary.Color) *grid.Grid {
	g := grid.New(6)
	grid.DefaultLayout().Stamp(g)
	g.Set(5, 5, c)
	return g
}

func TestArchive(t *testing.T) {
	a := newTestArchive(t)

	g1 := testGrid(0x000110)
	g2 := testGrid(0x000120)

	id1, err := a.Add("lower", "a", g1)
	require.NoError(t, err)

	// Same message twice
	id, err := a.Add("lower", "a", g1)
	require.NoError(t, err)
	assert.Equal(t, id1, id)

	// Same grid, different profile
	id2, err := a.Add("ascii", "a", g1)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	id3, err := a.Add("lower", "b", g2)
	require.NoError(t, err)

	n, err := a.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	m, err := a.Find(g1)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, Message{ID: id1, Alphabet: "lower", Text: "a", Size: 6}, *m)

	m, err = a.Find(g2)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, id3, m.ID)
	assert.Equal(t, "b", m.Text)

	m, err = a.Find(testGrid(0x000130))
	require.NoError(t, err)
	assert.Nil(t, m)

	g, err := a.Grid(id2)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.True(t, g1.Equal(g))

	g, err = a.Grid(id3 + 100)
	require.NoError(t, err)
	assert.Nil(t, g)
}
