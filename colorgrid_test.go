package colorgrid

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/colorgrid/grid"
	"github.com/bodgit/colorgrid/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	c := DefaultConfig()
	c.MaxTokenLength = 3
	c.Scale = 4
	c.Workers = 3
	return c
}

func newTestColorGrid(t *testing.T, c Config, a *Archive) *ColorGrid {
	t.Helper()
	cg, err := New(c, a, nil)
	require.NoError(t, err)
	return cg
}

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := NewArchive(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestEncodeDecodeImage(t *testing.T) {
	tests := []struct {
		name   string
		config func(*Config)
	}{
		{"default", func(*Config) {}},
		{"row-major", func(c *Config) { c.Order = "row-major" }},
		{"four anchors", func(c *Config) { c.BottomRight = 2; c.MinSize = 7 }},
		{"dominant", func(c *Config) { c.Sampling = "dominant"; c.Scale = 12 }},
		{"no tolerance", func(c *Config) { c.ToleranceDigits = 0 }},
		{"custom symbols", func(c *Config) { c.Symbols = "abcdefghijklmnopqrstuvwxyz .,"; c.MaxTokenLength = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.config(&c)
			cg := newTestColorGrid(t, c, nil)

			text := "the five boxing wizards jump quickly"
			b := new(bytes.Buffer)
			require.NoError(t, cg.EncodeImage(b, text))

			got, err := cg.DecodeImage(b)
			require.NoError(t, err)
			assert.Equal(t, text, got)
		})
	}
}

func TestEncodeFixedSizeOverflow(t *testing.T) {
	c := testConfig()
	c.Size = 6
	cg := newTestColorGrid(t, c, nil)

	text := "a message far too long for nine cells of three letters"
	_, err := cg.Encode(text)
	assert.True(t, errors.Is(err, grid.ErrCapacity))

	file := filepath.Join(t.TempDir(), "long.png")
	err = cg.EncodeFile(text, file)
	assert.True(t, errors.Is(err, grid.ErrCapacity))
	assert.NoFileExists(t, file)
}

func TestEncodeDirOverflow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "long.txt"), []byte(strings.Repeat("abcdefghij", 60)), 0644))

	c := testConfig()
	c.MaxSize = 8
	cg := newTestColorGrid(t, c, nil)

	err := cg.EncodeDir(dir)
	assert.True(t, errors.Is(err, grid.ErrCapacity))
	assert.NoFileExists(t, filepath.Join(dir, "long.png"))
}

func TestEncodeDirArchive(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		file := filepath.Join(dir, fmt.Sprintf("message%02d.txt", i))
		require.NoError(t, ioutil.WriteFile(file, []byte(fmt.Sprintf("message number %d", i)), 0644))
	}

	a := newTestArchive(t)
	cg := newTestColorGrid(t, testConfig(), a)
	require.NoError(t, cg.EncodeDir(dir))

	n, err := a.Len()
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for i := 0; i < 12; i++ {
		m, err := cg.Lookup(filepath.Join(dir, fmt.Sprintf("message%02d.png", i)))
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, fmt.Sprintf("message number %d", i), m.Text)
	}
}

func TestEncodeDecodeFile(t *testing.T) {
	a := newTestArchive(t)
	cg := newTestColorGrid(t, testConfig(), a)

	file := filepath.Join(t.TempDir(), "hello.png")
	require.NoError(t, cg.EncodeFile("hello world", file))

	text, err := cg.DecodeFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	m, err := cg.Lookup(file)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "hello world", m.Text)
	assert.Equal(t, "lower", m.Alphabet)

	// Uppercase letters are dropped on encode, the archive keeps them
	require.NoError(t, cg.EncodeFile("Hello world", file))
	text, err = cg.DecodeFile(file)
	require.NoError(t, err)
	assert.Equal(t, "ello world", text)

	m, err = cg.Lookup(file)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Hello world", m.Text)

	_, err = cg.DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLookupWithoutArchive(t *testing.T) {
	cg := newTestColorGrid(t, testConfig(), nil)
	m, err := cg.Lookup("anything.png")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestDirectories(t *testing.T) {
	dir := t.TempDir()
	messages := map[string]string{
		"a.txt":              "attack at dawn",
		"b.txt":              "retreat at dusk\n",
		"nested/c.txt":       "hold the bridge",
		".hidden/d.txt":      "never seen",
		"nested/ignored.dat": "not text",
	}
	for name, text := range messages {
		file := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
		require.NoError(t, ioutil.WriteFile(file, []byte(text), 0644))
	}

	cg := newTestColorGrid(t, testConfig(), nil)
	require.NoError(t, cg.EncodeDir(dir))

	for _, name := range []string{"a.png", "b.png", "nested/c.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.NoFileExists(t, filepath.Join(dir, ".hidden/d.png"))
	assert.NoFileExists(t, filepath.Join(dir, "nested/ignored.png"))

	// Remove the sources so decoding recreates them
	for _, name := range []string{"a.txt", "b.txt", "nested/c.txt"} {
		require.NoError(t, os.Remove(filepath.Join(dir, name)))
	}
	require.NoError(t, cg.DecodeDir(dir))

	for name, want := range map[string]string{
		"a.txt":        "attack at dawn\n",
		"b.txt":        "retreat at dusk\n",
		"nested/c.txt": "hold the bridge\n",
	} {
		b, err := ioutil.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(b), name)
	}
}

func TestDecodeDirError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0644))

	cg := newTestColorGrid(t, testConfig(), nil)
	assert.Error(t, cg.DecodeDir(dir))
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config func(*Config)
	}{
		{"alphabet", func(c *Config) { c.Alphabet = "greek" }},
		{"order", func(c *Config) { c.Order = "spiral" }},
		{"sampling", func(c *Config) { c.Sampling = "bicubic" }},
		{"tolerance", func(c *Config) { c.ToleranceDigits = 9 }},
		{"size", func(c *Config) { c.Size = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig()
			tt.config(&c)
			_, err := New(c, nil, nil)
			assert.Error(t, err)
		})
	}
}

func TestImageOptions(t *testing.T) {
	c := DefaultConfig()
	c.Sampling = "dominant"
	c.Denoise = true

	o, err := c.ImageOptions()
	require.NoError(t, err)
	assert.Equal(t, image.Options{Sampling: image.Dominant, Denoise: true}, o)
}
