/*
Package colorgrid is a library for encoding short text messages as images of
colored cells and reading them back.

The heavy lifting is done by the dictionary, grid, codec and image packages;
this package ties them to a Config profile, an optional Archive and a
logger, and adds file and directory level operations.
*/
package colorgrid

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"

	"github.com/bodgit/colorgrid/codec"
	"github.com/bodgit/colorgrid/dictionary"
	"github.com/bodgit/colorgrid/grid"
	"github.com/bodgit/colorgrid/image"
	"github.com/charmbracelet/log"
)

type ColorGrid struct {
	cfg     Config
	codec   *codec.Codec
	image   image.Options
	archive *Archive
	logger  *log.Logger
}

// New builds the dictionary described by cfg and returns a ColorGrid using
// it. archive and logger may be nil.
func New(cfg Config, archive *Archive, logger *log.Logger) (*ColorGrid, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	spec, err := cfg.DictionarySpec()
	if err != nil {
		return nil, err
	}

	d, err := dictionary.Build(spec)
	if err != nil {
		return nil, err
	}
	logger.Debug("Built dictionary", "tokens", d.Len(), "max_token_length", d.MaxTokenLength(), "budget", spec.Budget())

	opts, err := cfg.CodecOptions()
	if err != nil {
		return nil, err
	}

	c, err := codec.New(d, opts)
	if err != nil {
		return nil, err
	}

	imageOpts, err := cfg.ImageOptions()
	if err != nil {
		return nil, err
	}

	return &ColorGrid{
		cfg:     cfg,
		codec:   c,
		image:   imageOpts,
		archive: archive,
		logger:  logger,
	}, nil
}

// Codec returns the codec in use.
func (cg *ColorGrid) Codec() *codec.Codec {
	return cg.codec
}

// Encode encodes text into a grid, recording it in the archive if there is
// one.
func (cg *ColorGrid) Encode(text string) (*grid.Grid, error) {
	g, r, err := cg.codec.Encode(text)
	if err != nil {
		return nil, err
	}

	if r.Substituted > 0 {
		cg.logger.Warn("Symbols outside the alphabet were dropped", "count", r.Substituted)
	}
	cg.logger.Debug("Encoded message", "characters", r.Characters, "tokens", len(r.Tokens), "size", r.Size)

	if cg.archive != nil {
		if _, err := cg.archive.Add(cg.cfg.Label(), text, g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Decode reads the text from g.
func (cg *ColorGrid) Decode(g *grid.Grid) (string, error) {
	text, r, err := cg.codec.Decode(g)
	if err != nil {
		return "", err
	}

	if n := len(r.Unrecognized); n > 0 {
		cg.logger.Warn("Cells with unrecognized colors were skipped", "count", n, "first", r.Unrecognized[0])
	}
	cg.logger.Debug("Decoded grid", "size", g.Size(), "cells", r.Cells, "tokens", r.Tokens, "blank", r.Blank)

	return text, nil
}

// EncodeImage encodes text and writes it to w as a PNG image.
func (cg *ColorGrid) EncodeImage(w io.Writer, text string) error {
	g, err := cg.Encode(text)
	if err != nil {
		return err
	}
	return image.Encode(w, g, cg.cfg.Scale)
}

// DecodeImage reads an image from r and decodes it.
func (cg *ColorGrid) DecodeImage(r io.Reader) (string, error) {
	g, err := image.Decode(r, cg.image)
	if err != nil {
		return "", err
	}
	return cg.Decode(g)
}

// EncodeFile encodes text into a PNG image written to file. Nothing is
// written if the text cannot be encoded.
func (cg *ColorGrid) EncodeFile(text, file string) error {
	b := new(bytes.Buffer)
	if err := cg.EncodeImage(b, text); err != nil {
		return err
	}

	return ioutil.WriteFile(file, b.Bytes(), 0644)
}

// DecodeFile decodes the image stored in file.
func (cg *ColorGrid) DecodeFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return cg.DecodeImage(f)
}

// Lookup finds the archived message whose grid matches the image in file.
// It returns nil if there is no archive or no match.
func (cg *ColorGrid) Lookup(file string) (*Message, error) {
	if cg.archive == nil {
		return nil, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := image.Decode(f, cg.image)
	if err != nil {
		return nil, err
	}

	return cg.archive.Find(g)
}
