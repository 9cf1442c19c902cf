package colorgrid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bodgit/colorgrid/codec"
	"github.com/bodgit/colorgrid/dictionary"
	"github.com/bodgit/colorgrid/grid"
	"github.com/bodgit/colorgrid/image"
)

// Config is a complete encoding profile. Grids can only be decoded with the
// profile they were encoded with, apart from the image settings.
type Config struct {
	// Alphabet names a dictionary preset, "lower" or "ascii".
	Alphabet string `toml:"alphabet"`

	// Symbols, when set, replaces the preset alphabet.
	Symbols  string `toml:"symbols"`
	Compound string `toml:"compound"`

	MaxTokenLength  int `toml:"max_token_length"`
	MaxColors       int `toml:"max_colors"`
	ToleranceDigits int `toml:"tolerance_digits"`

	Order       string `toml:"order"`
	BottomRight int    `toml:"bottom_right_anchor"`
	MinSize     int    `toml:"min_size"`
	Step        int    `toml:"step"`
	MaxSize     int    `toml:"max_size"`
	Size        int    `toml:"size"`
	Compact     bool   `toml:"compact"`

	Scale    int    `toml:"scale"`
	Sampling string `toml:"sampling"`
	Denoise  bool   `toml:"denoise"`

	// Workers is the number of goroutines used for batch runs.
	Workers int `toml:"workers"`
}

// DefaultConfig returns the lowercase, snake order profile.
func DefaultConfig() Config {
	return Config{
		Alphabet:        "lower",
		MaxTokenLength:  dictionary.DefaultMaxTokenLength,
		ToleranceDigits: 1,
		Order:           grid.Snake.String(),
		MinSize:         codec.DefaultMinSize,
		Step:            codec.DefaultStep,
		MaxSize:         codec.DefaultMaxSize,
		Scale:           image.DefaultScale,
		Sampling:        image.Nearest.String(),
		Workers:         10,
	}
}

// LoadConfig reads a TOML profile. Settings missing from the file keep their
// default values and unknown keys are an error.
func LoadConfig(file string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(file, &c)
	if err != nil {
		return Config{}, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown settings %s", file, strings.Join(keys, ", "))
	}

	return c, nil
}

// Label identifies the alphabet in the archive.
func (c Config) Label() string {
	if c.Symbols != "" {
		return c.Symbols
	}
	return c.Alphabet
}

// DictionarySpec returns the dictionary spec described by c.
func (c Config) DictionarySpec() (dictionary.Spec, error) {
	spec, err := dictionary.Preset(c.Alphabet)
	if err != nil {
		return dictionary.Spec{}, err
	}

	if c.Symbols != "" {
		spec.Alphabet = c.Symbols
		spec.Compound = ""
	}
	if c.Compound != "" {
		spec.Compound = c.Compound
	}
	if c.MaxTokenLength > 0 {
		spec.MaxTokenLength = c.MaxTokenLength
	}
	spec.MaxColors = c.MaxColors
	spec.ToleranceDigits = c.ToleranceDigits

	return spec, nil
}

// CodecOptions returns the grid geometry described by c.
func (c Config) CodecOptions() (codec.Options, error) {
	order, err := grid.ParseOrder(c.Order)
	if err != nil {
		return codec.Options{}, err
	}

	return codec.Options{
		Order: order,
		Layout: grid.Layout{
			AnchorSize:  grid.DefaultAnchorSize,
			BottomRight: c.BottomRight,
		},
		MinSize: c.MinSize,
		Step:    c.Step,
		MaxSize: c.MaxSize,
		Size:    c.Size,
		Compact: c.Compact,
	}, nil
}

// ImageOptions returns the settings used to read images. The grid size is
// detected unless the profile fixes it.
func (c Config) ImageOptions() (image.Options, error) {
	sampling, err := image.ParseSampling(c.Sampling)
	if err != nil {
		return image.Options{}, err
	}

	return image.Options{
		Size:     c.Size,
		Sampling: sampling,
		Denoise:  c.Denoise,
	}, nil
}
