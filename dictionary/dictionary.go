/*
Package dictionary builds the reversible mapping between tokens and colors.

A token is a run of one or more symbols taken from a fixed alphabet. Every
token is assigned a unique 24-bit color by enumerating all tokens of length
one in alphabet order, then all tokens of length two in lexicographic order
and so on, each token consuming the next value of an increasing counter.

The lowest hex digits of every color may be reserved as a tolerance field.
Assigned colors always carry zero in those digits and lookups force them back
to zero, so a small amount of color drift from rasterisation does not break
decoding. With one tolerance digit a token color looks like #RRGGB0.

The calibration colors and the background are never assigned; the counter
value that would produce one of them is skipped.
*/
package dictionary

import (
	"errors"
	"fmt"
)

const (
	colorDigits  = 6
	maxTolerance = colorDigits - 1
)

// Spec describes how a Dictionary is built. Two dictionaries built from equal
// specs are identical.
type Spec struct {
	// Alphabet lists the symbols in enumeration order.
	Alphabet string

	// Compound optionally restricts tokens of two or more symbols to a
	// different set of symbols. Alphabet is used when empty.
	Compound string

	// MaxTokenLength is the longest token enumerated.
	MaxTokenLength int

	// MaxColors caps the number of counter values used. Zero means the
	// whole color space left after the tolerance digits.
	MaxColors int

	// ToleranceDigits is the number of low hex digits fixed to zero.
	ToleranceDigits int
}

// Budget returns the number of counter values available to the build.
func (s Spec) Budget() int {
	n := 1 << uint(4*(colorDigits-s.ToleranceDigits))
	if s.MaxColors > 0 && s.MaxColors < n {
		return s.MaxColors
	}
	return n
}

func uniqueSymbols(name, symbols string) ([]rune, error) {
	seen := make(map[rune]struct{})
	runes := []rune(symbols)
	for _, r := range runes {
		if _, ok := seen[r]; ok {
			return nil, fmt.Errorf("dictionary: duplicate symbol %q in %s", r, name)
		}
		seen[r] = struct{}{}
	}
	return runes, nil
}

func (s Spec) validate() error {
	switch {
	case s.Alphabet == "":
		return errors.New("dictionary: empty alphabet")
	case s.MaxTokenLength < 1:
		return errors.New("dictionary: max token length must be at least 1")
	case s.ToleranceDigits < 0 || s.ToleranceDigits > maxTolerance:
		return fmt.Errorf("dictionary: tolerance digits must be between 0 and %d", maxTolerance)
	case s.MaxColors < 0:
		return errors.New("dictionary: negative color budget")
	}
	return nil
}

// Dictionary maps tokens to colors and back. It is immutable once built and
// safe for concurrent use.
type Dictionary struct {
	spec   Spec
	mask   Color
	maxLen int

	colors map[string]Color
	tokens map[Color]string
	order  []string
}

// Build enumerates every token described by s and assigns each a color.
// Enumeration stops for good as soon as the color budget is spent, so a
// length that only partially fits is cut at that token and longer lengths
// are left out.
func Build(s Spec) (*Dictionary, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	single, err := uniqueSymbols("alphabet", s.Alphabet)
	if err != nil {
		return nil, err
	}
	compound := single
	if s.Compound != "" {
		if compound, err = uniqueSymbols("compound alphabet", s.Compound); err != nil {
			return nil, err
		}
	}

	shift := uint(4 * s.ToleranceDigits)
	d := &Dictionary{
		spec:   s,
		mask:   White &^ (1<<shift - 1),
		colors: make(map[string]Color),
		tokens: make(map[Color]string),
	}

	reserved := make(map[Color]struct{})
	for _, c := range append(Palette[:], Background) {
		reserved[d.Normalize(c)] = struct{}{}
	}

	budget := uint32(s.Budget())
	var counter uint32
	next := func() (Color, bool) {
		for ; counter < budget; counter++ {
			c := Color(counter << shift)
			if _, ok := reserved[c]; !ok {
				counter++
				return c, true
			}
		}
		return 0, false
	}

	for length := 1; length <= s.MaxTokenLength; length++ {
		symbols := single
		if length > 1 {
			symbols = compound
		}

		idx := make([]int, length)
		buf := make([]rune, length)
		for {
			for i, j := range idx {
				buf[i] = symbols[j]
			}

			c, ok := next()
			if !ok {
				return d, nil
			}
			d.add(string(buf), c)

			// Advance the odometer, rightmost position first
			i := length - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(symbols) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				break
			}
		}
	}

	return d, nil
}

func (d *Dictionary) add(token string, c Color) {
	d.colors[token] = c
	d.tokens[c] = token
	d.order = append(d.order, token)
	if n := len([]rune(token)); n > d.maxLen {
		d.maxLen = n
	}
}

// Spec returns the spec the dictionary was built from.
func (d *Dictionary) Spec() Spec {
	return d.spec
}

// Len returns the number of tokens.
func (d *Dictionary) Len() int {
	return len(d.order)
}

// MaxTokenLength returns the length of the longest token actually assigned,
// which can be less than requested when the budget ran out.
func (d *Dictionary) MaxTokenLength() int {
	return d.maxLen
}

// Normalize forces the tolerance digits of c to zero.
func (d *Dictionary) Normalize(c Color) Color {
	return c & d.mask
}

// Color returns the color assigned to token.
func (d *Dictionary) Color(token string) (Color, bool) {
	c, ok := d.colors[token]
	return c, ok
}

// Token returns the token for c after normalizing it.
func (d *Dictionary) Token(c Color) (string, bool) {
	t, ok := d.tokens[d.Normalize(c)]
	return t, ok
}

// Match returns the longest token that prefixes text along with its color
// and length in symbols. ok is false when not even the first symbol is in
// the dictionary.
func (d *Dictionary) Match(text []rune) (token string, c Color, n int, ok bool) {
	n = d.maxLen
	if len(text) < n {
		n = len(text)
	}
	for ; n > 0; n-- {
		token = string(text[:n])
		if c, ok = d.colors[token]; ok {
			return token, c, n, true
		}
	}
	return "", Background, 0, false
}

// Each calls fn for every token in enumeration order until fn returns false.
func (d *Dictionary) Each(fn func(token string, c Color) bool) {
	for _, t := range d.order {
		if !fn(t, d.colors[t]) {
			return
		}
	}
}
