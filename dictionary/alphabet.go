package dictionary

import "fmt"

// Symbol sets.
const (
	Lowercase   = "abcdefghijklmnopqrstuvwxyz"
	Uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits      = "0123456789"
	Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Alphabets.
const (
	// Lower is the 27 symbol lowercase and space alphabet.
	Lower = Lowercase + " "

	// ASCII is every printable ASCII character, 95 symbols.
	ASCII = Lowercase + Uppercase + Digits + Punctuation + " "
)

// DefaultMaxTokenLength is the longest token used by the presets.
const DefaultMaxTokenLength = 4

// Preset returns the named dictionary spec. "lower" uses the Lower alphabet
// for every token length. "ascii" assigns every ASCII character a single
// color but only builds multi-symbol tokens from lowercase letters.
func Preset(name string) (Spec, error) {
	switch name {
	case "lower", "":
		return Spec{
			Alphabet:        Lower,
			MaxTokenLength:  DefaultMaxTokenLength,
			ToleranceDigits: 1,
		}, nil
	case "ascii":
		return Spec{
			Alphabet:        ASCII,
			Compound:        Lowercase,
			MaxTokenLength:  DefaultMaxTokenLength,
			ToleranceDigits: 1,
		}, nil
	}
	return Spec{}, fmt.Errorf("dictionary: unknown preset %q", name)
}
