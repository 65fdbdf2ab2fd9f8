// internal/mastermind/alphabet.go
//
// Alphabet and Code: the color symbols of a game and sequences over them.
// Codes hold color indexes (0..K-1) rather than runes so that scoring and
// bucketing never touch a map.

package mastermind

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxColors bounds the alphabet size so a color index fits in a byte.
const MaxColors = 256

// Code is a sequence of color indexes into an Alphabet.
type Code []byte

// Alphabet is an ordered set of distinct color symbols.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet validates colors and builds the symbol index.
func NewAlphabet(colors string) (*Alphabet, error) {
	if !utf8.ValidString(colors) {
		return nil, fmt.Errorf("%w: alphabet is not valid UTF-8", ErrInvalidConfiguration)
	}
	symbols := []rune(colors)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidConfiguration)
	}
	if len(symbols) > MaxColors {
		return nil, fmt.Errorf("%w: %d colors, at most %d supported",
			ErrInvalidConfiguration, len(symbols), MaxColors)
	}
	index := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		if _, dup := index[r]; dup {
			return nil, fmt.Errorf("%w: duplicate color %q", ErrInvalidConfiguration, r)
		}
		index[r] = i
	}
	return &Alphabet{symbols: symbols, index: index}, nil
}

// Size returns K, the number of colors.
func (a *Alphabet) Size() int { return len(a.symbols) }

// String returns the colors in alphabet order.
func (a *Alphabet) String() string { return string(a.symbols) }

// Symbol returns the rune for color index i.
func (a *Alphabet) Symbol(i int) rune { return a.symbols[i] }

// Index returns the color index of r, or false if r is not a color.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Parse converts s into a Code of exactly length colors.
func (a *Alphabet) Parse(s string, length int) (Code, error) {
	code := make(Code, 0, length)
	for _, r := range s {
		i, ok := a.index[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownSymbol, r, s)
		}
		code = append(code, byte(i))
	}
	if len(code) != length {
		return nil, fmt.Errorf("%w: %q has %d symbols, want %d", ErrSequenceLength, s, len(code), length)
	}
	return code, nil
}

// Format renders a Code using the alphabet's symbols.
func (a *Alphabet) Format(c Code) string {
	var b strings.Builder
	b.Grow(len(c))
	for _, i := range c {
		b.WriteRune(a.symbols[i])
	}
	return b.String()
}

// FormatClass renders a set of color indexes as a string of symbols.
func (a *Alphabet) FormatClass(colors []int) string {
	var b strings.Builder
	for _, i := range colors {
		b.WriteRune(a.symbols[i])
	}
	return b.String()
}

// Equal reports whether two codes hold the same colors in the same order.
func (c Code) Equal(other Code) bool { return slices.Equal(c, other) }
