package core

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// CodeLength is the number of characters in a room code.
const CodeLength = 8

// Code alphabets selectable by configuration.
const (
	AlphabetNumeric      = "numeric"
	AlphabetAlphanumeric = "alphanumeric"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// CodeGenerator produces candidate room codes. Implementations must be safe
// for concurrent use.
type CodeGenerator interface {
	Generate() string
}

// GeneratorFunc adapts a function to CodeGenerator.
type GeneratorFunc func() string

// Generate calls f.
func (f GeneratorFunc) Generate() string { return f() }

// NumericGenerator draws uniformly from 00000000-99999999.
type NumericGenerator struct{}

// Generate returns a zero-padded 8 digit code.
func (NumericGenerator) Generate() string {
	return fmt.Sprintf("%0*d", CodeLength, rand.IntN(100_000_000))
}

// AlphanumericGenerator draws 8 lowercase base36 characters with the easily
// confused '1' and 'l' replaced by '7'.
type AlphanumericGenerator struct{}

// Generate returns an 8 character code.
func (AlphanumericGenerator) Generate() string {
	var b strings.Builder
	b.Grow(CodeLength)
	for range CodeLength {
		ch := base36[rand.IntN(len(base36))]
		if ch == '1' || ch == 'l' {
			ch = '7'
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// NewGenerator returns the generator for a configured alphabet name.
// An empty name selects the numeric alphabet.
func NewGenerator(alphabet string) (CodeGenerator, error) {
	switch alphabet {
	case "", AlphabetNumeric:
		return NumericGenerator{}, nil
	case AlphabetAlphanumeric:
		return AlphanumericGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown code alphabet %q", alphabet)
	}
}
