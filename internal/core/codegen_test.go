package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	numericCode      = regexp.MustCompile(`^[0-9]{8}$`)
	alphanumericCode = regexp.MustCompile(`^[02-9a-km-z]{8}$`)
)

func TestNumericGenerator(t *testing.T) {
	gen := NumericGenerator{}
	seen := make(map[string]struct{})
	for range 2000 {
		code := gen.Generate()
		require.Regexp(t, numericCode, code)
		seen[code] = struct{}{}
	}
	// 2000 draws from 10^8 codes collide with negligible probability.
	assert.Greater(t, len(seen), 1990)
}

func TestAlphanumericGeneratorAvoidsConfusables(t *testing.T) {
	gen := AlphanumericGenerator{}
	for range 2000 {
		require.Regexp(t, alphanumericCode, gen.Generate())
	}
}

func TestNewGenerator(t *testing.T) {
	for _, name := range []string{"", AlphabetNumeric} {
		gen, err := NewGenerator(name)
		require.NoError(t, err)
		assert.IsType(t, NumericGenerator{}, gen)
	}

	gen, err := NewGenerator(AlphabetAlphanumeric)
	require.NoError(t, err)
	assert.IsType(t, AlphanumericGenerator{}, gen)

	_, err = NewGenerator("hex")
	assert.ErrorContains(t, err, "hex")
}

func TestGeneratorFunc(t *testing.T) {
	assert.Equal(t, "abc", GeneratorFunc(func() string { return "abc" }).Generate())
}
