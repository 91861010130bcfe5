package password

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	for _, n := range []int{1, 4, 32, 64, 300} {
		pw, err := Generate(Options{Length: n})
		require.NoError(t, err)
		assert.Equal(t, n, utf8.RuneCountInString(pw))
	}
}

func TestGenerate_ExcludesDisabledClasses(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		excluded string
	}{
		{name: "no symbols", opts: Options{Length: 256, NoSymbols: true}, excluded: Symbols},
		{name: "no lowercase", opts: Options{Length: 256, NoLower: true}, excluded: Lowercase},
		{name: "no uppercase", opts: Options{Length: 256, NoUpper: true}, excluded: Uppercase},
		{name: "no digits", opts: Options{Length: 256, NoDigits: true}, excluded: Digits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 5 {
				pw, err := Generate(tt.opts)
				require.NoError(t, err)
				assert.False(t, strings.ContainsAny(pw, tt.excluded), "password %q", pw)
			}
		})
	}
}

func TestGenerate_EveryClassPresent(t *testing.T) {
	for range 50 {
		pw, err := Generate(Options{Length: 4})
		require.NoError(t, err)
		for _, class := range []string{Lowercase, Uppercase, Digits, Symbols} {
			assert.True(t, strings.ContainsAny(pw, class), "%q lacks one of %q", pw, class)
		}
	}
}

func TestGenerate_Custom(t *testing.T) {
	pw, err := Generate(Options{Length: 16, Custom: "a"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 16), pw)

	pw, err = Generate(Options{Length: 40, Custom: "xyz", NoLower: true})
	require.NoError(t, err)
	assert.Empty(t, strings.Trim(pw, "xyz"))

	pw, err = Generate(Options{Length: 8, Custom: "é"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 8), pw)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(Options{Length: 0})
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Generate(Options{Length: -3})
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Generate(Options{Length: 8, NoLower: true, NoUpper: true, NoDigits: true, NoSymbols: true})
	assert.ErrorIs(t, err, ErrEmptyCharset)
}

func TestCharset(t *testing.T) {
	assert.Equal(t, Lowercase+Uppercase+Digits+Symbols, Options{Length: 64}.Charset())
	assert.Equal(t, Uppercase+Digits, Options{NoLower: true, NoSymbols: true}.Charset())
	assert.Equal(t, "@", Options{Custom: "@"}.Charset())
}

func TestDistinctPositions(t *testing.T) {
	for range 20 {
		got, err := distinctPositions(5, 4)
		require.NoError(t, err)
		seen := map[int]bool{}
		for _, p := range got {
			assert.True(t, p >= 0 && p < 5)
			assert.False(t, seen[p], "duplicate position %d", p)
			seen[p] = true
		}
	}
}
