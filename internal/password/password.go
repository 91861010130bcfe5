// Package password generates random passwords from character classes or a
// custom alphabet.
package password

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// Character classes.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Symbols   = "@#!$%^&*()+{}[];,.?|<>~=`'_"
)

var (
	ErrInvalidLength = errors.New("length must be greater than zero")
	ErrEmptyCharset  = errors.New("character set is empty: enable at least one character class")
)

// Options select the alphabet. Custom, when set, replaces the classes.
type Options struct {
	Length    int
	Custom    string
	NoLower   bool
	NoUpper   bool
	NoDigits  bool
	NoSymbols bool
}

func (o Options) classes() []string {
	if o.Custom != "" {
		return nil
	}
	var classes []string
	if !o.NoLower {
		classes = append(classes, Lowercase)
	}
	if !o.NoUpper {
		classes = append(classes, Uppercase)
	}
	if !o.NoDigits {
		classes = append(classes, Digits)
	}
	if !o.NoSymbols {
		classes = append(classes, Symbols)
	}
	return classes
}

// Charset is the alphabet passwords are drawn from.
func (o Options) Charset() string {
	if o.Custom != "" {
		return o.Custom
	}
	return strings.Join(o.classes(), "")
}

// Generate returns a password of o.Length characters. With class-based
// alphabets every enabled class appears at least once when the length
// allows it.
func Generate(o Options) (string, error) {
	if o.Length <= 0 {
		return "", ErrInvalidLength
	}
	charset := []rune(o.Charset())
	if len(charset) == 0 {
		return "", ErrEmptyCharset
	}

	out := make([]rune, o.Length)
	for i := range out {
		r, err := pick(charset)
		if err != nil {
			return "", err
		}
		out[i] = r
	}

	classes := o.classes()
	if len(classes) == 0 || o.Length < len(classes) {
		return string(out), nil
	}

	// Seed one character of each class at distinct random positions.
	positions, err := distinctPositions(o.Length, len(classes))
	if err != nil {
		return "", err
	}
	for i, class := range classes {
		r, err := pick([]rune(class))
		if err != nil {
			return "", err
		}
		out[positions[i]] = r
	}
	return string(out), nil
}

func pick(set []rune) (rune, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

// distinctPositions draws k distinct indexes in [0, n) with a partial
// Fisher-Yates shuffle.
func distinctPositions(n, k int) ([]int, error) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(n-i)))
		if err != nil {
			return nil, err
		}
		swap := i + int(j.Int64())
		idx[i], idx[swap] = idx[swap], idx[i]
	}
	return idx[:k], nil
}
