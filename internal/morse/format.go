// Package morse converts text to and from Morse code written with arbitrary symbols.
package morse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidFormat is returned when a symbol triple cannot be used as a format.
var ErrInvalidFormat = errors.New("invalid morse format")

// Format is the symbol triple used to write Morse code.
type Format struct {
	Long  rune
	Short rune
	Space rune
}

// DefaultFormat is the canonical triple every alphabet code is written in.
var DefaultFormat = Format{Long: '-', Short: '.', Space: '/'}

// NewFormat builds a validated format.
func NewFormat(long, short, space rune) (Format, error) {
	f := Format{Long: long, Short: short, Space: space}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// ParseFormat reads a format written as exactly three symbols, long press first.
func ParseFormat(s string) (Format, error) {
	if utf8.RuneCountInString(s) != 3 {
		return Format{}, fmt.Errorf("%w: %q must be exactly three symbols (long, short, space)", ErrInvalidFormat, s)
	}
	runes := []rune(s)
	return NewFormat(runes[0], runes[1], runes[2])
}

// Validate reports whether the three symbols are usable and pairwise distinct.
func (f Format) Validate() error {
	for _, sym := range []struct {
		name string
		r    rune
	}{
		{"long press", f.Long},
		{"short press", f.Short},
		{"space", f.Space},
	} {
		if sym.r == 0 || sym.r == utf8.RuneError {
			return fmt.Errorf("%w: %s symbol is not set", ErrInvalidFormat, sym.name)
		}
		if unicode.IsSpace(sym.r) {
			return fmt.Errorf("%w: %s symbol must not be whitespace", ErrInvalidFormat, sym.name)
		}
	}
	if f.Long == f.Short || f.Long == f.Space || f.Short == f.Space {
		return fmt.Errorf("%w: symbols %q must be distinct", ErrInvalidFormat, f.String())
	}
	return nil
}

// IsSymbol reports whether r is one of the format's three symbols.
func (f Format) IsSymbol(r rune) bool {
	return r == f.Long || r == f.Short || r == f.Space
}

// String returns the three symbols concatenated, long press first.
func (f Format) String() string {
	var b strings.Builder
	b.WriteRune(f.Long)
	b.WriteRune(f.Short)
	b.WriteRune(f.Space)
	return b.String()
}

// SwitchFormat re-codes Morse text written in one format into another.
// Runes that are not symbols of from are copied unchanged.
func SwitchFormat(text string, from, to Format) string {
	if from == to {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case from.Long:
			return to.Long
		case from.Short:
			return to.Short
		case from.Space:
			return to.Space
		default:
			return r
		}
	}, text)
}
