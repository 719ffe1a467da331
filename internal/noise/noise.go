// Package noise corrupts Morse text with stray characters.
package noise

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// DefaultSet is used when no noise characters are given.
const DefaultSet = "xX?#*~0"

// Garbler injects random characters into Morse tokens.
type Garbler struct {
	rnd *rand.Rand
}

// New returns a Garbler seeded with the current time.
func New() *Garbler {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Garbler with a fixed seed.
func NewWithSeed(seed int64) *Garbler {
	return &Garbler{rnd: rand.New(rand.NewSource(seed))}
}

// Garble visits every non-whitespace rune and, with probability rate, either
// replaces it or inserts a noise rune after it. Whitespace is left alone so
// token boundaries are kept.
func (g *Garbler) Garble(morse string, rate float64, noiseSet []rune) string {
	if rate <= 0 || morse == "" {
		return morse
	}
	if len(noiseSet) == 0 {
		noiseSet = []rune(DefaultSet)
	}
	var b strings.Builder
	b.Grow(len(morse) + len(morse)/4)
	for _, r := range morse {
		if unicode.IsSpace(r) || g.rnd.Float64() >= rate {
			b.WriteRune(r)
			continue
		}
		stray := noiseSet[g.rnd.Intn(len(noiseSet))]
		if g.rnd.Intn(2) == 0 {
			b.WriteRune(stray)
			continue
		}
		b.WriteRune(r)
		b.WriteRune(stray)
	}
	return b.String()
}

// GarbleTokens is Garble applied to a slice of tokens.
func (g *Garbler) GarbleTokens(tokens []string, rate float64, noiseSet []rune) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = g.Garble(token, rate, noiseSet)
	}
	return out
}
