// Package randtext generates random strings for throwaway names.
package randtext

import (
	"math/rand/v2"
	"strings"
)

// Character sets
const (
	Upper        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower        = "abcdefghijklmnopqrstuvwxyz"
	Digits       = "0123456789"
	Alphanumeric = Upper + Lower + Digits
)

// Generator draws strings whose length falls in an inclusive range
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded from the runtime
func New() *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a deterministic generator
func NewSeeded(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed))}
}

// String returns between min and max characters from charset
func (g *Generator) String(charset string, min, max int) string {
	if max < min {
		min, max = max, min
	}
	if min < 0 {
		min = 0
	}
	n := min
	if max > min {
		n += g.rng.IntN(max - min + 1)
	}

	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(charset[g.rng.IntN(len(charset))])
	}
	return b.String()
}

// Alphanumeric returns mixed case letters and digits
func (g *Generator) Alphanumeric(min, max int) string {
	return g.String(Alphanumeric, min, max)
}

// UpperAlpha returns uppercase letters
func (g *Generator) UpperAlpha(min, max int) string {
	return g.String(Upper, min, max)
}

// Numeric returns digits
func (g *Generator) Numeric(min, max int) string {
	return g.String(Digits, min, max)
}
