package entropy

import (
	"math"
	"unicode/utf8"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/token"
)

const (
	// MinEntropy is the exclusive lower bound, in bits per character
	MinEntropy = 3.3
	// MinLength is the inclusive lower bound on token length in characters
	MinLength = 8
)

// Shannon computes the entropy of the character distribution of s in bits
func Shannon(s string) float64 {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return 0
	}
	counts := make(map[rune]int)
	for _, r := range s {
		counts[r]++
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}

// IsRandom reports whether a token looks like an opaque identifier
// (hash, token, slug) rather than a route literal.
func IsRandom(s string) bool {
	return utf8.RuneCountInString(s) >= MinLength && Shannon(s) > MinEntropy
}

// RandomLike returns the distinct untouched tokens of path that look random.
// The path is not modified.
func RandomLike(path token.Path) map[string]struct{} {
	out := make(map[string]struct{})
	for _, lit := range path.Literals() {
		if IsRandom(lit) {
			out[lit] = struct{}{}
		}
	}
	return out
}
