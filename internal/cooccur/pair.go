package cooccur

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s used for pair equality, hashing and
// canonical ordering.
func fold(s string) string {
	return cases.Fold().String(s)
}

// PairKey is the hashable identity of a Pair: both members case-folded and
// in canonical order.
type PairKey struct {
	A, B string
}

// Pair is an unordered pair of distinct artists. Members keep their original
// case and are stored in case-insensitive order, so Pair(a, b) and Pair(b, a)
// hold identical fields.
type Pair struct {
	first  string
	second string
	key    PairKey
}

// NewPair builds the canonical pair for a and b. It fails with ErrSelfPair
// when a and b are equal ignoring case.
func NewPair(a, b string) (Pair, error) {
	fa, fb := fold(a), fold(b)
	switch {
	case fa == fb:
		return Pair{}, ErrSelfPair
	case fa > fb:
		a, b = b, a
		fa, fb = fb, fa
	}
	return Pair{first: a, second: b, key: PairKey{A: fa, B: fb}}, nil
}

// First returns the member that sorts first case-insensitively.
func (p Pair) First() string { return p.first }

// Second returns the other member.
func (p Pair) Second() string { return p.second }

// Key returns the case-insensitive identity of the pair.
func (p Pair) Key() PairKey { return p.key }

// Equal reports whether p and o name the same two artists, ignoring case.
func (p Pair) Equal(o Pair) bool { return p.key == o.key }

// Compare orders pairs by first member then second, using exact string
// comparison.
func (p Pair) Compare(o Pair) int {
	if c := strings.Compare(p.first, o.first); c != 0 {
		return c
	}
	return strings.Compare(p.second, o.second)
}

func (p Pair) String() string {
	return "(" + p.first + "|" + p.second + ")"
}
