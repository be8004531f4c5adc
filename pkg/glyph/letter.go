package glyph

import (
	"cmp"
	"slices"
)

// Letter is one phonetic token of the script together with its symbol pair.
type Letter struct {
	Token string
	Class Class
	A, B  Symbol
}

// Special reports whether the letter carries no symbols at all. Special
// letters are dropped before layout.
func (l Letter) Special() bool { return l.A == None && l.B == None }

// Pair returns the symbols in drawing order. Two-symbol consonants lead
// with their second symbol; everything else leads with the first.
func (l Letter) Pair() (first, second Symbol) {
	switch {
	case l.A == None || l.B == None:
		return cmp.Or(l.A, l.B), None
	case l.Class == Consonant:
		return l.B, l.A
	}
	return l.A, l.B
}

// Shape returns the letter's catalog shape, or false when its symbol pair
// has no definition.
func (l Letter) Shape() (Shape, bool) {
	if l.Special() {
		return Shape{}, false
	}
	return ShapeFor(l.Pair())
}

func (l Letter) String() string { return l.Token }

var letters = map[string]Letter{}

func define(class Class, token string, a, b Symbol) {
	letters[token] = Letter{Token: token, Class: class, A: a, B: b}
}

func init() {
	for _, l := range []struct {
		token string
		a, b  Symbol
	}{
		{"aah", Square, Line},
		{"iy", Square, Bend},
		{"ay", Square, Square},
		{"ah", Pentagon, Line},
		{"oh", Pentagon, Bend},
		{"eee", Hexagon, Line},
		{"oo", Hexagon, Bend},
		{"eh", Octagon, Line},
		{"uh", Octagon, Bend},
		{"oy", Hexagon, Octagon},
	} {
		define(Vowel, l.token, l.a, l.b)
	}

	for _, l := range []struct {
		token string
		a, b  Symbol
	}{
		{"p", None, Line},
		{"b", None, Bend},
		{"m", None, Square},
		{"w", None, Pentagon},
		{"v", None, Hexagon},
		{"f", None, Octagon},
		{"th", Line, Square},
		{"l", Line, Pentagon},
		{"ch", Line, Hexagon},
		{"sh", Line, Octagon},
		{"ih", Bend, None},
		{"z", Bend, Square},
		{"s", Bend, Pentagon},
		{"j", Bend, Hexagon},
		{"t", Bend, Octagon},
		{"n", Square, Square},
		{"d", Square, Pentagon},
		{"r", Square, Hexagon},
		{"y", Square, Octagon},
		{"k", Pentagon, Pentagon},
		{"g", Pentagon, Hexagon},
		{"ng", Pentagon, Octagon},
		{"h", Hexagon, Hexagon},
	} {
		define(Consonant, l.token, l.a, l.b)
	}

	for _, l := range []struct {
		token string
		a, b  Symbol
	}{
		{"0", Square, None},
		{"1", Pentagon, None},
		{"2", Hexagon, None},
		{"3", Octagon, None},
		{"4", Pentagon, Square},
		{"5", Hexagon, Square},
		{"6", Octagon, Square},
		{"7", Pentagon, Pentagon},
		{"8", Hexagon, Pentagon},
		{"9", Octagon, Pentagon},
		{"10", Hexagon, Hexagon},
	} {
		define(Number, l.token, l.a, l.b)
	}
}

// Lookup returns the letter for token, or false when the token is not part
// of the script.
func Lookup(token string) (Letter, bool) {
	l, ok := letters[token]
	return l, ok
}

// Parse is like [Lookup] but returns a special letter of class [Other] for
// unknown tokens.
func Parse(token string) Letter {
	if l, ok := letters[token]; ok {
		return l
	}
	return Letter{Token: token, Class: Other}
}

// MustParse returns the letters for tokens and panics on unknown ones.
// Intended for tests and fixed tables.
func MustParse(tokens ...string) []Letter {
	out := make([]Letter, len(tokens))
	for i, tok := range tokens {
		l, ok := letters[tok]
		if !ok {
			panic("glyph: unknown token " + tok)
		}
		out[i] = l
	}
	return out
}

// Letters returns the full letter table ordered by class, then token.
func Letters() []Letter {
	out := make([]Letter, 0, len(letters))
	for _, l := range letters {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b Letter) int {
		return cmp.Or(cmp.Compare(a.Class, b.Class), cmp.Compare(len(a.Token), len(b.Token)), cmp.Compare(a.Token, b.Token))
	})
	return out
}
