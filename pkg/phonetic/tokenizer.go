package phonetic

import (
	"regexp"
	"strings"

	"github.com/matzehuels/inscribe/pkg/glyph"
)

// minPrefix is the shortest dictionary entry used to cover part of an
// unknown word. Shorter entries are mostly spelled-out letter names.
const minPrefix = 2

// Word is one word of a snippet and its script tokens.
type Word struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

// Tokenizer converts text to words of script tokens. It is safe for
// concurrent use once built.
type Tokenizer struct {
	dict       Dictionary
	conversion *Conversion
}

// Option configures a [Tokenizer].
type Option func(*Tokenizer)

func WithDictionary(d Dictionary) Option  { return func(t *Tokenizer) { t.dict = d } }
func WithConversion(c *Conversion) Option { return func(t *Tokenizer) { t.conversion = c } }

// NewTokenizer returns a tokenizer. Without a dictionary every word is
// approximated from its spelling.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.conversion == nil {
		t.conversion = DefaultConversion()
	}
	return t
}

var wordPattern = regexp.MustCompile(`[a-z']+|[0-9]+`)

// Tokenize splits text into words and converts each of them. Punctuation
// is dropped, as are words that yield no tokens.
func (t *Tokenizer) Tokenize(text string) []Word {
	var out []Word
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		var tokens []string
		if w[0] >= '0' && w[0] <= '9' {
			tokens = NumberTokens(w)
		} else {
			tokens = t.word(strings.Trim(w, "'"))
		}
		if len(tokens) > 0 {
			out = append(out, Word{Text: w, Tokens: tokens})
		}
	}
	return out
}

func (t *Tokenizer) word(w string) []string {
	if w == "" {
		return nil
	}
	if phonemes, ok := t.dict[w]; ok {
		return t.convert(phonemes)
	}

	var out []string
	for i := 0; i < len(w); {
		n := t.longestPrefix(w[i:])
		if n == 0 {
			// Spell up to the next position a dictionary entry starts at.
			j := i + 1
			for j < len(w) && t.longestPrefix(w[j:]) == 0 {
				j++
			}
			out = append(out, t.conversion.spell(w[i:j])...)
			i = j
			continue
		}
		out = append(out, t.convert(t.dict[w[i:i+n]])...)
		i += n
	}
	return out
}

// longestPrefix returns the length of the longest dictionary word that
// prefixes s, or 0.
func (t *Tokenizer) longestPrefix(s string) int {
	for n := len(s); n >= minPrefix; n-- {
		if _, ok := t.dict[s[:n]]; ok {
			return n
		}
	}
	return 0
}

func (t *Tokenizer) convert(phonemes []string) []string {
	var out []string
	for _, p := range phonemes {
		out = append(out, t.conversion.Phoneme(p)...)
	}
	return out
}

// NumberTokens splits a run of digits into number tokens. "10" stays one
// token.
func NumberTokens(digits string) []string {
	var out []string
	for i := 0; i < len(digits); i++ {
		if strings.HasPrefix(digits[i:], "10") {
			out = append(out, "10")
			i++
			continue
		}
		out = append(out, digits[i:i+1])
	}
	return out
}

// Letters resolves the tokens of words to letters. Tokens that are not part
// of the script are dropped, and so are words left empty.
func Letters(words []Word) [][]glyph.Letter {
	var out [][]glyph.Letter
	for _, w := range words {
		var letters []glyph.Letter
		for _, tok := range w.Tokens {
			if l, ok := glyph.Lookup(tok); ok {
				letters = append(letters, l)
			}
		}
		if len(letters) > 0 {
			out = append(out, letters)
		}
	}
	return out
}
