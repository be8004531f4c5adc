package phonetic

import (
	"regexp"
	"strings"
)

// DefaultSnippets is the number of snippets kept by default.
const DefaultSnippets = 3

var snippetSeparator = regexp.MustCompile(`[.!?:]`)

// Snippets splits text at sentence punctuation and returns up to limit
// distinct, non-empty, trimmed pieces in order of appearance. A limit of
// zero or less keeps all of them.
func Snippets(text string, limit int) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range snippetSeparator.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

var wordSeparator = regexp.MustCompile(`[/|]`)

// ParseTokens reads pre-tokenized input such as "k ah t / s ih t".
func ParseTokens(s string) []Word {
	var out []Word
	for _, part := range wordSeparator.Split(s, -1) {
		tokens := strings.Fields(part)
		if len(tokens) == 0 {
			continue
		}
		out = append(out, Word{Text: strings.Join(tokens, ""), Tokens: tokens})
	}
	return out
}

// Explain renders the tokens of one snippet as "k ah t | s ih t".
func Explain(words []Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = strings.Join(w.Tokens, " ")
	}
	return strings.Join(parts, " | ")
}

// ExplainAll joins the explanations of several snippets with " ||| ".
func ExplainAll(snippets [][]Word) string {
	parts := make([]string, len(snippets))
	for i, words := range snippets {
		parts[i] = Explain(words)
	}
	return strings.Join(parts, " ||| ")
}
