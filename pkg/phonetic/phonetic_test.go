package phonetic

import (
	"slices"
	"strings"
	"testing"
)

const testDict = `;;; test dictionary
CAT  K AE1 T
DOG  D AO1 G
READ  R EH1 D
READ(2)  R IY1 D # present tense
THE  DH AH0
`

func loadTestDict(t *testing.T) Dictionary {
	t.Helper()
	d, err := LoadDictionary(strings.NewReader(testDict))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSnippets(t *testing.T) {
	got := Snippets("Hello world. Hello world! Second: third? fourth.", 3)
	want := []string{"Hello world", "Second", "third"}
	if !slices.Equal(got, want) {
		t.Errorf("Snippets = %q, want %q", got, want)
	}
	if got := Snippets("  ...  ", 3); len(got) != 0 {
		t.Errorf("Snippets(punctuation) = %q, want none", got)
	}
	if got := Snippets("a. b. c. d", 0); len(got) != 4 {
		t.Errorf("unlimited Snippets = %q", got)
	}
}

func TestNumberTokens(t *testing.T) {
	tests := map[string][]string{
		"7":    {"7"},
		"2010": {"2", "0", "10"},
		"100":  {"10", "0"},
		"1010": {"10", "10"},
	}
	for in, want := range tests {
		if got := NumberTokens(in); !slices.Equal(got, want) {
			t.Errorf("NumberTokens(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadDictionary(t *testing.T) {
	d := loadTestDict(t)
	if got, want := len(d), 4; got != want {
		t.Errorf("len = %d, want %d", got, want)
	}
	if got := d["read"]; !slices.Equal(got, []string{"R", "EH1", "D"}) {
		t.Errorf("read = %q, want first pronunciation", got)
	}
	if _, err := LoadDictionary(strings.NewReader("LONELY\n")); err == nil {
		t.Error("expected error for a word without pronunciation")
	}
}

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(WithDictionary(loadTestDict(t)))

	words := tok.Tokenize("The cat, 10 dogs!")
	var got []string
	for _, w := range words {
		got = append(got, strings.Join(w.Tokens, " "))
	}
	want := []string{"th uh", "k ah t", "10", "d oh g s"}
	if !slices.Equal(got, want) {
		t.Errorf("Tokenize = %q, want %q", got, want)
	}
}

func TestTokenizePrefixes(t *testing.T) {
	tok := NewTokenizer(WithDictionary(loadTestDict(t)))
	words := tok.Tokenize("catdog")
	if len(words) != 1 {
		t.Fatalf("words = %d, want 1", len(words))
	}
	if got, want := words[0].Tokens, []string{"k", "ah", "t", "d", "oh", "g"}; !slices.Equal(got, want) {
		t.Errorf("catdog = %q, want %q", got, want)
	}
}

func TestTokenizeSpelling(t *testing.T) {
	tok := NewTokenizer()
	tests := map[string][]string{
		"ship":  {"sh", "iy", "p"},
		"check": {"ch", "eh", "k"},
		"box":   {"b", "oh", "k", "s"},
	}
	for in, want := range tests {
		words := tok.Tokenize(in)
		if len(words) != 1 || !slices.Equal(words[0].Tokens, want) {
			t.Errorf("Tokenize(%q) = %+v, want %q", in, words, want)
		}
	}
}

func TestLetters(t *testing.T) {
	words := []Word{
		{Text: "cat", Tokens: []string{"k", "ah", "t"}},
		{Text: "?", Tokens: []string{"?"}},
		{Text: "x", Tokens: []string{"xx", "m"}},
	}
	letters := Letters(words)
	if got, want := len(letters), 2; got != want {
		t.Fatalf("words = %d, want %d", got, want)
	}
	if got, want := len(letters[1]), 1; got != want {
		t.Errorf("second word letters = %d, want %d", got, want)
	}
}

func TestParseTokensAndExplain(t *testing.T) {
	words := ParseTokens("k ah t / s ih t | 5 ")
	if got, want := len(words), 3; got != want {
		t.Fatalf("words = %d, want %d", got, want)
	}
	if got, want := Explain(words), "k ah t | s ih t | 5"; got != want {
		t.Errorf("Explain = %q, want %q", got, want)
	}
	if got, want := ExplainAll([][]Word{words[:1], words[1:2]}), "k ah t ||| s ih t"; got != want {
		t.Errorf("ExplainAll = %q, want %q", got, want)
	}
}

func TestLoadConversion(t *testing.T) {
	if _, err := LoadConversion(strings.NewReader("[phonemes]\nAA = \"aah\"\n")); err != nil {
		t.Errorf("valid table: %v", err)
	}
	if _, err := LoadConversion(strings.NewReader("[phonemes]\nAA = \"zz\"\n")); err == nil {
		t.Error("expected error for unknown token")
	}
	if _, err := LoadConversion(strings.NewReader("[phonemes\n")); err == nil {
		t.Error("expected decode error")
	}

	c := DefaultConversion()
	if got, want := c.Phoneme("ER1"), []string{"uh", "r"}; !slices.Equal(got, want) {
		t.Errorf("Phoneme(ER1) = %q, want %q", got, want)
	}
}
