// Package phonetic turns plain text into the tokens of the script.
//
// # Snippets
//
// [Snippets] splits text into sentence-like pieces at '.', '!', '?' and ':'.
// Each snippet becomes its own layout in the final composition.
//
// # Tokenizing
//
// A [Tokenizer] lower-cases a snippet and splits it into words and numbers;
// punctuation is dropped. Numbers become one token per digit, except that
// "10" has a letter of its own. Words are looked up in a pronunciation
// [Dictionary] in CMU format and their ARPAbet phonemes are converted to
// script tokens through a [Conversion] table. Words the dictionary does not
// know are covered by their longest known prefixes, and whatever remains is
// approximated from its spelling.
//
// The default conversion table is embedded; [LoadConversion] reads a custom
// one in the same TOML layout:
//
//	[phonemes]
//	AA = "aah"
//	ER = "uh r"
//
//	[spelling]
//	tch = "ch"
//	x = "k s"
//
// # Pre-tokenized input
//
// [ParseTokens] accepts tokens directly: tokens are separated by spaces and
// words by '/' or '|', e.g. "k ah t / s ih t".
package phonetic
