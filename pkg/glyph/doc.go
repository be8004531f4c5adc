// Package glyph defines the alphabet of the inscription script.
//
// # Symbols and letters
//
// Every letter of the script is drawn from up to two primitive [Symbol]s:
// a line, a bend, or one of four polygons. The [Letter] table maps the
// phonetic tokens produced by the tokenizer ("k", "ah", "t", "7", ...) to
// their symbol pair and their [Class]. Vowels, consonants and numbers share
// the same shapes; what tells them apart is where the layout puts them.
//
// # Shapes
//
// A [Shape] is the drawable form of a symbol pair: an open polyline plus the
// anchor points that connectors may attach to. Shapes are centered on the
// glyph origin so that rotation and scale turn a glyph in place.
//
// Not every symbol pair has a shape. [ShapeFor] reports false for those, and
// callers fall back to [Root], the same anchor-only form used for word roots.
package glyph
