// Package tree builds the branching structure an inscription is drawn from.
//
// # Structure
//
// A [Tree] is an arena of [Node]s addressed by [NodeID]. Every word starts at
// a root node (a node without a letter). Consonants form the spine of a word
// through Consonant links; vowels and numbers hang off the spine as side
// chains through Vowel and Number links. The deepest consonant of one word
// links to the root of the next word through NextWord, so the spine of the
// whole text is a single path:
//
//	root ─k─ t ─NextWord─ root ─d─ g
//	     │
//	     ah
//
// A node never carries both a Consonant and a NextWord link. [Build] panics
// if that ever happens, since it means the builder itself is wrong.
//
// # Numbers
//
// Digits never start a word of their own. A word made only of digits joins
// the trailing number chain of the word before it, and that chain is carried
// over to the root of the following word. Digits still pending after the last
// word end up on the first root.
package tree
