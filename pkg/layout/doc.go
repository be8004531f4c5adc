// Package layout turns a branching tree into positioned glyphs.
//
// # Pipeline
//
// A layout is produced in four steps:
//
//  1. [Distribute] walks the tree's spine and places every node on a straight
//     baseline: spine glyphs at y=0, vowel and number chains above or below
//     it, then applies a random rotation, mirrored scale and vertical jitter.
//  2. A curve is fitted to the layout's extent ([FitCurve]).
//  3. Every base position is mapped onto the curve.
//  4. [Connect] joins each parent/child pair by its closest anchors.
//
// [Generate] runs all four steps with one random source.
//
// # Searching
//
// Random layouts often cross themselves. [Search] generates a fixed budget
// of attempts, counts crossings with [Intersections] and keeps the first
// attempt without any, or the one with the fewest. Attempts may run in
// parallel; selection happens in attempt order, so the outcome depends only
// on the seed and the budget.
//
// # Determinism
//
// All randomness comes from the [*rand.Rand] passed in, and each search
// attempt has its own source derived from the seed ([NewRand]). The same
// tree, seed and attempt always give the same layout, which is what lets
// [Replay] rebuild a cached search outcome.
package layout
