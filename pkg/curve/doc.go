// Package curve bends a straight glyph layout along a Bezier path.
//
// # Bezier curves
//
// [Bezier] evaluates a curve of any degree with de Casteljau's algorithm.
// Control points are stored in local coordinates together with a uniform
// scale and an offset; the absolute control points and the arc-length table
// are cached and rebuilt whenever either changes.
//
// Arc length is measured on a polyline of [Samples] segments. [Bezier.FindT]
// inverts that table, so distances along the curve map to parameters with
// true arc-length spacing.
//
// # Coordinate systems
//
// A [CoordinateSystem] reads a point (x, y) as "x units along the curve, y
// units off it along the normal". The layout engine places glyphs on a
// straight baseline and converts every position with
// [CoordinateSystem.WorldToBezier].
//
// # Fitting
//
// [Fit] picks a hand-drawn template from a ladder keyed by the layout's
// extent, anchors it at the origin and steps its scale until the curve is
// just long enough to carry the layout.
package curve
