// Package geom provides the small amount of planar geometry the inscription
// engine needs: points, line segments, axis-aligned rectangles and 2D affine
// matrices.
//
// # Coordinates
//
// All coordinates use the screen convention: x grows to the right and y grows
// downwards. A positive rotation angle therefore turns clockwise on screen.
//
// # Intersections
//
// [Segment.Intersects] treats touching endpoints and collinear overlap as
// intersections. The layout engine counts those as crossings, so two glyph
// strokes that merely share a point are still penalized.
package geom
