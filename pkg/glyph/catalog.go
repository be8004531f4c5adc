package glyph

import (
	"cmp"
	"slices"

	"github.com/matzehuels/inscribe/pkg/geom"
)

// Shape is the drawable form of a symbol pair. Points form an open polyline
// centered on the glyph origin; Anchors are where connectors may attach.
type Shape struct {
	Name    string
	A, B    Symbol
	Points  []geom.Point
	Anchors []geom.Point
}

// Segments decomposes the polyline into consecutive segments.
func (s Shape) Segments() []geom.Segment { return geom.Polyline(s.Points) }

// Bare reports whether the shape has no strokes.
func (s Shape) Bare() bool { return len(s.Points) == 0 }

// Root returns the anchor-only shape used for word roots and for letters
// whose symbol pair has no definition.
func Root() Shape {
	return Shape{Name: "ROOT", Anchors: []geom.Point{{}}}
}

type pairKey struct{ lo, hi Symbol }

func keyOf(a, b Symbol) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

var catalog = map[pairKey]Shape{}

// designGrid is the size of the square grid shapes are authored on.
const designGrid = 100

// xy builds centered points from raw design grid coordinates.
func xy(coords ...float64) []geom.Point {
	pts := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, geom.Pt(coords[i]-designGrid/2, coords[i+1]-designGrid/2))
	}
	return pts
}

func shape(a, b Symbol, points, anchors []geom.Point) {
	name := a.String()
	if b != None {
		name += "_" + b.String()
	}
	k := keyOf(a, b)
	catalog[k] = Shape{Name: name, A: k.lo, B: k.hi, Points: points, Anchors: anchors}
}

func init() {
	line := xy(10, 50, 90, 50)
	shape(Line, None, line, line)
	shape(Bend, None, xy(22, 50, 63, 25, 85, 50), xy(22, 50, 85, 50))

	square := xy(57, 15, 21, 40, 47, 78, 84, 53, 57, 15)
	shape(Square, None, square, square[:4])
	pentagon := xy(48, 18, 78, 39, 74, 72, 34, 80, 21, 43, 48, 18)
	shape(Pentagon, None, pentagon, pentagon[:5])
	hexagon := xy(25, 36, 50, 17, 75, 36, 75, 63, 50, 83, 25, 63, 25, 36)
	shape(Hexagon, None, hexagon, hexagon[:6])
	octagon := xy(35, 21, 63, 21, 80, 39, 80, 67, 64, 81, 34, 81, 18, 64, 18, 39, 35, 21)
	shape(Octagon, None, octagon, octagon[:8])

	shape(Line, Square,
		xy(47, 23, 18, 43, 38, 71, 68, 52, 47, 23, 17, 15, 47, 23),
		xy(18, 43, 38, 71, 68, 52))
	shape(Line, Pentagon,
		xy(52, 21, 27, 43, 42, 75, 77, 75, 82, 42, 52, 21, 13, 22),
		xy(27, 43, 42, 75, 77, 75, 82, 42))
	shape(Line, Hexagon,
		xy(55, 20, 31, 37, 31, 65, 58, 83, 78, 67, 78, 39, 55, 20, 11, 13),
		xy(31, 37, 31, 65, 58, 83, 78, 67, 78, 39))
	shape(Line, Octagon,
		xy(44, 24, 70, 23, 85, 38, 85, 58, 70, 72, 46, 73, 30, 59, 29, 37, 44, 24, 2, 35),
		xy(70, 23, 85, 38, 85, 58, 70, 72, 46, 73, 30, 59))

	shape(Square, Square,
		xy(63, 40, 39, 15, 16, 36, 39, 61, 61, 85, 86, 64, 63, 40, 39, 61),
		xy(63, 40, 39, 15, 16, 36, 39, 61, 61, 85, 86, 64, 63, 40))
	shape(Square, Pentagon,
		xy(58, 34, 79, 47, 71, 76, 39, 76, 32, 52, 58, 34, 32, 52, 16, 26, 42, 9, 58, 34),
		xy(79, 47, 71, 76, 39, 76, 16, 26, 42, 9))
	shape(Square, Hexagon,
		xy(56, 36, 38, 11, 12, 29, 33, 53, 56, 36, 83, 34, 87, 60, 59, 83, 28, 80, 33, 53),
		xy(38, 11, 12, 29, 83, 34, 87, 60, 59, 83, 28, 80))
	shape(Square, Octagon,
		xy(48, 29, 25, 9, 7, 29, 28, 46, 48, 29, 71, 29, 87, 42, 90, 63, 73, 82, 47, 82, 28, 64, 28, 46),
		xy(25, 9, 7, 29, 71, 29, 87, 42, 90, 63, 73, 82, 47, 82, 28, 64))

	// Bend and double-polygon combinations other than square have no
	// drawn form yet and resolve to "no definition".
}

// ShapeFor returns the shape for a symbol pair. The order of a and b does
// not matter, and a single symbol is looked up with b set to [None].
func ShapeFor(a, b Symbol) (Shape, bool) {
	s, ok := catalog[keyOf(a, b)]
	return s, ok
}

// Shapes lists every defined shape, single symbols first.
func Shapes() []Shape {
	out := make([]Shape, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s)
	}
	slices.SortFunc(out, func(x, y Shape) int {
		return cmp.Or(cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})
	return out
}
