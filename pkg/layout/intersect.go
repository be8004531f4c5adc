package layout

import "github.com/matzehuels/inscribe/pkg/geom"

// ConnectorShrink is how far connectors are pulled in at both ends before
// counting crossings, so that meeting a glyph at its anchor is free.
const ConnectorShrink = 2

// Drawable is one element of a rendered composition in absolute
// coordinates. Glyphs carry an open polyline (empty for roots and letters
// without a drawn form) and their anchors; connectors carry their two
// endpoints.
type Drawable struct {
	Points    []geom.Point
	Anchors   []geom.Point
	Connector bool
}

// Segments returns the geometry used for crossing tests. Connectors are
// shrunk by [ConnectorShrink].
func (d Drawable) Segments() []geom.Segment {
	if d.Connector {
		if len(d.Points) < 2 {
			return nil
		}
		return []geom.Segment{geom.Seg(d.Points[0], d.Points[1]).Shrink(ConnectorShrink)}
	}
	return geom.Polyline(d.Points)
}

// Bounds covers the points and anchors of d.
func (d Drawable) Bounds() geom.Rect {
	return geom.RectOf(d.Points...).Union(geom.RectOf(d.Anchors...))
}

// Intersections counts intersecting segment pairs over all unordered pairs
// of distinct drawables. Segments within one drawable are never compared.
func Intersections(ds []Drawable) int {
	segs := make([][]geom.Segment, len(ds))
	boxes := make([]geom.Rect, len(ds))
	for i, d := range ds {
		segs[i] = d.Segments()
		box := geom.EmptyRect()
		for _, s := range segs[i] {
			box = box.Union(s.Bounds())
		}
		boxes[i] = box
	}

	n := 0
	for i := range ds {
		for j := i + 1; j < len(ds); j++ {
			if !boxes[i].Overlaps(boxes[j]) {
				continue
			}
			n += geom.CountIntersections(segs[i], segs[j])
		}
	}
	return n
}
