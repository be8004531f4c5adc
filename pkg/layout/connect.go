package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// anchorClearance is how far a candidate connector is shrunk before it is
// tested against the strokes of the glyphs it joins, so that touching its
// own anchors does not count.
const anchorClearance = 0.01

// Connect joins every instance to the instances of its children in
// consonant, vowel, number, next-word order.
func Connect(t *tree.Tree, instances []Instance) []Connector {
	index := make([]int, t.Len())
	for i := range index {
		index[i] = -1
	}
	for i, in := range instances {
		index[in.Node] = i
	}

	var out []Connector
	for i, in := range instances {
		for _, l := range t.Children(in.Node) {
			j := index[l.To]
			if j < 0 {
				continue
			}
			out = append(out, Connector{
				From:    i,
				To:      j,
				Edge:    l.Edge,
				Segment: closestAnchors(instances[i], instances[j]),
			})
		}
	}
	return out
}

// closestAnchors returns the shortest anchor-to-anchor segment that does not
// cut through either glyph, or the shortest one overall when every candidate
// does. It panics when either glyph has no anchors.
func closestAnchors(a, b Instance) geom.Segment {
	from, to := a.Anchors(), b.Anchors()
	if len(from) == 0 || len(to) == 0 {
		panic(fmt.Sprintf("layout: cannot connect %q and %q: glyph without anchors", a.Token, b.Token))
	}
	strokes := append(a.Segments(), b.Segments()...)

	var free, nearest geom.Segment
	freeDist, nearestDist := math.Inf(1), math.Inf(1)
	for _, p := range from {
		for _, q := range to {
			d := p.Distance(q)
			if d < nearestDist {
				nearest, nearestDist = geom.Seg(p, q), d
			}
			if d < freeDist && !crosses(geom.Seg(p, q).Shrink(anchorClearance), strokes) {
				free, freeDist = geom.Seg(p, q), d
			}
		}
	}
	if !math.IsInf(freeDist, 1) {
		return free
	}
	return nearest
}

func crosses(s geom.Segment, strokes []geom.Segment) bool {
	for _, o := range strokes {
		if s.Intersects(o) {
			return true
		}
	}
	return false
}
