// Package compose merges several independently laid out snippets into one
// scene.
//
// The first layout (the primary) stays where it is. Every further layout is
// rotated and moved onto a point near the primary's curve, and a merge
// connector joins its first root to the nearest anchor already in the
// scene. Layout geometry is never rewritten: each [Group] carries a
// transform stack that is applied whenever the scene is drawn.
package compose

import (
	"math"

	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/layout"
)

// Group is one snippet's layout placed into a scene.
type Group struct {
	Layout *layout.Result

	// Stack is applied first element first.
	Stack []geom.Matrix

	// Merge joins this group to the scene. Nil for the primary group and
	// when nothing in the scene had anchors to connect to.
	Merge *geom.Segment
}

// Matrix folds the transform stack.
func (g Group) Matrix() geom.Matrix { return geom.Compose(g.Stack...) }

// Drawables returns the group's layout in scene coordinates, without its
// merge connector.
func (g Group) Drawables() []layout.Drawable {
	m := g.Matrix()
	ds := g.Layout.Drawables()
	if m.IsIdentity() {
		return ds
	}
	for i := range ds {
		ds[i].Points = m.ApplyAll(ds[i].Points)
		ds[i].Anchors = m.ApplyAll(ds[i].Anchors)
	}
	return ds
}

// Scene is a composition of snippet layouts.
type Scene struct {
	Groups []Group
}

// Drawables flattens the scene: the primary group, then each further group
// preceded by its merge connector.
func (s *Scene) Drawables() []layout.Drawable {
	var out []layout.Drawable
	for _, g := range s.Groups {
		if g.Merge != nil {
			out = append(out, layout.Drawable{
				Points:    []geom.Point{g.Merge.A, g.Merge.B},
				Connector: true,
			})
		}
		out = append(out, g.Drawables()...)
	}
	return out
}

// Len returns the number of drawables.
func (s *Scene) Len() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Layout.Len()
		if g.Merge != nil {
			n++
		}
	}
	return n
}

// Intersections counts the crossings of the whole scene.
func (s *Scene) Intersections() int { return layout.Intersections(s.Drawables()) }

// Bounds returns the bounding box of everything drawn.
func (s *Scene) Bounds() geom.Rect {
	b := geom.EmptyRect()
	for _, d := range s.Drawables() {
		b = b.Union(d.Bounds())
	}
	return b
}

// placement is where a follow-up snippet attaches to the primary curve.
type placement struct {
	t      float64
	angle  float64 // degrees
	offset float64 // before scaling by the size factor
}

func placementFor(index, primaryLen int) placement {
	switch {
	case index == 1 && primaryLen < 80:
		return placement{t: 0.25, angle: -60, offset: 50}
	case index == 1:
		return placement{t: 0.25, angle: 20, offset: 30}
	case index == 2:
		return placement{t: 0.5, angle: 60, offset: 60}
	}
	return placement{t: 0.7, angle: 30, offset: 100}
}

// sizeFactor grows the distance of follow-up snippets with the size of the
// primary layout.
func sizeFactor(n int) float64 {
	switch {
	case n < 20:
		return 1
	case n < 50:
		return 1.2
	case n < 80:
		return 1.5
	case n < 100:
		return 2
	}
	return 3
}

// Merge composes results into a scene. The first result is the primary and
// keeps the identity transform. Merge returns an empty scene for no input.
//
// Every further result gets one merge connector, unless it has no root to
// start from or the scene has no glyph to attach to. Callers that want one
// connector per merge drop empty results first.
func Merge(results []*layout.Result) *Scene {
	s := &Scene{}
	if len(results) == 0 {
		return s
	}
	primary := results[0]
	s.Groups = append(s.Groups, Group{Layout: primary})

	factor := sizeFactor(primary.Len())
	c := primary.Coords
	for i, r := range results[1:] {
		p := placementFor(i+1, primary.Len())
		offset := math.Trunc(p.offset * factor)

		var to geom.Point
		if c != nil {
			to = c.Curve().Point(p.t).Sub(c.Curve().Normal(p.t).Mul(offset))
		}
		g := Group{
			Layout: r,
			Stack: []geom.Matrix{
				geom.Rotate(p.angle * math.Pi / 180),
				geom.Translate(to.X, to.Y),
			},
		}
		g.Merge = s.mergeConnector(g)
		s.Groups = append(s.Groups, g)
	}
	return s
}

// mergeConnector runs from g's first root to the nearest anchor of any
// glyph already in the scene.
func (s *Scene) mergeConnector(g Group) *geom.Segment {
	root, ok := g.Layout.FirstRoot()
	if !ok || len(root.Shape.Anchors) == 0 {
		return nil
	}
	from := g.Matrix().Apply(root.Anchors()[0])

	var best geom.Point
	bestDist := math.Inf(1)
	for _, placed := range s.Groups {
		for _, d := range placed.Drawables() {
			if d.Connector {
				continue
			}
			for _, a := range d.Anchors {
				if dist := from.Distance(a); dist < bestDist {
					best, bestDist = a, dist
				}
			}
		}
	}
	if math.IsInf(bestDist, 1) {
		return nil
	}
	seg := geom.Seg(from, best)
	return &seg
}
