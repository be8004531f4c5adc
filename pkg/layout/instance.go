package layout

import (
	"github.com/matzehuels/inscribe/pkg/curve"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/glyph"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// Kind is the role of a glyph in the layout.
type Kind uint8

const (
	KindRoot Kind = iota
	KindConsonant
	KindVowel
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindConsonant:
		return "consonant"
	case KindVowel:
		return "vowel"
	case KindNumber:
		return "number"
	}
	return "unknown"
}

// OnSpine reports whether glyphs of this kind sit on the baseline.
func (k Kind) OnSpine() bool { return k == KindRoot || k == KindConsonant }

// Instance is one placed glyph. Its shape is shared with the catalog and
// never modified; absolute geometry is derived from the transform.
type Instance struct {
	Node  tree.NodeID
	Kind  Kind
	Token string
	Shape glyph.Shape

	// Base is the position on the straight baseline, Position the one after
	// curve mapping.
	Base     geom.Point
	Position geom.Point
	Rotation float64
	Scale    float64
}

// Matrix rotates, then scales, then translates to Position.
func (in Instance) Matrix() geom.Matrix {
	return geom.Compose(
		geom.Rotate(in.Rotation),
		geom.Scale(in.Scale),
		geom.Translate(in.Position.X, in.Position.Y),
	)
}

func (in Instance) Points() []geom.Point  { return in.Matrix().ApplyAll(in.Shape.Points) }
func (in Instance) Anchors() []geom.Point { return in.Matrix().ApplyAll(in.Shape.Anchors) }

func (in Instance) Segments() []geom.Segment { return geom.Polyline(in.Points()) }

// Connector joins two instances, identified by index, with a straight
// segment between their closest anchors.
type Connector struct {
	From, To int
	Edge     tree.Edge
	Segment  geom.Segment
}

// Result is a complete layout of one tree.
type Result struct {
	Tree       *tree.Tree
	Instances  []Instance
	Connectors []Connector
	Coords     *curve.CoordinateSystem
}

// Len returns the number of drawables: instances plus connectors.
func (r *Result) Len() int { return len(r.Instances) + len(r.Connectors) }

// FirstRoot returns the first root instance.
func (r *Result) FirstRoot() (Instance, bool) {
	for _, in := range r.Instances {
		if in.Kind == KindRoot {
			return in, true
		}
	}
	return Instance{}, false
}

// Drawables lists instances first, then connectors.
func (r *Result) Drawables() []Drawable {
	out := make([]Drawable, 0, r.Len())
	for _, in := range r.Instances {
		out = append(out, Drawable{Points: in.Points(), Anchors: in.Anchors()})
	}
	for _, c := range r.Connectors {
		out = append(out, Drawable{Points: []geom.Point{c.Segment.A, c.Segment.B}, Connector: true})
	}
	return out
}

// Intersections counts the crossings of this layout.
func (r *Result) Intersections() int { return Intersections(r.Drawables()) }

// Bounds returns the bounding box of all drawn geometry.
func (r *Result) Bounds() geom.Rect {
	b := geom.EmptyRect()
	for _, d := range r.Drawables() {
		b = b.Union(d.Bounds())
	}
	return b
}
