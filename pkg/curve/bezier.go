package curve

import (
	"slices"

	"github.com/matzehuels/inscribe/pkg/geom"
)

// Samples is the number of polyline segments used to measure arc length.
const Samples = 1000

// tangentDelta is the parameter step of the central difference in Tangent.
const tangentDelta = 0.01

// Bezier is a Bezier curve of arbitrary degree. It is not safe for
// concurrent use because evaluation fills internal caches.
type Bezier struct {
	points []geom.Point
	offset geom.Point
	scale  float64

	abs []geom.Point
	lut []float64
}

// New returns a curve through the given control points with scale 1.
func New(points ...geom.Point) *Bezier {
	return &Bezier{points: slices.Clone(points), scale: 1}
}

func (b *Bezier) invalidate() {
	b.abs = nil
	b.lut = nil
}

// Clone returns an independent copy with the same points and transform.
func (b *Bezier) Clone() *Bezier {
	return &Bezier{points: slices.Clone(b.points), offset: b.offset, scale: b.scale}
}

func (b *Bezier) AddPoint(p geom.Point) {
	b.points = append(b.points, p)
	b.invalidate()
}

func (b *Bezier) Scale() float64 { return b.scale }

func (b *Bezier) SetScale(s float64) {
	b.scale = s
	b.invalidate()
}

func (b *Bezier) Offset() geom.Point { return b.offset }

func (b *Bezier) SetOffset(p geom.Point) {
	b.offset = p
	b.invalidate()
}

// Anchor translates the local control points so the first one sits at the
// origin.
func (b *Bezier) Anchor() {
	if len(b.points) == 0 {
		return
	}
	first := b.points[0]
	for i := range b.points {
		b.points[i] = b.points[i].Sub(first)
	}
	b.invalidate()
}

// ControlPoints returns the absolute control points.
func (b *Bezier) ControlPoints() []geom.Point {
	return slices.Clone(b.absolute())
}

func (b *Bezier) absolute() []geom.Point {
	if b.abs == nil {
		b.abs = make([]geom.Point, len(b.points))
		for i, p := range b.points {
			b.abs[i] = p.Mul(b.scale).Add(b.offset)
		}
	}
	return b.abs
}

// Point evaluates the curve at t in [0, 1]. A curve without control points
// evaluates to the origin.
func (b *Bezier) Point(t float64) geom.Point {
	abs := b.absolute()
	switch len(abs) {
	case 0:
		return geom.Point{}
	case 1:
		return abs[0]
	}
	work := slices.Clone(abs)
	for n := len(work) - 1; n > 0; n-- {
		for i := range n {
			work[i] = work[i].Lerp(work[i+1], t)
		}
	}
	return work[0]
}

func (b *Bezier) table() []float64 {
	if b.lut == nil {
		lut := make([]float64, Samples+1)
		prev := b.Point(0)
		for i := 1; i <= Samples; i++ {
			p := b.Point(float64(i) / Samples)
			lut[i] = lut[i-1] + prev.Distance(p)
			prev = p
		}
		b.lut = lut
	}
	return b.lut
}

// Length returns the arc length of the whole curve.
func (b *Bezier) Length() float64 { return b.table()[Samples] }

// LengthAt returns the arc length from t=0 to t.
func (b *Bezier) LengthAt(t float64) float64 {
	lut := b.table()
	f := min(max(t, 0), 1) * Samples
	i := int(f)
	if i >= Samples {
		return lut[Samples]
	}
	return lut[i] + (lut[i+1]-lut[i])*(f-float64(i))
}

// FindT returns the first sampled parameter whose arc length reaches
// distance. Distances at or below zero map to 0 and distances beyond the
// curve's length map to 1.
func (b *Bezier) FindT(distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	i, _ := slices.BinarySearch(b.table(), distance)
	if i > Samples {
		return 1
	}
	return float64(i) / Samples
}

// Tangent returns the unit tangent at t. Where the curve does not move, the
// tangent defaults to +x.
func (b *Bezier) Tangent(t float64) geom.Point {
	before := b.Point(max(0, t-tangentDelta))
	after := b.Point(min(1, t+tangentDelta))
	d := after.Sub(before)
	if d.Length() == 0 {
		return geom.Pt(1, 0)
	}
	return d.Normalize()
}

// Normal returns the tangent at t turned by 90 degrees.
func (b *Bezier) Normal(t float64) geom.Point { return b.Tangent(t).Perp() }
