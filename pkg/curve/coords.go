package curve

import "github.com/matzehuels/inscribe/pkg/geom"

// CoordinateSystem maps straight-baseline coordinates onto a curve.
type CoordinateSystem struct {
	curve *Bezier
}

func NewCoordinateSystem(c *Bezier) *CoordinateSystem {
	return &CoordinateSystem{curve: c}
}

// Degenerate returns a coordinate system over a single point at the origin.
// Its curve has length 0.
func Degenerate() *CoordinateSystem {
	return NewCoordinateSystem(New(geom.Point{}))
}

func (cs *CoordinateSystem) Curve() *Bezier { return cs.curve }

// WorldToBezier reads p.X as a distance along the curve and p.Y+offset as a
// distance along the normal at that point.
func (cs *CoordinateSystem) WorldToBezier(p geom.Point, offset float64) geom.Point {
	t := cs.curve.FindT(p.X)
	return cs.curve.Point(t).Add(cs.curve.Normal(t).Mul(p.Y + offset))
}

// Convert is WorldToBezier without a normal offset.
func (cs *CoordinateSystem) Convert(p geom.Point) geom.Point {
	return cs.WorldToBezier(p, 0)
}
