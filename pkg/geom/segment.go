package geom

import "math"

// Segment is a straight line between two points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

func Seg(a, b Point) Segment { return Segment{A: a, B: b} }

func (s Segment) Length() float64 { return s.A.Distance(s.B) }

// Shrink moves both endpoints towards each other by amount along the
// segment's direction. A zero-length segment is shifted along +x, and
// shrinking by more than half the length flips the segment.
func (s Segment) Shrink(amount float64) Segment {
	angle := math.Atan2(s.B.Y-s.A.Y, s.B.X-s.A.X)
	sin, cos := math.Sincos(angle)
	d := Point{X: cos * amount, Y: sin * amount}
	return Segment{A: s.A.Add(d), B: s.B.Sub(d)}
}

func (s Segment) Bounds() Rect { return RectOf(s.A, s.B) }

// Intersects reports whether s and o share at least one point. Touching
// endpoints and collinear overlap count.
func (s Segment) Intersects(o Segment) bool {
	return relativeCCW(s.A, s.B, o.A)*relativeCCW(s.A, s.B, o.B) <= 0 &&
		relativeCCW(o.A, o.B, s.A)*relativeCCW(o.A, o.B, s.B) <= 0
}

// relativeCCW returns -1, 0 or 1 for the side of line a->b on which p lies.
// Collinear points beyond either end report the side away from the segment,
// so only points on the segment itself return 0.
func relativeCCW(a, b, p Point) int {
	bx, by := b.X-a.X, b.Y-a.Y
	px, py := p.X-a.X, p.Y-a.Y
	ccw := px*by - py*bx
	if ccw == 0 {
		ccw = px*bx + py*by
		if ccw > 0 {
			px -= bx
			py -= by
			ccw = px*bx + py*by
			if ccw < 0 {
				ccw = 0
			}
		}
	}
	switch {
	case ccw < 0:
		return -1
	case ccw > 0:
		return 1
	}
	return 0
}

// Polyline splits consecutive points into segments. The polyline is open:
// the last point is not joined back to the first.
func Polyline(pts []Point) []Segment {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		out = append(out, Segment{A: pts[i-1], B: pts[i]})
	}
	return out
}

// CountIntersections returns the number of pairs (x, y), x from a and y from
// b, that intersect.
func CountIntersections(a, b []Segment) int {
	n := 0
	for _, x := range a {
		for _, y := range b {
			if x.Intersects(y) {
				n++
			}
		}
	}
	return n
}
