package geom

import "math"

// Rect is an axis-aligned rectangle. The zero Rect is not empty; use
// [EmptyRect] as the identity for [Rect.Union].
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// RectOf returns the smallest rectangle containing pts, or [EmptyRect] when
// pts is empty.
func RectOf(pts ...Point) Rect {
	r := EmptyRect()
	for _, p := range pts {
		r = r.Add(p)
	}
	return r
}

func (r Rect) Empty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

func (r Rect) Width() float64  { return max(0, r.Max.X-r.Min.X) }
func (r Rect) Height() float64 { return max(0, r.Max.Y-r.Min.Y) }

// Add grows r to contain p.
func (r Rect) Add(p Point) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, p.X), Y: min(r.Min.Y, p.Y)},
		Max: Point{X: max(r.Max.X, p.X), Y: max(r.Max.Y, p.Y)},
	}
}

func (r Rect) Union(o Rect) Rect {
	if o.Empty() {
		return r
	}
	return r.Add(o.Min).Add(o.Max)
}

// Overlaps reports whether r and o share at least one point. Rectangles that
// touch along an edge overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Expand grows r by d on every side. Negative d shrinks it.
func (r Rect) Expand(d float64) Rect {
	if r.Empty() {
		return r
	}
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}
