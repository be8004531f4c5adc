package curve

import (
	"math"

	"github.com/matzehuels/inscribe/pkg/geom"
)

const (
	// InitialScale is where the scale search starts.
	InitialScale = 0.5
	// ScaleStep is the increment of the scale search.
	ScaleStep = 0.1
)

// Template is a hand-drawn curve shape used for layouts whose extent is
// below Below.
type Template struct {
	Below  float64
	Points []geom.Point
}

func pts(coords ...float64) []geom.Point {
	out := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, geom.Pt(coords[i], coords[i+1]))
	}
	return out
}

// Templates is the ladder of curve shapes, ordered by extent.
var Templates = []Template{
	{500, pts(161, 505, 30, 335, 198, 125, 337, 235)},
	{950, pts(284, 493, 78, 230, 389, 38, 404, 263)},
	{1300, pts(199, 391, 28, 177, 351, 210, 237, 318)},
	{1700, pts(402, 782, 41, 316, 542, 100, 800, 260, 729, 633, 385, 455)},
	{2300, pts(432, 690, 146, 343, 507, 128, 870, 496, 450, 695, 462, 478)},
	{3000, pts(432, 690, 144, 538, 294, 214, 737, 370, 450, 695, 340, 499)},
	{4000, pts(286, 508, 105, 324, 390, 173, 473, 479, 196, 493, 228, 341, 299, 367)},
	{5000, pts(318, 558, 116, 300, 420, 129, 692, 554, 124, 640, 223, 293, 387, 350, 343, 413)},
	{6000, pts(322, 530, 108, 291, 427, 108, 717, 603, 111, 680, 64, 223, 481, 255, 368, 472, 315, 400)},
	{math.Inf(1), pts(322, 530, 104, 284, 427, 108, 699, 595, 111, 680, 44, 204, 475, 244, 375, 483, 302, 389)},
}

// TemplateFor returns the first template whose bound exceeds extent.
func TemplateFor(extent float64) Template {
	for _, t := range Templates {
		if extent < t.Below {
			return t
		}
	}
	return Templates[len(Templates)-1]
}

// Fit returns a coordinate system whose curve is just long enough for a
// layout of the given extent: the curve is at least extent long, and one
// scale step less would make it shorter. Scales never drop below one step.
// Non-finite extents yield [Degenerate].
func Fit(extent float64) *CoordinateSystem {
	if math.IsNaN(extent) || math.IsInf(extent, 0) {
		return Degenerate()
	}
	c := New(TemplateFor(extent).Points...)
	c.Anchor()

	scale := func(k int) float64 { return InitialScale + float64(k)*ScaleStep }
	k := 0
	c.SetScale(scale(k))
	for c.Length() > extent && scale(k-1) > ScaleStep/2 {
		k--
		c.SetScale(scale(k))
	}
	for c.Length() < extent {
		k++
		c.SetScale(scale(k))
	}
	return NewCoordinateSystem(c)
}
