package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/inscribe/pkg/compose"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/layout"
)

// Raster defaults.
const (
	DefaultScale     = 2.0
	DefaultLineWidth = 9.0
	DefaultDotRadius = 12.0
	DefaultPadding   = 70
)

// RasterOptions configures [Raster]. Zero fields take the defaults above.
type RasterOptions struct {
	// Scale converts scene units to pixels.
	Scale float64

	// LineWidth and DotRadius are in scene units.
	LineWidth float64
	DotRadius float64

	// Padding is the transparent margin around the drawing, in pixels.
	Padding int

	// Ink is the stroke colour. Default: black.
	Ink color.Color
}

func (o RasterOptions) withDefaults() RasterOptions {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.DotRadius <= 0 {
		o.DotRadius = DefaultDotRadius
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.Ink == nil {
		o.Ink = color.Black
	}
	return o
}

// Raster draws the scene onto a transparent canvas just large enough for
// its bounds plus padding. Strokes have round caps and joins; glyphs without
// strokes (roots) are drawn as dots on their first anchor.
func Raster(s *compose.Scene, opts RasterOptions) image.Image {
	opts = opts.withDefaults()
	ds := s.Drawables()

	bounds := geom.EmptyRect()
	for _, d := range ds {
		bounds = bounds.Union(d.Bounds())
	}
	if bounds.Empty() {
		bounds = geom.RectOf(geom.Point{})
	}
	bounds = bounds.Expand(max(opts.DotRadius, opts.LineWidth/2))

	pad := float64(opts.Padding)
	w := int(math.Ceil(bounds.Width()*opts.Scale + 2*pad))
	h := int(math.Ceil(bounds.Height()*opts.Scale + 2*pad))
	toPixel := geom.Compose(
		geom.Translate(-bounds.Min.X, -bounds.Min.Y),
		geom.Scale(opts.Scale),
		geom.Translate(pad, pad),
	)

	dc := gg.NewContext(w, h)
	dc.SetColor(opts.Ink)
	dc.SetLineWidth(opts.LineWidth * opts.Scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for _, d := range ds {
		draw(dc, d, toPixel, opts.DotRadius*opts.Scale)
	}
	return dc.Image()
}

func draw(dc *gg.Context, d layout.Drawable, m geom.Matrix, dot float64) {
	pts := m.ApplyAll(d.Points)
	switch {
	case len(pts) >= 2:
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	case !d.Connector && len(d.Anchors) > 0:
		c := m.Apply(d.Anchors[0])
		dc.DrawCircle(c.X, c.Y, dot)
		dc.Fill()
	}
}
