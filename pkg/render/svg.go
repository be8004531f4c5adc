package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/inscribe/pkg/compose"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/layout"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stroke     string
	background string
	lineWidth  float64
	dotRadius  float64
	padding    float64
}

func WithStroke(c string) SVGOption         { return func(r *svgRenderer) { r.stroke = c } }
func WithBackgroundFill(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }
func WithLineWidth(w float64) SVGOption     { return func(r *svgRenderer) { r.lineWidth = w } }
func WithDotRadius(d float64) SVGOption     { return func(r *svgRenderer) { r.dotRadius = d } }
func WithPadding(p float64) SVGOption       { return func(r *svgRenderer) { r.padding = p } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		stroke:    "black",
		lineWidth: DefaultLineWidth,
		dotRadius: DefaultDotRadius,
		padding:   DefaultPadding / DefaultScale,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the scene as round-capped polylines in scene units. Roots
// are drawn as dots. Connectors carry the class "connector" so they can be
// styled separately.
func RenderSVG(s *compose.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	ds := s.Drawables()

	b := s.Bounds()
	if b.Empty() {
		b = geom.RectOf(geom.Point{})
	}
	b = b.Expand(r.padding + max(r.dotRadius, r.lineWidth/2))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		b.Min.X, b.Min.Y, b.Width(), b.Height(), b.Width(), b.Height())
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			b.Min.X, b.Min.Y, b.Width(), b.Height(), r.background)
	}
	fmt.Fprintf(&buf, `  <g fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round">`+"\n",
		r.stroke, r.lineWidth)
	for _, d := range ds {
		r.renderDrawable(&buf, d)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderDrawable(buf *bytes.Buffer, d layout.Drawable) {
	switch {
	case len(d.Points) >= 2:
		class := "glyph"
		if d.Connector {
			class = "connector"
		}
		fmt.Fprintf(buf, `    <polyline class="%s" points="%s"/>`+"\n", class, svgPoints(d.Points))
	case !d.Connector && len(d.Anchors) > 0:
		c := d.Anchors[0]
		fmt.Fprintf(buf, `    <circle class="root" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="none"/>`+"\n",
			c.X, c.Y, r.dotRadius, r.stroke)
	}
}

func svgPoints(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
