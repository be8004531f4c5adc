package render

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
)

// Default stone palette.
const (
	DefaultPrimary   = "#EFECFB"
	DefaultSecondary = "#A29EBB"
	DefaultTernary   = "#87839F"
)

// Palette holds the three layer colours, brightest first.
type Palette struct {
	Primary   colorful.Color
	Secondary colorful.Color
	Ternary   colorful.Color
}

// DefaultPalette returns the light blue stone palette.
func DefaultPalette() Palette {
	p, _ := ParsePalette(DefaultPrimary, DefaultSecondary, DefaultTernary)
	return p
}

// ParsePalette parses three hex colours ("#rrggbb"). Empty strings keep the
// default for that layer.
func ParsePalette(primary, secondary, ternary string) (Palette, error) {
	var p Palette
	for _, f := range []struct {
		dst *colorful.Color
		hex string
		def string
	}{
		{&p.Primary, primary, DefaultPrimary},
		{&p.Secondary, secondary, DefaultSecondary},
		{&p.Ternary, ternary, DefaultTernary},
	} {
		if f.hex == "" {
			f.hex = f.def
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("parse colour %q: %w", f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Glow is the dilate-then-blur treatment of one halo layer, in pixels.
type Glow struct {
	Dilate int
	Blur   int
}

// StyleOptions configures [Stylize].
type StyleOptions struct {
	Palette   *Palette
	Secondary Glow
	Ternary   Glow
}

func (o StyleOptions) withDefaults() StyleOptions {
	if o.Palette == nil {
		p := DefaultPalette()
		o.Palette = &p
	}
	if o.Secondary == (Glow{}) {
		o.Secondary = Glow{Dilate: 5, Blur: 5}
	}
	if o.Ternary == (Glow{}) {
		o.Ternary = Glow{Dilate: 10, Blur: 10}
	}
	return o
}

// Stylize turns an ink-on-transparent raster into carved stone: the strokes
// recoloured in the primary colour over two progressively wider and softer
// halos. The three layers are built concurrently.
func Stylize(ctx context.Context, img image.Image, opts StyleOptions) (*image.NRGBA, error) {
	opts = opts.withDefaults()
	src := imaging.Clone(img)

	var primary, secondary, ternary *image.NRGBA
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primary = tint(src, opts.Palette.Primary)
		return nil
	})
	g.Go(func() (err error) {
		secondary, err = halo(ctx, src, opts.Palette.Secondary, opts.Secondary)
		return err
	})
	g.Go(func() (err error) {
		ternary, err = halo(ctx, src, opts.Palette.Ternary, opts.Ternary)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := imaging.Overlay(ternary, secondary, image.Point{}, 1)
	return imaging.Overlay(out, primary, image.Point{}, 1), nil
}

// tint paints every pixel c, keeping the source alpha.
func tint(src *image.NRGBA, c colorful.Color) *image.NRGBA {
	r, g, b := c.RGB255()
	dst := image.NewNRGBA(src.Rect)
	for i := 0; i < len(src.Pix); i += 4 {
		dst.Pix[i+0] = r
		dst.Pix[i+1] = g
		dst.Pix[i+2] = b
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}

func halo(ctx context.Context, src *image.NRGBA, c colorful.Color, glow Glow) (*image.NRGBA, error) {
	grown, err := dilate(ctx, src, glow.Dilate)
	if err != nil {
		return nil, err
	}
	out := tint(grown, c)
	if glow.Blur > 0 {
		out = imaging.Blur(out, float64(glow.Blur)/2)
	}
	return out, nil
}

// dilate grows the alpha channel by a square window of the given radius.
// The max filter is separable, so it runs as a horizontal then a vertical
// pass.
func dilate(ctx context.Context, src *image.NRGBA, radius int) (*image.NRGBA, error) {
	if radius <= 0 {
		return src, nil
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	alpha := func(img *image.NRGBA, x, y int) uint8 { return img.Pix[y*img.Stride+x*4+3] }

	horiz := image.NewNRGBA(src.Rect)
	for y := range h {
		if y%64 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for x := range w {
			var m uint8
			for dx := max(0, x-radius); dx <= min(w-1, x+radius); dx++ {
				m = max(m, alpha(src, dx, y))
			}
			horiz.Pix[y*horiz.Stride+x*4+3] = m
		}
	}

	out := image.NewNRGBA(src.Rect)
	for y := range h {
		if y%64 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for x := range w {
			var m uint8
			for dy := max(0, y-radius); dy <= min(h-1, y+radius); dy++ {
				m = max(m, alpha(horiz, x, dy))
			}
			out.Pix[y*out.Stride+x*4+3] = m
		}
	}
	return out, nil
}

