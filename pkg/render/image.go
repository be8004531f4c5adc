package render

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/inscribe/pkg/compose"
)

// ImageOptions configures the raster pipeline of [RenderImage].
type ImageOptions struct {
	Raster RasterOptions
	Style  StyleOptions

	// Background is a built-in name or an image path. Default: wall.
	Background string

	// Padding is the margin kept on the background. Default: 50.
	Padding int
}

func (o ImageOptions) withDefaults() ImageOptions {
	if o.Background == "" {
		o.Background = BackgroundWall
	}
	if o.Padding <= 0 {
		o.Padding = DefaultBackgroundPadding
	}
	return o
}

// RenderImage rasterizes, stylizes and places the scene on its background.
// Built-in backgrounds are generated to fit the text exactly; loaded ones
// have the text scaled into them.
func RenderImage(ctx context.Context, s *compose.Scene, opts ImageOptions) (image.Image, error) {
	opts = opts.withDefaults()

	styled, err := Stylize(ctx, Raster(s, opts.Raster), opts.Style)
	if err != nil {
		return nil, fmt.Errorf("stylize: %w", err)
	}

	size := styled.Bounds().Size().Add(image.Pt(2*opts.Padding, 2*opts.Padding))
	bg, err := Background(opts.Background, size)
	if err != nil {
		return nil, err
	}
	return Place(styled, bg, opts.Padding), nil
}

// RenderPNG encodes [RenderImage] as PNG.
func RenderPNG(ctx context.Context, s *compose.Scene, opts ImageOptions) ([]byte, error) {
	img, err := RenderImage(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
