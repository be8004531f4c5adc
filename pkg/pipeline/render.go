package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/compose"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/observability"
	"github.com/matzehuels/inscribe/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s *compose.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(s, svgOptions(opts)...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			var imgOpts render.ImageOptions
			if imgOpts, err = opts.ImageOptions(); err == nil {
				data, err = render.RenderPNG(ctx, s, imgOpts)
			}
		case FormatSVG:
			data = svgOnce()
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatJSON:
			data, err = render.RenderJSON(s)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// svgOptions maps the render options onto the vector sink. Dark
// backgrounds draw in the primary colour, everything else in black ink.
func svgOptions(opts Options) []render.SVGOption {
	var out []render.SVGOption
	if opts.LineWidth > 0 {
		out = append(out, render.WithLineWidth(opts.LineWidth))
	}
	if opts.DotRadius > 0 {
		out = append(out, render.WithDotRadius(opts.DotRadius))
	}
	switch opts.Style {
	case render.BackgroundBlack, render.BackgroundSpace:
		p, _ := opts.Palette()
		out = append(out, render.WithStroke(p.Primary.Hex()), render.WithBackgroundFill("black"))
	}
	return out
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *compose.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	geometry, err := render.RenderJSON(s)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(geometry)
	hooks := observability.Cache()

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			break
		}
		hooks.OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	ph := observability.Pipeline()
	start := time.Now()
	ph.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, s, opts)
	ph.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache artifact", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}
