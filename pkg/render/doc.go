// Package render turns composed scenes into images.
//
// # Overview
//
// This package contains the output stage of the inscription pipeline:
//
//   - Rasterization of a scene as black strokes on a transparent canvas
//     ([Raster], using gg)
//   - The three-layer stone stylizer ([Stylize])
//   - Background textures and fitting the stylized text onto them
//     ([Background], [Place])
//   - A vector SVG sink ([RenderSVG]) and generic SVG conversion to PDF and
//     PNG ([ToPDF], [ToPNG])
//   - JSON export of the scene geometry ([RenderJSON])
//   - Branching-tree diagrams via Graphviz (in [nodelink] subpackage)
//
// # Raster Pipeline
//
// [RenderPNG] chains the raster steps:
//
//	img := render.Raster(scene, render.RasterOptions{})
//	styled, _ := render.Stylize(ctx, img, render.StyleOptions{})
//	bg, _ := render.Background("wall", image.Pt(2000, 2000))
//	out := render.Place(styled, bg, 50)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := render.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
package render
