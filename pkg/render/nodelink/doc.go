// Package nodelink renders branching letter trees as node-link diagrams.
//
// # Overview
//
// A tree built by [tree.Build] is hard to read as an inscription. This
// package draws it as a plain directed graph with Graphviz instead: one box
// per letter, edges labelled with their kind (consonant, vowel, number,
// next), the consonant spine kept in one vertical line.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: When true, node labels include the letter class and its
//     glyph symbols.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
