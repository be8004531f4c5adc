// Package pkg provides the core libraries for Inscribe, which turns text into
// a carved spiral script.
//
// # Overview
//
// Every phonetic token has a glyph made of one or two symbols. The glyphs of
// a sentence are arranged as a tree, bent along a curve, searched for a
// layout with few crossings, and rendered as a stylized image.
//
// # Architecture
//
// The data flow through Inscribe:
//
//	Text
//	  ↓
//	[phonetic] (tokenize words into phonetic tokens)
//	  ↓
//	[glyph] (map tokens to letters and shapes)
//	  ↓
//	[tree] (arrange letters as a branching tree)
//	  ↓
//	[curve] + [layout] (place instances, connect, minimize crossings)
//	  ↓
//	[compose] (merge snippets into one scene)
//	  ↓
//	[render] (SVG/PNG/PDF/JSON)
//
// [pipeline] runs the whole flow with caching and is what the CLI and the
// HTTP server call.
//
// # Quick Start
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := r.Execute(ctx, pipeline.Options{
//	    Text:    "The cat sat on the mat.",
//	    Formats: []string{"svg"},
//	})
//	os.WriteFile("cat.svg", res.Artifacts["svg"], 0o644)
//
// # Supporting Packages
//
//   - [geom]: points, matrices, rectangles and segment intersection
//   - [cache]: file, Redis and null caches for layouts and artifacts
//   - [history]: records of generated inscriptions (file or MongoDB)
//   - [config]: the TOML configuration file
//   - [errors]: coded errors shared by the CLI and the server
//   - [observability]: hooks for layout search and HTTP requests
//   - [httputil]: retrying downloads of dictionary files
//   - [buildinfo]: version information
//
// [phonetic]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/phonetic
// [glyph]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/glyph
// [tree]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/tree
// [curve]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/curve
// [layout]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/layout
// [compose]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/compose
// [render]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/pipeline
// [geom]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/geom
// [cache]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/history
// [config]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/inscribe/pkg/buildinfo
package pkg
