// Package pipeline provides the core inscription pipeline for inscribe.
//
// This package implements the complete text → layout → render pipeline that
// is used by both the CLI and the HTTP server, so the two entry points
// behave identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Tokenize: Split text into snippets, words and phonetic tokens
//  2. Layout: Build one letter tree per snippet, search for a layout with
//     few crossings and merge the layouts into one scene
//  3. Render: Generate output in various formats (PNG, SVG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    "The cat sat on the mat.",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// # Caching
//
// The layout stage caches only the index of the winning attempt per
// snippet; a hit replays that single attempt, which is bit for bit the
// layout the search chose. The render stage caches artifacts keyed by a
// hash of the scene geometry and the render options.
package pipeline

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/compose"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/layout"
	"github.com/matzehuels/inscribe/pkg/phonetic"
	"github.com/matzehuels/inscribe/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultAttempts is the layout search budget per snippet.
	DefaultAttempts = layout.DefaultAttempts

	// DefaultWorkers is how many attempts of one search run at once.
	DefaultWorkers = 4

	// DefaultMaxSnippets is how many sentences of the input are inscribed.
	DefaultMaxSnippets = phonetic.DefaultSnippets

	// DefaultStyle is the default background.
	DefaultStyle = render.BackgroundWall

	// DefaultPNGScale is used when converting SVG to PNG without the raster
	// pipeline.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the inscription pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Tokenize options
	Text        string `json:"text,omitempty"`
	Tokens      string `json:"tokens,omitempty"` // pre-tokenized: "k ah t / s ah t"
	MaxSnippets int    `json:"max_snippets,omitempty"`

	// Layout options
	Seed     uint64 `json:"seed,omitempty"` // 0 picks a random seed
	Attempts int    `json:"attempts,omitempty"`
	Workers  int    `json:"workers,omitempty"`
	Straight bool   `json:"straight,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"` // background name or image path
	Primary   string   `json:"primary,omitempty"`
	Secondary string   `json:"secondary,omitempty"`
	Ternary   string   `json:"ternary,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	LineWidth float64  `json:"line_width,omitempty"`
	DotRadius float64  `json:"dot_radius,omitempty"`
	Padding   int      `json:"padding,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snippets are the sentences that were inscribed, in order.
	Snippets []string

	// Words holds the tokenized words of each snippet.
	Words [][]phonetic.Word

	// Explanation is the token dump, snippets joined by " ||| ".
	Explanation string

	// Searches holds the search outcome of each snippet.
	Searches []*layout.SearchResult

	// Scene is the merged layout.
	Scene *compose.Scene

	// Seed is the seed actually used.
	Seed uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Intersections counts the crossings of the final scene.
func (r *Result) Intersections() int {
	if r.Scene == nil {
		return 0
	}
	return r.Scene.Intersections()
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Snippets     int
	Words        int
	Glyphs       int
	Attempts     int
	TokenizeTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHits int  // Snippets whose winning attempt came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style names a built-in background or an
// existing image file.
func ValidateStyle(style string) error {
	if render.IsBuiltinBackground(style) {
		return nil
	}
	if st, err := os.Stat(style); err == nil && !st.IsDir() {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidStyle,
		"unknown style %q (must be one of: %s, or an image file)", style, strings.Join(render.Backgrounds(), ", "))
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForTokenize(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForTokenize checks that there is something to inscribe.
func (o *Options) ValidateForTokenize() error {
	if o.Tokens != "" {
		if len(phonetic.ParseTokens(o.Tokens)) == 0 {
			return errors.New(errors.ErrCodeEmptyText, "tokens contain no words")
		}
	} else if err := errors.ValidateText(o.Text); err != nil {
		return err
	}
	if o.MaxSnippets <= 0 {
		o.MaxSnippets = DefaultMaxSnippets
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for the layout search. A zero seed
// is replaced with a random one, so the chosen seed must be read back from
// the options (or the Result) to reproduce a run.
func (o *Options) SetLayoutDefaults() {
	if o.Seed == 0 {
		o.Seed = rand.Uint64() | 1
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	o.setLogger()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := o.Palette(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid palette")
	}
	return ValidateStyle(o.Style)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Palette parses the colour options.
func (o *Options) Palette() (render.Palette, error) {
	return render.ParsePalette(o.Primary, o.Secondary, o.Ternary)
}

// SearchOptions returns the layout search configuration.
func (o *Options) SearchOptions() layout.SearchOptions {
	return layout.SearchOptions{
		Seed:     o.Seed,
		Attempts: o.Attempts,
		Workers:  o.Workers,
		Straight: o.Straight,
		Logger:   o.Logger,
	}
}

// ImageOptions returns the raster pipeline configuration.
func (o *Options) ImageOptions() (render.ImageOptions, error) {
	p, err := o.Palette()
	if err != nil {
		return render.ImageOptions{}, err
	}
	return render.ImageOptions{
		Raster: render.RasterOptions{
			Scale:     o.Scale,
			LineWidth: o.LineWidth,
			DotRadius: o.DotRadius,
		},
		Style:      render.StyleOptions{Palette: &p},
		Background: o.Style,
		Padding:    o.Padding,
	}, nil
}

// LayoutKeyOpts returns cache key options for the layout search.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Seed:     o.Seed,
		Attempts: o.Attempts,
		Straight: o.Straight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Style,
		Palette:    fmt.Sprintf("%s/%s/%s", o.Primary, o.Secondary, o.Ternary),
		Scale:      o.Scale,
		LineWidth:  o.LineWidth,
		DotRadius:  o.DotRadius,
		Padding:    o.Padding,
	}
}
