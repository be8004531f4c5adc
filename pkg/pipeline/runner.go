package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/phonetic"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, tokenizer and logger; it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Tokenizer *phonetic.Tokenizer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The tokenizer defaults to spelling-based conversion; set Tokenizer to
// use a pronunciation dictionary.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		Tokenizer: phonetic.NewTokenizer(),
	}
}

// Execute runs the complete tokenize → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Seed: opts.Seed}

	// Stage 1: Tokenize
	start := time.Now()
	snippets, words, err := r.Tokenize(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Snippets = snippets
	result.Words = words
	result.Explanation = phonetic.ExplainAll(words)
	result.Stats.TokenizeTime = time.Since(start)
	result.Stats.Snippets = len(snippets)
	for _, ws := range words {
		result.Stats.Words += len(ws)
	}

	r.Logger.Info("tokenized text",
		"snippets", result.Stats.Snippets,
		"words", result.Stats.Words,
		"duration", result.Stats.TokenizeTime)
	r.Logger.Debug("tokens", "explanation", result.Explanation)

	// Stage 2: Layout
	start = time.Now()
	scene, searches, hits, err := r.Layout(ctx, words, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Searches = searches
	result.Stats.LayoutTime = time.Since(start)
	result.CacheInfo.LayoutHits = hits
	for _, sr := range searches {
		result.Stats.Glyphs += len(sr.Result.Instances)
		result.Stats.Attempts += sr.Evaluated
	}

	r.Logger.Info("computed layout",
		"glyphs", result.Stats.Glyphs,
		"intersections", result.Intersections(),
		"seed", opts.Seed,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
