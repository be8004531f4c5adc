package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/compose"
	"github.com/matzehuels/inscribe/pkg/layout"
	"github.com/matzehuels/inscribe/pkg/observability"
	"github.com/matzehuels/inscribe/pkg/phonetic"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// outcome is what the layout cache stores for one snippet. The layout
// itself is replayed from the attempt index.
type outcome struct {
	Attempt   int  `json:"attempt"`
	Evaluated int  `json:"evaluated"`
	Exhausted bool `json:"exhausted,omitempty"`
}

// Layout builds and searches one tree per snippet and merges the winners
// into a scene. Snippets without glyphs are left out of the scene. It also
// returns the number of snippets served from cache.
func (r *Runner) Layout(ctx context.Context, words [][]phonetic.Word, opts Options) (*compose.Scene, []*layout.SearchResult, int, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, len(words))

	var (
		searches []*layout.SearchResult
		results  []*layout.Result
		hits     int
	)
	for i, ws := range words {
		t := tree.Build(phonetic.Letters(ws))
		sr, hit, err := r.Search(ctx, t, ws, opts)
		if err != nil {
			hooks.OnLayoutComplete(ctx, len(words), time.Since(start), err)
			return nil, nil, 0, err
		}
		if hit {
			hits++
		}
		opts.Logger.Debug("snippet layout",
			"snippet", i,
			"glyphs", len(sr.Result.Instances),
			"attempt", sr.Attempt,
			"intersections", sr.Intersections,
			"cached", hit)
		searches = append(searches, sr)
		if len(sr.Result.Instances) == 0 {
			continue
		}
		results = append(results, sr.Result)
	}

	scene := compose.Merge(results)
	hooks.OnLayoutComplete(ctx, len(words), time.Since(start), nil)
	return scene, searches, hits, nil
}

// Search runs the layout search for one tree, or replays the cached
// winning attempt. The words only serve as the cache key.
func (r *Runner) Search(ctx context.Context, t *tree.Tree, words []phonetic.Word, opts Options) (*layout.SearchResult, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	so := opts.SearchOptions()
	key := r.Keyer.LayoutKey(cache.HashJSON(words), opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		var o outcome
		if err := cache.GetJSON(ctx, r.Cache, key, &o); err == nil && o.Attempt >= 0 && o.Attempt < opts.Attempts {
			hooks.OnCacheHit(ctx, "layout")
			res := layout.Replay(t, opts.Seed, o.Attempt, so.Fitter())
			return &layout.SearchResult{
				Result:        res,
				Intersections: res.Intersections(),
				Attempt:       o.Attempt,
				Evaluated:     o.Evaluated,
				Exhausted:     o.Exhausted,
			}, true, nil
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	sr, err := layout.Search(ctx, t, so)
	if err != nil {
		return nil, false, err
	}

	o := outcome{Attempt: sr.Attempt, Evaluated: sr.Evaluated, Exhausted: sr.Exhausted}
	if size, err := cache.SetJSON(ctx, r.Cache, key, o, cache.TTLLayout); err == nil {
		hooks.OnCacheSet(ctx, "layout", size)
	} else {
		opts.Logger.Warn("cache layout", "error", err)
	}
	return sr, false, nil
}
