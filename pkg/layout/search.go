package layout

import (
	"context"
	"io"
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/inscribe/pkg/observability"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// DefaultAttempts is the search budget used when none is given.
const DefaultAttempts = 10

// SearchOptions configures [Search].
type SearchOptions struct {
	// Seed determines every attempt. Attempt i uses NewRand(Seed, i).
	Seed uint64

	// Attempts is the total number of layouts tried, including the first.
	// Default: DefaultAttempts.
	Attempts int

	// Workers bounds how many attempts run at once. Default: 1.
	Workers int

	// Curve fits the coordinate system. Default: FitCurve.
	Curve CurveFunc

	// Straight skips curve mapping altogether.
	Straight bool

	Logger *log.Logger
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Curve == nil {
		o.Curve = FitCurve
	}
	if o.Straight {
		o.Curve = nil
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Fitter returns the curve function Search uses for these options, so that
// callers can replay an attempt exactly.
func (o SearchOptions) Fitter() CurveFunc { return o.withDefaults().Curve }

// SearchResult is the outcome of [Search].
type SearchResult struct {
	Result        *Result
	Intersections int

	// Attempt is the index of the selected attempt.
	Attempt int

	// Evaluated counts the attempts that actually ran.
	Evaluated int

	// Exhausted is set when no attempt was free of crossings.
	Exhausted bool
}

// Search generates up to opts.Attempts layouts of t and keeps the first one
// without crossings, or else the one with the fewest (the earliest on
// ties). Running out of attempts is not an error; it is logged and reported
// through the layout hooks.
//
// With several workers, attempts after a crossing-free one are skipped, but
// every earlier attempt still runs, so the selection matches a sequential
// search exactly.
func Search(ctx context.Context, t *tree.Tree, opts SearchOptions) (*SearchResult, error) {
	opts = opts.withDefaults()
	hooks := observability.Layout()

	n := opts.Attempts
	results := make([]*Result, n)
	counts := make([]int, n)

	var firstZero atomic.Int64
	firstZero.Store(math.MaxInt64)
	var evaluated atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range n {
		if int64(i) > firstZero.Load() {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if int64(i) > firstZero.Load() {
				return nil
			}

			r := Replay(t, opts.Seed, i, opts.Curve)
			c := r.Intersections()
			results[i], counts[i] = r, c
			evaluated.Add(1)

			hooks.OnAttempt(ctx, i, c)
			opts.Logger.Debug("layout attempt", "attempt", i, "intersections", c)

			if c == 0 {
				for {
					cur := firstZero.Load()
					if int64(i) >= cur || firstZero.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := -1
	for i, r := range results {
		if r == nil {
			continue
		}
		if best < 0 || counts[i] < counts[best] {
			best = i
		}
		if counts[i] == 0 {
			break
		}
	}

	res := &SearchResult{
		Result:        results[best],
		Intersections: counts[best],
		Attempt:       best,
		Evaluated:     int(evaluated.Load()),
		Exhausted:     counts[best] > 0,
	}
	if res.Exhausted {
		opts.Logger.Warn("layout search exhausted", "attempts", n, "intersections", res.Intersections, "attempt", best)
		hooks.OnSearchExhausted(ctx, n, res.Intersections)
	}
	return res, nil
}
