package layout

import (
	"math/rand/v2"

	"github.com/matzehuels/inscribe/pkg/curve"
	"github.com/matzehuels/inscribe/pkg/tree"
)

const (
	// CurveOffset shifts every glyph along the curve normal so the spine
	// does not run exactly on the curve.
	CurveOffset = 50

	// branchReach is how far past its base a side-chain glyph may extend the
	// layout.
	branchReach = 300
)

// CurveFunc chooses the coordinate system a distributed layout is mapped
// onto.
type CurveFunc func(instances []Instance) *curve.CoordinateSystem

// Extent returns how much curve a layout needs: the base x of spine glyphs
// and base x plus a margin for side-chain glyphs, whichever is largest.
func Extent(instances []Instance) float64 {
	extent := 0.0
	for _, in := range instances {
		x := in.Base.X
		if !in.Kind.OnSpine() {
			x += branchReach
		}
		extent = max(extent, x)
	}
	return extent
}

// FitCurve is the default [CurveFunc]. Layouts without instances get a
// degenerate curve of length 0.
func FitCurve(instances []Instance) *curve.CoordinateSystem {
	if len(instances) == 0 {
		return curve.Degenerate()
	}
	return curve.Fit(Extent(instances))
}

// Generate distributes t with rng, maps it onto the curve chosen by fit and
// connects the glyphs. A nil fit keeps the straight baseline.
func Generate(t *tree.Tree, rng *rand.Rand, fit CurveFunc) *Result {
	instances := Distribute(t, rng)

	cs := curve.Degenerate()
	if fit != nil {
		cs = fit(instances)
		for i := range instances {
			instances[i].Position = cs.WorldToBezier(instances[i].Base, CurveOffset)
		}
	}

	return &Result{
		Tree:       t,
		Instances:  instances,
		Connectors: Connect(t, instances),
		Coords:     cs,
	}
}

// Replay regenerates a single search attempt.
func Replay(t *tree.Tree, seed uint64, attempt int, fit CurveFunc) *Result {
	return Generate(t, NewRand(seed, attempt), fit)
}
