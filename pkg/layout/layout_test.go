package layout

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/glyph"
	"github.com/matzehuels/inscribe/pkg/observability"
	"github.com/matzehuels/inscribe/pkg/tree"
)

func build(ws ...[]string) *tree.Tree {
	words := make([][]glyph.Letter, len(ws))
	for i, w := range ws {
		words[i] = glyph.MustParse(w...)
	}
	return tree.Build(words)
}

func TestDistributeDeterministic(t *testing.T) {
	tr := build([]string{"th", "ih", "s"}, []string{"ih", "z"}, []string{"k", "ah", "t", "1"})
	a := Distribute(tr, NewRand(42, 0))
	b := Distribute(tr, NewRand(42, 0))
	if len(a) != len(b) {
		t.Fatalf("len = %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Base != b[i].Base || a[i].Rotation != b[i].Rotation || a[i].Scale != b[i].Scale {
			t.Errorf("instance %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := Distribute(tr, NewRand(43, 0))
	same := true
	for i := range a {
		same = same && a[i].Rotation == c[i].Rotation
	}
	if same {
		t.Error("different seeds produced identical rotations")
	}
}

func TestDistributeSpacing(t *testing.T) {
	ins := Distribute(build([]string{"k", "ah", "t"}), NewRand(1, 0))
	if got, want := len(ins), 4; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}

	kinds := []Kind{KindRoot, KindConsonant, KindVowel, KindConsonant}
	for i, k := range kinds {
		if ins[i].Kind != k {
			t.Errorf("instance %d kind = %v, want %v", i, ins[i].Kind, k)
		}
	}
	for i, want := range map[int]float64{0: 75, 1: 150, 3: 250} {
		if got := ins[i].Base.X; got != want {
			t.Errorf("instance %d x = %v, want %v", i, got, want)
		}
	}

	root := ins[0]
	if root.Base.Y != 0 || root.Rotation != 0 || root.Scale != 1 {
		t.Errorf("first root transformed: %+v", root)
	}

	ah := ins[2]
	if ah.Base.X < 150 || ah.Base.X >= 180 {
		t.Errorf("vowel x = %v, want in [150, 180)", ah.Base.X)
	}
	if ah.Base.Y < 60 || ah.Base.Y >= 100 {
		t.Errorf("vowel y = %v, want in [60, 100)", ah.Base.Y)
	}

	for _, in := range ins[1:] {
		if s := math.Abs(in.Scale); s < minScale || s >= maxScale {
			t.Errorf("%s scale = %v", in.Token, in.Scale)
		}
		if in.Rotation < 0 || in.Rotation >= 2*math.Pi {
			t.Errorf("%s rotation = %v", in.Token, in.Rotation)
		}
		if in.Kind.OnSpine() && (in.Base.Y < -10 || in.Base.Y >= 10) {
			t.Errorf("%s spine jitter = %v", in.Token, in.Base.Y)
		}
	}
}

func TestDistributeWordSpacing(t *testing.T) {
	ins := Distribute(build([]string{"k"}, []string{"t"}), NewRand(7, 0))
	want := []float64{75, 150, 225, 300}
	if len(ins) != len(want) {
		t.Fatalf("len = %d, want %d", len(ins), len(want))
	}
	for i, x := range want {
		if ins[i].Base.X != x {
			t.Errorf("instance %d x = %v, want %v", i, ins[i].Base.X, x)
		}
	}
}

func TestDistributeNumbersBeforeVowels(t *testing.T) {
	ins := Distribute(build([]string{"k", "ah", "5", "t"}), NewRand(3, 0))
	if ins[2].Kind != KindNumber || ins[3].Kind != KindVowel {
		t.Fatalf("kinds = %v, %v, want number then vowel", ins[2].Kind, ins[3].Kind)
	}
	if ins[2].Base.Y <= 0 {
		t.Errorf("first chain y = %v, want lower lane", ins[2].Base.Y)
	}
	if ins[3].Base.Y >= 0 {
		t.Errorf("second chain y = %v, want upper lane", ins[3].Base.Y)
	}
}

func TestGenerateEmpty(t *testing.T) {
	r := Generate(tree.Build(nil), NewRand(1, 0), FitCurve)
	if len(r.Instances) != 0 || len(r.Connectors) != 0 {
		t.Errorf("empty layout has %d instances, %d connectors", len(r.Instances), len(r.Connectors))
	}
	if got := r.Coords.Curve().Length(); got != 0 {
		t.Errorf("curve length = %v, want 0", got)
	}
	if got := r.Intersections(); got != 0 {
		t.Errorf("Intersections() = %d, want 0", got)
	}
}

func TestGenerateConnectors(t *testing.T) {
	r := Generate(build([]string{"k", "ah", "t"}), NewRand(5, 0), FitCurve)
	if got, want := len(r.Connectors), 3; got != want {
		t.Fatalf("connectors = %d, want %d", got, want)
	}
	if got, want := r.Len(), 7; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	contains := func(pts []geom.Point, p geom.Point) bool {
		for _, q := range pts {
			if q.Near(p, 1e-9) {
				return true
			}
		}
		return false
	}
	for _, c := range r.Connectors {
		if !contains(r.Instances[c.From].Anchors(), c.Segment.A) {
			t.Errorf("connector %d->%d does not start on an anchor", c.From, c.To)
		}
		if !contains(r.Instances[c.To].Anchors(), c.Segment.B) {
			t.Errorf("connector %d->%d does not end on an anchor", c.From, c.To)
		}
	}
	if r.Connectors[0].Edge != tree.EdgeConsonant {
		t.Errorf("first connector edge = %v, want consonant", r.Connectors[0].Edge)
	}
}

func TestGenerateStraight(t *testing.T) {
	r := Generate(build([]string{"m", "aah"}), NewRand(5, 0), nil)
	for _, in := range r.Instances {
		if in.Position != in.Base {
			t.Errorf("%s moved off the baseline: %v vs %v", in.Token, in.Position, in.Base)
		}
	}
}

func TestClosestAnchorsAvoidsStrokes(t *testing.T) {
	wall := Instance{
		Shape: glyph.Shape{
			Points:  []geom.Point{geom.Pt(0, -10), geom.Pt(0, 10)},
			Anchors: []geom.Point{geom.Pt(-5, 0), geom.Pt(5, 50)},
		},
		Scale: 1,
	}
	target := Instance{
		Shape: glyph.Shape{Anchors: []geom.Point{geom.Pt(20, 0)}},
		Scale: 1,
	}
	got := closestAnchors(wall, target)
	if want := geom.Seg(geom.Pt(5, 50), geom.Pt(20, 0)); !got.A.Near(want.A, 1e-9) || !got.B.Near(want.B, 1e-9) {
		t.Errorf("closestAnchors = %v, want %v", got, want)
	}

	// Without an alternative the crossing pair is still used.
	wall.Shape.Anchors = wall.Shape.Anchors[:1]
	got = closestAnchors(wall, target)
	if !got.A.Near(geom.Pt(-5, 0), 1e-9) {
		t.Errorf("fallback = %v, want start at (-5, 0)", got)
	}
}

func TestClosestAnchorsPanicsWithoutAnchors(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	closestAnchors(Instance{Scale: 1}, Instance{Shape: glyph.Root(), Scale: 1})
}

func connector(ax, ay, bx, by float64) Drawable {
	return Drawable{Points: []geom.Point{geom.Pt(ax, ay), geom.Pt(bx, by)}, Connector: true}
}

func TestIntersections(t *testing.T) {
	cross := []Drawable{connector(0, 0, 10, 10), connector(0, 10, 10, 0)}
	if got, want := Intersections(cross), 1; got != want {
		t.Errorf("crossing connectors = %d, want %d", got, want)
	}

	// Connectors meeting at an endpoint are shrunk apart.
	joined := []Drawable{connector(0, 0, 10, 0), connector(10, 0, 20, 5)}
	if got := Intersections(joined); got != 0 {
		t.Errorf("joined connectors = %d, want 0", got)
	}

	// A connector ending on a glyph stroke does not count either.
	square := Drawable{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10), geom.Pt(0, 0)}}
	if got := Intersections([]Drawable{square, connector(10, 5, 30, 5)}); got != 0 {
		t.Errorf("connector at glyph = %d, want 0", got)
	}
	if got, want := Intersections([]Drawable{square, connector(5, 5, 30, 5)}), 1; got != want {
		t.Errorf("connector through glyph = %d, want %d", got, want)
	}

	// Two glyphs sharing a corner touch.
	other := Drawable{Points: []geom.Point{geom.Pt(10, 10), geom.Pt(20, 20)}}
	if got := Intersections([]Drawable{square, other}); got != 2 {
		t.Errorf("touching glyphs = %d, want 2", got)
	}
}

func TestIntersectionsMonotone(t *testing.T) {
	r := Generate(build([]string{"th", "ih", "s"}, []string{"ih", "z"}, []string{"aah", "t", "eh", "s", "t"}), NewRand(9, 0), FitCurve)
	ds := r.Drawables()
	base := Intersections(ds)
	for i := range ds {
		dup := append(append([]Drawable(nil), ds...), ds[i])
		if got := Intersections(dup); got < base {
			t.Errorf("duplicating drawable %d lowered the count: %d < %d", i, got, base)
		}
	}
}

func TestSearchShortCircuit(t *testing.T) {
	res, err := Search(context.Background(), tree.Build(nil), SearchOptions{Seed: 1, Attempts: 5})
	if err != nil {
		t.Fatal(err)
	}
	if res.Intersections != 0 || res.Attempt != 0 || res.Evaluated != 1 || res.Exhausted {
		t.Errorf("Search = %+v, want attempt 0 with 0 crossings after 1 evaluation", res)
	}
}

func TestSearchParallelMatchesSequential(t *testing.T) {
	tr := build(
		[]string{"th", "ih", "s"},
		[]string{"ih", "z"},
		[]string{"aah"},
		[]string{"l", "aah", "ng", "g", "eh", "r"},
		[]string{"s", "eh", "n", "t", "eh", "n", "s"},
	)
	seq, err := Search(context.Background(), tr, SearchOptions{Seed: 11, Attempts: 8})
	if err != nil {
		t.Fatal(err)
	}
	par, err := Search(context.Background(), tr, SearchOptions{Seed: 11, Attempts: 8, Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if seq.Attempt != par.Attempt || seq.Intersections != par.Intersections {
		t.Errorf("parallel = (%d, %d), sequential = (%d, %d)",
			par.Attempt, par.Intersections, seq.Attempt, seq.Intersections)
	}

	replayed := Replay(tr, 11, seq.Attempt, FitCurve)
	if got := replayed.Intersections(); got != seq.Intersections {
		t.Errorf("replay intersections = %d, want %d", got, seq.Intersections)
	}
	for i := 0; i < seq.Attempt; i++ {
		if c := Replay(tr, 11, i, FitCurve).Intersections(); c <= seq.Intersections {
			t.Errorf("earlier attempt %d has %d crossings, selected %d", i, c, seq.Intersections)
		}
	}
}

type countingHooks struct {
	observability.NoopLayoutHooks
	attempts, exhausted atomic.Int32
}

func (h *countingHooks) OnAttempt(context.Context, int, int) { h.attempts.Add(1) }

func (h *countingHooks) OnSearchExhausted(context.Context, int, int) { h.exhausted.Add(1) }

func denseTree() *tree.Tree {
	words := [][]string{
		{"th", "ih", "s"}, {"ih", "z"}, {"aah"}, {"l", "aah", "ng", "g", "eh", "r"},
		{"s", "eh", "n", "t", "eh", "n", "s"}, {"w", "ih", "th"}, {"m", "eh", "n", "iy"},
		{"k", "ah", "t", "s"}, {"s", "ih", "t", "ih", "ng"}, {"oh", "n"}, {"th", "uh"},
		{"m", "aah", "t"}, {"b", "ih", "s", "ay", "d"}, {"uh"}, {"f", "ay", "r"},
		{"p", "l", "ay", "s"}, {"f", "ah", "r"}, {"f", "r", "oh", "m"}, {"h", "oh", "m"},
		{"ch", "eh", "s", "t", "n", "ah", "t"}, {"t", "r", "iy", "z"}, {"g", "r", "oh"},
		{"d", "ih", "p"}, {"sh", "ah", "d", "oh", "z"},
	}
	return build(append(words, words...)...)
}

func TestSearchExhausted(t *testing.T) {
	tr := denseTree()
	const seed, attempts = 3, 12

	best, bestCount := -1, 0
	for i := range attempts {
		c := Replay(tr, seed, i, FitCurve).Intersections()
		if best < 0 || c < bestCount {
			best, bestCount = i, c
		}
	}
	if bestCount == 0 {
		t.Fatalf("attempt %d has no crossings; the tree is not dense enough", best)
	}

	for _, workers := range []int{1, 4} {
		hooks := &countingHooks{}
		observability.SetLayoutHooks(hooks)
		t.Cleanup(observability.Reset)

		res, err := Search(context.Background(), tr, SearchOptions{Seed: seed, Attempts: attempts, Workers: workers})
		if err != nil {
			t.Fatal(err)
		}
		if !res.Exhausted {
			t.Errorf("workers=%d: Exhausted = false with %d crossings", workers, res.Intersections)
		}
		if res.Attempt != best || res.Intersections != bestCount {
			t.Errorf("workers=%d: selected (%d, %d), want first minimum (%d, %d)",
				workers, res.Attempt, res.Intersections, best, bestCount)
		}
		if res.Evaluated != attempts {
			t.Errorf("workers=%d: Evaluated = %d, want %d", workers, res.Evaluated, attempts)
		}
		if got := hooks.exhausted.Load(); got != 1 {
			t.Errorf("workers=%d: OnSearchExhausted fired %d times, want 1", workers, got)
		}
		if got := hooks.attempts.Load(); got != attempts {
			t.Errorf("workers=%d: OnAttempt fired %d times, want %d", workers, got, attempts)
		}
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Search(ctx, build([]string{"k"}), SearchOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
