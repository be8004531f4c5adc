package compose

import (
	"math"
	"testing"

	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/glyph"
	"github.com/matzehuels/inscribe/pkg/layout"
	"github.com/matzehuels/inscribe/pkg/tree"
)

func generate(seed uint64, ws ...[]string) *layout.Result {
	words := make([][]glyph.Letter, len(ws))
	for i, w := range ws {
		words[i] = glyph.MustParse(w...)
	}
	return layout.Generate(tree.Build(words), layout.NewRand(seed, 0), layout.FitCurve)
}

func snippets() []*layout.Result {
	return []*layout.Result{
		generate(1, []string{"k", "ah", "t"}, []string{"s", "ih", "t", "s"}),
		generate(2, []string{"d", "oh", "g"}),
		generate(3, []string{"m", "aah", "p"}, []string{"1", "2"}),
	}
}

func TestMergeCounts(t *testing.T) {
	rs := snippets()
	sum := 0
	for _, r := range rs {
		sum += r.Len()
	}

	s := Merge(rs)
	if got, want := s.Len(), sum+2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if got, want := len(s.Drawables()), sum+2; got != want {
		t.Errorf("len(Drawables()) = %d, want %d", got, want)
	}
	if s.Groups[0].Merge != nil {
		t.Error("primary group has a merge connector")
	}
}

func TestMergeKeepsPrimary(t *testing.T) {
	rs := snippets()
	want := rs[0].Drawables()
	s := Merge(rs)
	got := s.Groups[0].Drawables()
	for i := range want {
		for j := range want[i].Points {
			if got[i].Points[j] != want[i].Points[j] {
				t.Fatalf("primary drawable %d moved", i)
			}
		}
	}
}

func TestMergeDoesNotMutateLayouts(t *testing.T) {
	rs := snippets()
	before := make([]geom.Point, len(rs[1].Instances))
	for i, in := range rs[1].Instances {
		before[i] = in.Position
	}
	Merge(rs)
	for i, in := range rs[1].Instances {
		if in.Position != before[i] {
			t.Errorf("instance %d moved from %v to %v", i, before[i], in.Position)
		}
	}
}

func TestMergePlacement(t *testing.T) {
	rs := snippets()
	s := Merge(rs)

	c := rs[0].Coords.Curve()
	p := placementFor(1, rs[0].Len())
	offset := math.Trunc(p.offset * sizeFactor(rs[0].Len()))
	to := c.Point(p.t).Sub(c.Normal(p.t).Mul(offset))

	local := geom.Pt(10, 0)
	want := local.Rotate(p.angle * math.Pi / 180).Add(to)
	if got := s.Groups[1].Matrix().Apply(local); !got.Near(want, 1e-9) {
		t.Errorf("group 1 maps %v to %v, want %v", local, got, want)
	}
}

func TestMergeConnector(t *testing.T) {
	rs := snippets()
	s := Merge(rs)
	g := s.Groups[1]
	if g.Merge == nil {
		t.Fatal("group 1 has no merge connector")
	}

	root, _ := g.Layout.FirstRoot()
	if want := g.Matrix().Apply(root.Anchors()[0]); !g.Merge.A.Near(want, 1e-9) {
		t.Errorf("merge starts at %v, want %v", g.Merge.A, want)
	}

	found := false
	for _, d := range s.Groups[0].Drawables() {
		for _, a := range d.Anchors {
			found = found || a.Near(g.Merge.B, 1e-9)
		}
	}
	if !found {
		t.Errorf("merge end %v is not an anchor of the primary", g.Merge.B)
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil).Len(); got != 0 {
		t.Errorf("Merge(nil).Len() = %d, want 0", got)
	}
	empty := layout.Generate(tree.Build(nil), layout.NewRand(1, 0), layout.FitCurve)
	s := Merge([]*layout.Result{empty, snippets()[1]})
	if s.Groups[1].Merge != nil {
		t.Error("merge connector into an empty scene")
	}
}

func TestMergeEmptyFollowUp(t *testing.T) {
	rs := snippets()
	empty := layout.Generate(tree.Build(nil), layout.NewRand(1, 0), layout.FitCurve)
	s := Merge([]*layout.Result{rs[0], empty})
	if s.Groups[1].Merge != nil {
		t.Error("empty follow-up got a merge connector")
	}
	if got, want := s.Len(), rs[0].Len(); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestSizeFactor(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 1}, {19, 1}, {20, 1.2}, {49, 1.2}, {50, 1.5}, {79, 1.5}, {80, 2}, {99, 2}, {100, 3}, {500, 3},
	}
	for _, tt := range tests {
		if got := sizeFactor(tt.n); got != tt.want {
			t.Errorf("sizeFactor(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPlacementFor(t *testing.T) {
	tests := []struct {
		index, primary int
		want           placement
	}{
		{1, 10, placement{0.25, -60, 50}},
		{1, 80, placement{0.25, 20, 30}},
		{2, 10, placement{0.5, 60, 60}},
		{3, 10, placement{0.7, 30, 100}},
		{7, 200, placement{0.7, 30, 100}},
	}
	for _, tt := range tests {
		if got := placementFor(tt.index, tt.primary); got != tt.want {
			t.Errorf("placementFor(%d, %d) = %+v, want %+v", tt.index, tt.primary, got, tt.want)
		}
	}
}
