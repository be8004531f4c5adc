package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/glyph"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// Baseline spacing, in layout units.
const (
	rootAfterRoot     = 50
	rootAfterLetter   = 75
	letterAfterRoot   = 75
	letterAfterLetter = 100

	chainPitch      = 100
	chainGapSingle  = 10
	chainGapMulti   = 70
	chainRiseSingle = 70
	chainRiseMulti  = 80
)

// Random variation applied by the second pass.
const (
	minScale = 0.7
	maxScale = 0.9
)

type distributor struct {
	tree *tree.Tree
	rng  *rand.Rand
	out  []Instance

	spine, upper, lower float64
}

// Distribute places every node of t on a straight baseline and applies the
// random rotation, scale and jitter of each glyph. The first root stays
// untransformed. A tree without letters yields no instances.
func Distribute(t *tree.Tree, rng *rand.Rand) []Instance {
	if t.Len() <= 1 {
		return nil
	}
	d := &distributor{tree: t, rng: rng}

	prevRoot := false
	for _, id := range t.Spine() {
		root := t.IsRoot(id)
		switch {
		case root && prevRoot:
			d.spine += rootAfterRoot
		case root:
			d.spine += rootAfterLetter
		case prevRoot:
			d.spine += letterAfterRoot
		default:
			d.spine += letterAfterLetter
		}
		prevRoot = root

		kind := KindConsonant
		if root {
			kind = KindRoot
		}
		d.emit(id, kind, geom.Pt(d.spine, 0))
		d.branch(t.Chain(id, tree.EdgeNumber), KindNumber)
		d.branch(t.Chain(id, tree.EdgeVowel), KindVowel)
	}

	d.vary()
	return d.out
}

// branch lays a side chain out on whichever of the upper and lower lanes is
// further behind.
func (d *distributor) branch(chain []tree.NodeID, kind Kind) {
	if len(chain) == 0 {
		return
	}
	multi := len(chain) > 1

	cursor, sign := &d.lower, 1.0
	if d.upper < d.lower {
		cursor, sign = &d.upper, -1.0
	}
	gap, rise := chainGapSingle, chainRiseSingle
	if multi {
		gap, rise = chainGapMulti, chainRiseMulti
	}

	*cursor = d.spine + float64(gap+intBetween(d.rng, -10, 20))
	for _, id := range chain {
		d.emit(id, kind, geom.Pt(*cursor, sign*float64(rise)))
		*cursor += chainPitch
	}
}

func (d *distributor) emit(id tree.NodeID, kind Kind, at geom.Point) {
	n := d.tree.Node(id)
	shape := glyph.Root()
	if n.Letter != nil {
		if s, ok := n.Letter.Shape(); ok {
			shape = s
		}
	}
	d.out = append(d.out, Instance{
		Node:     id,
		Kind:     kind,
		Token:    n.Token(),
		Shape:    shape,
		Base:     at,
		Position: at,
		Scale:    1,
	})
}

// vary rotates, scales and jitters every instance but the first, which is
// always the first root.
func (d *distributor) vary() {
	for i := 1; i < len(d.out); i++ {
		in := &d.out[i]

		in.Scale = floatBetween(d.rng, minScale, maxScale)
		if coin(d.rng) {
			in.Scale = -in.Scale
		}
		in.Rotation = floatBetween(d.rng, 0, 2*math.Pi)

		var dy int
		if in.Kind.OnSpine() {
			dy = intBetween(d.rng, -10, 10)
		} else {
			dy = intBetween(d.rng, -10, 30)
			if in.Base.Y <= 0 {
				dy = -dy
			}
		}
		in.Base.Y += float64(dy)
		in.Position = in.Base
	}
}
