package render

import (
	"encoding/json"

	"github.com/matzehuels/inscribe/pkg/compose"
	"github.com/matzehuels/inscribe/pkg/geom"
)

type jsonOutput struct {
	Bounds        jsonRect    `json:"bounds"`
	Intersections int         `json:"intersections"`
	Groups        []jsonGroup `json:"groups"`
}

type jsonRect struct {
	Min geom.Point `json:"min"`
	Max geom.Point `json:"max"`
}

type jsonGroup struct {
	Matrix     [6]float64      `json:"matrix"`
	Merge      []geom.Point    `json:"merge,omitempty"`
	Instances  []jsonInstance  `json:"instances"`
	Connectors []jsonConnector `json:"connectors,omitempty"`
}

type jsonInstance struct {
	Node     int          `json:"node"`
	Kind     string       `json:"kind"`
	Token    string       `json:"token,omitempty"`
	Shape    string       `json:"shape"`
	Position geom.Point   `json:"position"`
	Rotation float64      `json:"rotation"`
	Scale    float64      `json:"scale"`
	Points   []geom.Point `json:"points,omitempty"`
	Anchors  []geom.Point `json:"anchors,omitempty"`
}

type jsonConnector struct {
	From int        `json:"from"`
	To   int        `json:"to"`
	Edge string     `json:"edge"`
	A    geom.Point `json:"a"`
	B    geom.Point `json:"b"`
}

// RenderJSON exports the scene geometry. Instance positions and points are
// in layout coordinates; apply the group matrix (a, b, c, d, e, f) to get
// scene coordinates.
func RenderJSON(s *compose.Scene) ([]byte, error) {
	b := s.Bounds()
	out := jsonOutput{
		Bounds:        jsonRect{Min: b.Min, Max: b.Max},
		Intersections: s.Intersections(),
		Groups:        make([]jsonGroup, 0, len(s.Groups)),
	}
	if b.Empty() {
		out.Bounds = jsonRect{}
	}

	for _, g := range s.Groups {
		m := g.Matrix()
		jg := jsonGroup{
			Matrix:    [6]float64{m.A, m.B, m.C, m.D, m.E, m.F},
			Instances: make([]jsonInstance, 0, len(g.Layout.Instances)),
		}
		if g.Merge != nil {
			jg.Merge = []geom.Point{g.Merge.A, g.Merge.B}
		}
		for _, in := range g.Layout.Instances {
			jg.Instances = append(jg.Instances, jsonInstance{
				Node:     int(in.Node),
				Kind:     in.Kind.String(),
				Token:    in.Token,
				Shape:    in.Shape.Name,
				Position: in.Position,
				Rotation: in.Rotation,
				Scale:    in.Scale,
				Points:   in.Points(),
				Anchors:  in.Anchors(),
			})
		}
		for _, c := range g.Layout.Connectors {
			jg.Connectors = append(jg.Connectors, jsonConnector{
				From: c.From,
				To:   c.To,
				Edge: c.Edge.String(),
				A:    c.Segment.A,
				B:    c.Segment.B,
			})
		}
		out.Groups = append(out.Groups, jg)
	}
	return json.MarshalIndent(out, "", "  ")
}
