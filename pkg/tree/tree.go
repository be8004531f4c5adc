package tree

import (
	"fmt"
	"strings"

	"github.com/matzehuels/inscribe/pkg/glyph"
)

// NodeID indexes a node in its tree's arena.
type NodeID int32

// None marks an absent link.
const None NodeID = -1

// Edge names one of the four typed links of a node.
type Edge uint8

const (
	EdgeConsonant Edge = iota
	EdgeVowel
	EdgeNumber
	EdgeNextWord
)

// Edges lists the link kinds in the order children are visited.
var Edges = [...]Edge{EdgeConsonant, EdgeVowel, EdgeNumber, EdgeNextWord}

func (e Edge) String() string {
	switch e {
	case EdgeConsonant:
		return "consonant"
	case EdgeVowel:
		return "vowel"
	case EdgeNumber:
		return "number"
	case EdgeNextWord:
		return "next"
	}
	return fmt.Sprintf("Edge(%d)", e)
}

// Node is a word root (Letter == nil) or a letter of the script.
type Node struct {
	Letter    *glyph.Letter
	Consonant NodeID
	Vowel     NodeID
	Number    NodeID
	NextWord  NodeID
}

func (n Node) IsRoot() bool { return n.Letter == nil }

// Token returns the letter token, or an empty string for roots.
func (n Node) Token() string {
	if n.Letter == nil {
		return ""
	}
	return n.Letter.Token
}

// Child returns the node linked through e, or [None].
func (n Node) Child(e Edge) NodeID {
	switch e {
	case EdgeConsonant:
		return n.Consonant
	case EdgeVowel:
		return n.Vowel
	case EdgeNumber:
		return n.Number
	case EdgeNextWord:
		return n.NextWord
	}
	return None
}

// Link is a typed reference from a parent to one of its children.
type Link struct {
	Edge Edge
	To   NodeID
}

// Tree is an immutable branching tree. The first node is always the root of
// the first word.
type Tree struct {
	nodes []Node
}

func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the first word's root.
func (t *Tree) Root() NodeID { return 0 }

func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

func (t *Tree) IsRoot(id NodeID) bool { return t.nodes[id].Letter == nil }

// Children returns the existing links of id in consonant, vowel, number,
// next-word order.
func (t *Tree) Children(id NodeID) []Link {
	n := t.nodes[id]
	var out []Link
	for _, e := range Edges {
		if c := n.Child(e); c != None {
			out = append(out, Link{Edge: e, To: c})
		}
	}
	return out
}

// Spine walks the consonant/next-word path from the first root.
func (t *Tree) Spine() []NodeID {
	var out []NodeID
	for id := t.Root(); id != None; {
		out = append(out, id)
		n := t.nodes[id]
		if n.Consonant != None && n.NextWord != None {
			panic(fmt.Sprintf("tree: node %d has both consonant and next-word links", id))
		}
		if n.Consonant != None {
			id = n.Consonant
		} else {
			id = n.NextWord
		}
	}
	return out
}

// Chain returns the side chain hanging off id through e, following the same
// edge from member to member.
func (t *Tree) Chain(id NodeID, e Edge) []NodeID {
	var out []NodeID
	for c := t.nodes[id].Child(e); c != None; c = t.nodes[c].Child(e) {
		out = append(out, c)
	}
	return out
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	return t.depth(t.Root())
}

func (t *Tree) depth(id NodeID) int {
	d := 1
	for _, l := range t.Children(id) {
		d = max(d, t.depth(l.To)+1)
	}
	return d
}

// Words returns the number of word roots.
func (t *Tree) Words() int {
	n := 0
	for _, node := range t.nodes {
		if node.Letter == nil {
			n++
		}
	}
	return n
}

// String renders an indented dump with one node per line.
func (t *Tree) String() string {
	var b strings.Builder
	t.dump(&b, t.Root(), "", 0)
	return b.String()
}

func (t *Tree) dump(b *strings.Builder, id NodeID, label string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		b.WriteString(label)
		b.WriteByte(' ')
	}
	if t.IsRoot(id) {
		b.WriteString("(root)")
	} else {
		b.WriteString(t.nodes[id].Token())
	}
	b.WriteByte('\n')
	for _, l := range t.Children(id) {
		t.dump(b, l.To, l.Edge.String(), depth+1)
	}
}
