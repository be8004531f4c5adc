package tree

import (
	"fmt"

	"github.com/matzehuels/inscribe/pkg/glyph"
)

// Build turns words of letters into a tree. Letters of class [glyph.Other]
// are skipped. Empty input yields a tree holding a single root.
//
// Within a word, consonants extend the spine and every consonant clears the
// current vowel/number chain. A vowel or number continues the current chain
// when the previous letter had the same class; otherwise it starts a chain
// off the latest spine node, or extends the one already hanging there.
func Build(words [][]glyph.Letter) *Tree {
	b := &builder{}
	first := b.add(nil)

	var pending chain
	last := None
	for _, word := range words {
		word = filter(word)
		if len(word) == 0 {
			continue
		}
		if numbersOnly(word) {
			for i := range word {
				pending.push(b, b.add(&word[i]))
			}
			continue
		}

		root := first
		if last != None {
			root = b.add(nil)
			b.setNextWord(last, root)
		}
		deepest := b.word(root, word)
		if !pending.empty() {
			b.prependNumbers(root, pending)
		}
		pending = b.detachNumbers(deepest)
		last = deepest
	}
	if !pending.empty() {
		b.appendNumbers(first, pending)
	}
	return &Tree{nodes: b.nodes}
}

func filter(word []glyph.Letter) []glyph.Letter {
	out := make([]glyph.Letter, 0, len(word))
	for _, l := range word {
		if l.Class != glyph.Other {
			out = append(out, l)
		}
	}
	return out
}

func numbersOnly(word []glyph.Letter) bool {
	for _, l := range word {
		if l.Class != glyph.Number {
			return false
		}
	}
	return true
}

type builder struct {
	nodes []Node
}

func (b *builder) add(l *glyph.Letter) NodeID {
	if l != nil {
		c := *l
		l = &c
	}
	b.nodes = append(b.nodes, Node{Letter: l, Consonant: None, Vowel: None, Number: None, NextWord: None})
	return NodeID(len(b.nodes) - 1)
}

// word attaches the letters of one word below root and returns the deepest
// spine node.
func (b *builder) word(root NodeID, letters []glyph.Letter) NodeID {
	spine, tail := root, None
	prev := glyph.Other
	for i := range letters {
		l := &letters[i]
		if l.Class != prev {
			tail = None
		}
		prev = l.Class

		id := b.add(l)
		switch l.Class {
		case glyph.Consonant:
			b.setConsonant(spine, id)
			spine = id
		case glyph.Vowel, glyph.Number:
			e := EdgeVowel
			if l.Class == glyph.Number {
				e = EdgeNumber
			}
			if tail == None {
				tail = b.last(spine, e)
			}
			b.set(tail, e, id)
			tail = id
		}
	}
	return spine
}

// last returns the final member of the chain hanging off id through e, or id
// itself when there is no chain.
func (b *builder) last(id NodeID, e Edge) NodeID {
	for next := b.nodes[id].Child(e); next != None; next = b.nodes[id].Child(e) {
		id = next
	}
	return id
}

func (b *builder) set(parent NodeID, e Edge, child NodeID) {
	switch e {
	case EdgeConsonant:
		b.setConsonant(parent, child)
	case EdgeNextWord:
		b.setNextWord(parent, child)
	case EdgeVowel:
		b.nodes[parent].Vowel = child
	case EdgeNumber:
		b.nodes[parent].Number = child
	}
}

func (b *builder) setConsonant(parent, child NodeID) {
	if b.nodes[parent].NextWord != None {
		panic(fmt.Sprintf("tree: consonant link on node %d which already continues to the next word", parent))
	}
	b.nodes[parent].Consonant = child
}

func (b *builder) setNextWord(parent, child NodeID) {
	n := b.nodes[parent]
	if n.Consonant != None {
		panic(fmt.Sprintf("tree: next-word link on node %d which already has a consonant", parent))
	}
	if n.NextWord != None {
		panic(fmt.Sprintf("tree: node %d already continues to the next word", parent))
	}
	b.nodes[parent].NextWord = child
}

// chain is a detached run of number nodes linked through Number.
type chain struct {
	head, tail NodeID
	set        bool
}

func (c chain) empty() bool { return !c.set }

func (c *chain) push(b *builder, id NodeID) {
	if !c.set {
		*c = chain{head: id, tail: id, set: true}
		return
	}
	b.nodes[c.tail].Number = id
	c.tail = id
}

func (b *builder) detachNumbers(id NodeID) chain {
	head := b.nodes[id].Number
	if head == None {
		return chain{}
	}
	b.nodes[id].Number = None
	return chain{head: head, tail: b.last(head, EdgeNumber), set: true}
}

func (b *builder) prependNumbers(root NodeID, c chain) {
	b.nodes[c.tail].Number = b.nodes[root].Number
	b.nodes[root].Number = c.head
}

func (b *builder) appendNumbers(root NodeID, c chain) {
	b.nodes[b.last(root, EdgeNumber)].Number = c.head
}
