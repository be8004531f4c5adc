package glyph

// Symbol is one of the primitive strokes letters are composed of.
type Symbol uint8

const (
	None Symbol = iota
	Line
	Bend
	Square
	Pentagon
	Hexagon
	Octagon
)

var symbolNames = [...]string{"NONE", "LINE", "BEND", "SQUARE", "PENTAGON", "HEXAGON", "OCTAGON"}

func (s Symbol) String() string {
	if int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return "UNKNOWN"
}

// Class decides how the tree builder attaches a letter.
type Class uint8

const (
	Other Class = iota
	Vowel
	Consonant
	Number
)

func (c Class) String() string {
	switch c {
	case Vowel:
		return "vowel"
	case Consonant:
		return "consonant"
	case Number:
		return "number"
	default:
		return "other"
	}
}
