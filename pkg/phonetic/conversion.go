package phonetic

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/inscribe/pkg/glyph"
)

//go:embed conversion.toml
var defaultConversion []byte

// Conversion maps ARPAbet phonemes and spelling fragments to script tokens.
// Values hold one or more tokens separated by spaces.
type Conversion struct {
	Phonemes map[string]string `toml:"phonemes"`
	Spelling map[string]string `toml:"spelling"`
}

// LoadConversion decodes a TOML conversion table and checks that every
// value consists of known script tokens.
func LoadConversion(r io.Reader) (*Conversion, error) {
	var c Conversion
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode conversion table: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var defaultConversionOnce = sync.OnceValues(func() (*Conversion, error) {
	return LoadConversion(bytes.NewReader(defaultConversion))
})

// DefaultConversion returns the embedded conversion table.
func DefaultConversion() *Conversion {
	c, err := defaultConversionOnce()
	if err != nil {
		panic(fmt.Sprintf("phonetic: embedded conversion table: %v", err))
	}
	return c
}

func (c *Conversion) validate() error {
	for _, m := range []map[string]string{c.Phonemes, c.Spelling} {
		for key, value := range m {
			for _, tok := range strings.Fields(value) {
				if _, ok := glyph.Lookup(tok); !ok {
					return fmt.Errorf("conversion %q: unknown token %q", key, tok)
				}
			}
		}
	}
	return nil
}

// Phoneme returns the tokens for an ARPAbet symbol. Stress digits are
// ignored.
func (c *Conversion) Phoneme(symbol string) []string {
	symbol = strings.TrimRight(strings.ToUpper(symbol), "012")
	return strings.Fields(c.Phonemes[symbol])
}

// spell approximates a word from its letters, longest fragment first.
func (c *Conversion) spell(word string) []string {
	longest := 0
	for k := range c.Spelling {
		longest = max(longest, len(k))
	}

	var out []string
	for i := 0; i < len(word); {
		n := min(longest, len(word)-i)
		for ; n > 0; n-- {
			if v, ok := c.Spelling[word[i:i+n]]; ok {
				out = append(out, strings.Fields(v)...)
				break
			}
		}
		if n == 0 {
			n = 1
		}
		i += n
	}
	return out
}
