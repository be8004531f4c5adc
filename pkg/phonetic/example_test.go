package phonetic_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/inscribe/pkg/phonetic"
)

func ExampleTokenizer_Tokenize() {
	dict, _ := phonetic.LoadDictionary(strings.NewReader("CAT K AE1 T\nSAT S AE1 T\n"))
	tok := phonetic.NewTokenizer(phonetic.WithDictionary(dict))

	for _, snippet := range phonetic.Snippets("Cat sat. Cat sat 3 times!", phonetic.DefaultSnippets) {
		fmt.Println(phonetic.Explain(tok.Tokenize(snippet)))
	}
	// Output:
	// k ah t | s ah t
	// k ah t | s ah t | 3 | t iy m eh s
}
