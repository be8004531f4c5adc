package tree_test

import (
	"fmt"

	"github.com/matzehuels/inscribe/pkg/glyph"
	"github.com/matzehuels/inscribe/pkg/tree"
)

func ExampleBuild() {
	t := tree.Build([][]glyph.Letter{
		glyph.MustParse("k", "ah", "t"),
		glyph.MustParse("s", "ih", "t"),
	})

	fmt.Print(t)
	fmt.Println("spine:", len(t.Spine()))
	// Output:
	// (root)
	//   consonant k
	//     consonant t
	//       next (root)
	//         consonant s
	//           consonant ih
	//             consonant t
	//     vowel ah
	// spine: 7
}
