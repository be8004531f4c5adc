package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/glyph"
)

func (c *CLI) lettersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "letters",
		Short: "List the letters of the script and their glyphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(lettersTable(glyph.Letters()))
			return nil
		},
	}
}

func lettersTable(letters []glyph.Letter) string {
	rows := make([][]string, 0, len(letters))
	for _, l := range letters {
		first, second := l.Pair()
		pair := first.String()
		if second != glyph.None {
			pair += " + " + second.String()
		}
		shape := "defined"
		if s, ok := l.Shape(); !ok || s.Bare() {
			shape = "bare"
		}
		rows = append(rows, []string{l.Token, l.Class.String(), pair, shape})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Token", "Class", "Symbols", "Glyph").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleToken
			case col == 3 && rows[row][3] == "bare":
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
