package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // teal: titles, tokens, spinner
	colorGreen  = lipgloss.Color("35")  // success, cached
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for addresses and other emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleToken for phonetic tokens.
	StyleToken = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleGood    = lipgloss.NewStyle().Foreground(colorGreen)
	styleBad     = lipgloss.NewStyle().Foreground(colorRed)
	styleWarn    = lipgloss.NewStyle().Foreground(colorYellow)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = StyleHighlight
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// =============================================================================
// Status lines
// =============================================================================

func status(icon lipgloss.Style, glyph, format string, args []any) {
	fmt.Println(icon.Render(glyph) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(styleGood, iconSuccess, format, args) }
func printError(format string, args ...any)   { status(styleBad, iconError, format, args) }
func printInfo(format string, args ...any)    { status(styleLabel, iconInfo, format, args) }

func printWarning(format string, args ...any) {
	fmt.Println(styleWarn.Render(iconWarning + " " + fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Width(12).Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the layout statistics of a run on a single line.
func printStats(glyphs, intersections int, seed uint64, cached bool) {
	fmt.Println(statsLine(glyphs, intersections, seed, cached))
}

func statsLine(glyphs, intersections int, seed uint64, cached bool) string {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d glyphs", glyphs)),
		StyleDim.Render(fmt.Sprintf("%d crossings", intersections)),
		StyleDim.Render(fmt.Sprintf("seed %d", seed)),
	}
	if cached {
		parts = append(parts, styleGood.Render("cached"))
	} else {
		parts = append(parts, styleLabel.Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(separator))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
