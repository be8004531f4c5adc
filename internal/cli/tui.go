package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/inscribe/pkg/history"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// HistoryListModel - Interactive history browser
// =============================================================================

// HistoryListModel is the bubbletea model for browsing past generations.
// Enter selects the entry under the cursor and quits.
type HistoryListModel struct {
	Entries  []history.Entry
	Cursor   int
	Selected *history.Entry
	Height   int
	Offset   int
}

// NewHistoryListModel creates a new history list model.
func NewHistoryListModel(entries []history.Entry) HistoryListModel {
	return HistoryListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m HistoryListModel) Init() tea.Cmd {
	return nil
}

func (m HistoryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, nil
			}
			e := m.Entries[m.Cursor]
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m HistoryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inscriptions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	b.WriteString(historyTable(m.Entries[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")

	if len(m.Entries) > 0 {
		e := m.Entries[m.Cursor]
		b.WriteString(StyleToken.Render(truncate(e.Explanation, 80)))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	}
	return b.String()
}

// historyTable renders entries as a table. The row at cursor is
// highlighted; pass -1 for none.
func historyTable(entries []history.Entry, cursor int) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows[i] = []string{
			mark,
			truncate(e.Text, 40),
			e.Style,
			fmt.Sprint(e.Seed),
			fmt.Sprint(e.Intersections),
			formatRelativeTime(e.CreatedAt),
			e.ImageFile,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Text", "Style", "Seed", "Crossings", "Created", "File").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle()
			switch {
			case row == -1:
				return headerStyle
			case row == cursor:
				return base.Foreground(colorGreen).Bold(true)
			case col >= 3:
				return base.Foreground(colorDim)
			}
			return base
		}).
		Render()
}

// =============================================================================
// Helpers
// =============================================================================

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
