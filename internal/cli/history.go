package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/history"
)

func (c *CLI) historyCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously generated inscriptions",
		Long: `Show previously generated inscriptions.

By default the generated-files.json in the current directory is read; use
--dir for another output directory. A config file may select a MongoDB
store instead.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", ".", "directory holding generated-files.json")

	cmd.AddCommand(c.historyListCommand(&dir))
	cmd.AddCommand(c.historyShowCommand(&dir))
	cmd.AddCommand(c.historyBrowseCommand(&dir))
	return cmd
}

func (c *CLI) historyListCommand(dir *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent inscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.listHistory(cmd.Context(), *dir, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No inscriptions yet")
				return nil
			}
			fmt.Println(historyTable(entries, -1))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries (0 for all)")
	return cmd
}

func (c *CLI) historyShowCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one inscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newHistory(ctx, *dir)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			e, err := store.Get(ctx, args[0])
			if stderrors.Is(err, history.ErrNotFound) {
				return errors.Wrap(errors.ErrCodeNotFound, err, "no inscription with id %s", args[0])
			}
			if err != nil {
				return err
			}
			printEntry(e)
			return nil
		},
	}
}

func (c *CLI) historyBrowseCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse inscriptions interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.listHistory(cmd.Context(), *dir, 0)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No inscriptions yet")
				return nil
			}

			final, err := tea.NewProgram(NewHistoryListModel(entries), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(HistoryListModel); ok && m.Selected != nil {
				printEntry(*m.Selected)
			}
			return nil
		},
	}
}

func (c *CLI) listHistory(ctx context.Context, dir string, limit int) ([]history.Entry, error) {
	store, err := c.newHistory(ctx, dir)
	if err != nil {
		return nil, err
	}
	defer store.Close(ctx)
	return store.List(ctx, limit)
}

func printEntry(e history.Entry) {
	printKeyValue("ID", e.ID)
	printKeyValue("Text", e.Text)
	printKeyValue("Tokens", StyleToken.Render(e.Explanation))
	printKeyValue("Style", e.Style)
	printKeyValue("Seed", fmt.Sprint(e.Seed))
	printKeyValue("Crossings", fmt.Sprint(e.Intersections))
	printKeyValue("Created", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if e.ImageFile != "" {
		printKeyValue("File", e.ImageFile)
	}
	printNewline()
	printNextStep("Re-render", fmt.Sprintf("%s render --seed %d --style %s %q", appName, e.Seed, e.Style, e.Text))
}
