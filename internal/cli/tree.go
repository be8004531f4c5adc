package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/render/nodelink"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// treeFormats are the outputs of the tree command.
var treeFormats = []string{"text", "dot", "svg", "png", "pdf"}

func (c *CLI) treeCommand() *cobra.Command {
	var (
		tokens   string
		input    string
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [text...]",
		Short: "Show the letter tree of each snippet",
		Long: `Show the letter tree of each snippet.

The text format prints an indented dump with one node per line, labelled
by the edge that leads to it. The dot, svg, png and pdf formats draw the
tree of the first snippet with Graphviz.`,
		Example: `  inscribe tree --tokens "k ah t / s ih t"
  inscribe tree -f svg -o cat.svg "The cat sat."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Tokens: tokens, MaxSnippets: c.Config.Layout.MaxSnippets}
			if tokens == "" {
				text, err := readText(args, input, cmd.InOrStdin())
				if err != nil {
					return err
				}
				opts.Text = text
			}
			return c.runTree(cmd.Context(), opts, format, output, detailed)
		},
	}

	cmd.Flags().StringVar(&tokens, "tokens", "", "pre-tokenized input")
	cmd.Flags().StringVarP(&input, "input", "i", "", "read text from file")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, dot, svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with class and symbols")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, opts pipeline.Options, format, output string, detailed bool) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	snippets, trees, err := runner.Trees(ctx, opts)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("built trees", "snippets", len(snippets))

	data, err := renderTrees(ctx, trees, format, detailed)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Tree written")
	printFile(output)
	return nil
}

func renderTrees(ctx context.Context, trees []*tree.Tree, format string, detailed bool) ([]byte, error) {
	if format == "text" {
		var out []byte
		for i, t := range trees {
			if i > 0 {
				out = append(out, '\n')
			}
			out = append(out, t.String()...)
		}
		return out, nil
	}

	dot := nodelink.ToDOT(trees[0], nodelink.Options{Detailed: detailed})
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return nodelink.RenderSVG(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot, pipeline.DefaultPNGScale)
	case "pdf":
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format %q (want one of %v)", format, treeFormats)
}
