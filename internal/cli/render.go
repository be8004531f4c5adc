package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/history"
	"github.com/matzehuels/inscribe/pkg/observability"
	"github.com/matzehuels/inscribe/pkg/phonetic"
	"github.com/matzehuels/inscribe/pkg/pipeline"
)

// defaultOutput is the base name of rendered files.
const defaultOutput = "inscription"

// renderFlags holds the flags of the render command. Pipeline options
// come from the config file and are overridden only by flags the user
// actually set.
type renderFlags struct {
	output    string
	input     string
	tokens    string
	formats   string
	seed      string
	noCache   bool
	noHistory bool
	explain   bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags renderFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render text as an inscription",
		Long: `Render text as an inscription.

The text is split into sentences; up to --snippets of them are laid out
and merged into one image. Text is read from the arguments, from --input,
or from stdin when the only argument is "-".

Every run is recorded in generated-files.json next to the output.`,
		Example: `  inscribe render "The cat sat on the mat."
  inscribe render --tokens "k ah t / s ih t" -f svg,json
  inscribe render --style space --seed 42 -o cat "Cats are great."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.Config.Options()
			if err := applyRenderFlags(cmd, &base, opts, &flags); err != nil {
				return err
			}
			if base.Tokens == "" {
				text, err := readText(args, flags.input, cmd.InOrStdin())
				if err != nil {
					return err
				}
				base.Text = text
			}
			return c.runRender(cmd.Context(), base, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", defaultOutput, "output base path; the format is appended as extension")
	f.StringVarP(&flags.input, "input", "i", "", "read text from file")
	f.StringVar(&flags.tokens, "tokens", "", `pre-tokenized input, e.g. "k ah t / s ih t" (snippets separated by |||)`)
	f.StringVarP(&flags.formats, "format", "f", "", "output format(s): png (default), svg, pdf, json (comma-separated)")
	f.StringVar(&flags.seed, "seed", "", "random seed (default: random, printed after the run)")
	f.IntVar(&opts.Attempts, "attempts", pipeline.DefaultAttempts, "layout attempts per snippet")
	f.IntVar(&opts.Workers, "workers", pipeline.DefaultWorkers, "attempts evaluated in parallel")
	f.IntVar(&opts.MaxSnippets, "snippets", pipeline.DefaultMaxSnippets, "maximum number of sentences to inscribe")
	f.BoolVar(&opts.Straight, "straight", false, "lay glyphs on a straight baseline")
	f.BoolVar(&opts.Refresh, "refresh", false, "ignore cached layouts")
	f.StringVar(&opts.Style, "style", pipeline.DefaultStyle, "background: wall, cliff, space, black, transparent or an image file")
	f.StringVar(&opts.Primary, "primary", "", "primary colour (hex)")
	f.StringVar(&opts.Secondary, "secondary", "", "secondary glow colour (hex)")
	f.StringVar(&opts.Ternary, "ternary", "", "outer glow colour (hex)")
	f.Float64Var(&opts.Scale, "scale", 0, "pixels per scene unit")
	f.Float64Var(&opts.LineWidth, "line-width", 0, "stroke width in scene units")
	f.Float64Var(&opts.DotRadius, "dot-radius", 0, "root dot radius in scene units")
	f.IntVar(&opts.Padding, "padding", 0, "background padding in pixels")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&flags.noHistory, "no-history", false, "do not record the run in generated-files.json")
	f.BoolVar(&flags.explain, "explain", false, "print the phonetic tokens of every snippet")

	cmd.RegisterFlagCompletionFunc("style", completeStyles)
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
	return cmd
}

// applyRenderFlags copies every flag the user set from flagOpts onto opts.
func applyRenderFlags(cmd *cobra.Command, opts *pipeline.Options, flagOpts pipeline.Options, flags *renderFlags) error {
	changed := cmd.Flags().Changed

	if changed("format") {
		opts.Formats = parseFormats(flags.formats)
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if changed("seed") {
		seed, err := errors.ValidateSeedString(flags.seed)
		if err != nil {
			return err
		}
		opts.Seed = seed
	}
	if err := errors.ValidateFilename(filepath.Base(flags.output)); err != nil {
		return err
	}
	opts.Tokens = flags.tokens

	set := map[string]func(){
		"attempts":   func() { opts.Attempts = flagOpts.Attempts },
		"workers":    func() { opts.Workers = flagOpts.Workers },
		"snippets":   func() { opts.MaxSnippets = flagOpts.MaxSnippets },
		"straight":   func() { opts.Straight = flagOpts.Straight },
		"refresh":    func() { opts.Refresh = flagOpts.Refresh },
		"style":      func() { opts.Style = flagOpts.Style },
		"primary":    func() { opts.Primary = flagOpts.Primary },
		"secondary":  func() { opts.Secondary = flagOpts.Secondary },
		"ternary":    func() { opts.Ternary = flagOpts.Ternary },
		"scale":      func() { opts.Scale = flagOpts.Scale },
		"line-width": func() { opts.LineWidth = flagOpts.LineWidth },
		"dot-radius": func() { opts.DotRadius = flagOpts.DotRadius },
		"padding":    func() { opts.Padding = flagOpts.Padding },
	}
	for name, apply := range set {
		if changed(name) {
			apply()
		}
	}
	return nil
}

// readText joins the arguments, or reads the input file, or stdin for "-".
func readText(args []string, input string, stdin io.Reader) (string, error) {
	switch {
	case input != "":
		data, err := os.ReadFile(input)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", input)
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return strings.Join(args, " "), nil
	}
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Searching for a layout...")
	spinner.Start()
	observability.SetLayoutHooks(spinnerHooks{spinner: spinner})
	defer observability.SetLayoutHooks(observability.NoopLayoutHooks{})
	prog := newProgress(c.Logger)

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Inscribed %d snippet(s)", len(res.Snippets)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := strings.TrimSuffix(flags.output, filepath.Ext(flags.output))
	var written []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s", StyleValue.Render(summarize(res.Snippets)))
	for _, path := range written {
		printFile(path)
	}
	printStats(len(res.Scene.Drawables()), res.Intersections(), res.Seed, res.CacheInfo.LayoutHits == len(res.Snippets))
	if flags.explain {
		for i, ws := range res.Words {
			printKeyValue(fmt.Sprintf("snippet %d", i+1), StyleToken.Render(phonetic.Explain(ws)))
		}
	}

	if !flags.noHistory {
		if err := c.record(ctx, filepath.Dir(base), opts, res, filepath.Base(written[0])); err != nil {
			printWarning("History not saved: %v", err)
		}
	}

	printNewline()
	printNextStep("Reproduce", fmt.Sprintf("%s render --seed %d ...", appName, res.Seed))
	return nil
}

func (c *CLI) record(ctx context.Context, dir string, opts pipeline.Options, res *pipeline.Result, imageFile string) error {
	store, err := c.newHistory(ctx, dir)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	text := opts.Text
	if text == "" {
		text = opts.Tokens
	}
	e := history.NewEntry(strings.TrimSpace(text), opts.Style, res.Explanation, res.Seed)
	e.ImageFile = imageFile
	e.Intersections = res.Intersections()
	if _, err := store.Add(ctx, e); err != nil {
		return err
	}
	c.Logger.Debug("recorded history", "id", e.ID)
	return nil
}

// spinnerHooks shows search progress on the spinner.
type spinnerHooks struct {
	observability.NoopLayoutHooks
	spinner *Spinner
}

func (h spinnerHooks) OnAttempt(_ context.Context, attempt, intersections int) {
	h.spinner.SetMessage(fmt.Sprintf("Searching for a layout... attempt %d, %d crossings", attempt+1, intersections))
}

// summarize shortens the snippet list for one status line.
func summarize(snippets []string) string {
	s := strings.Join(snippets, ". ")
	if r := []rune(s); len(r) > 60 {
		s = string(r[:57]) + "..."
	}
	return s
}
