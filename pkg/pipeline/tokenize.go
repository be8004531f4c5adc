package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/observability"
	"github.com/matzehuels/inscribe/pkg/phonetic"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// snippetSeparator separates snippets in pre-tokenized input, matching the
// explanation format.
const snippetSeparator = "|||"

// Tokenize splits the input into snippets and converts them to words.
// Pre-tokenized input (opts.Tokens) bypasses the tokenizer.
func (r *Runner) Tokenize(ctx context.Context, opts Options) ([]string, [][]phonetic.Word, error) {
	if err := opts.ValidateForTokenize(); err != nil {
		return nil, nil, err
	}
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnTokenizeStart(ctx, len(opts.Text)+len(opts.Tokens))

	snippets, words := r.tokenize(opts)

	var err error
	if len(words) == 0 {
		err = errors.New(errors.ErrCodeEmptyText, "no pronounceable words in input")
	}
	n := 0
	for _, ws := range words {
		n += len(ws)
	}
	hooks.OnTokenizeComplete(ctx, len(snippets), n, time.Since(start), err)
	return snippets, words, err
}

// Trees tokenizes the input and builds the letter tree of every snippet,
// without laying them out.
func (r *Runner) Trees(ctx context.Context, opts Options) ([]string, []*tree.Tree, error) {
	snippets, words, err := r.Tokenize(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	trees := make([]*tree.Tree, len(words))
	for i, ws := range words {
		trees[i] = tree.Build(phonetic.Letters(ws))
	}
	return snippets, trees, nil
}

func (r *Runner) tokenize(opts Options) ([]string, [][]phonetic.Word) {
	var snippets []string
	var words [][]phonetic.Word

	if opts.Tokens != "" {
		for _, part := range strings.Split(opts.Tokens, snippetSeparator) {
			ws := phonetic.ParseTokens(part)
			if len(ws) == 0 {
				continue
			}
			snippets = append(snippets, strings.TrimSpace(part))
			words = append(words, ws)
			if len(words) == opts.MaxSnippets {
				break
			}
		}
		return snippets, words
	}

	for _, s := range phonetic.Snippets(opts.Text, opts.MaxSnippets) {
		ws := r.tokenizer().Tokenize(s)
		if len(ws) == 0 {
			continue
		}
		snippets = append(snippets, s)
		words = append(words, ws)
	}
	return snippets, words
}

func (r *Runner) tokenizer() *phonetic.Tokenizer {
	if r.Tokenizer == nil {
		return phonetic.NewTokenizer()
	}
	return r.Tokenizer
}
