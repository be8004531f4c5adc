package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/phonetic"
	"github.com/matzehuels/inscribe/pkg/tree"
)

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"wall", false},
		{"space", false},
		{"transparent", false},
		{"marble", true},
		{"", true},
		{"/nonexistent/bg.png", true},
	}
	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetLayoutDefaults()
	o.SetRenderDefaults()

	if o.Seed == 0 {
		t.Error("Seed not chosen")
	}
	if o.Attempts != DefaultAttempts || o.Workers != DefaultWorkers {
		t.Errorf("Attempts/Workers = %d/%d, want %d/%d", o.Attempts, o.Workers, DefaultAttempts, DefaultWorkers)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatPNG {
		t.Errorf("Formats = %v, want [png]", o.Formats)
	}
	if o.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", o.Style, DefaultStyle)
	}
	if o.Logger == nil {
		t.Error("Logger not set")
	}

	seed := o.Seed
	o.SetLayoutDefaults()
	if o.Seed != seed {
		t.Error("SetLayoutDefaults changed an explicit seed")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"ok", Options{Text: "the cat"}, ""},
		{"tokens", Options{Tokens: "k ah t"}, ""},
		{"empty", Options{}, errors.ErrCodeEmptyText},
		{"empty tokens", Options{Tokens: " / "}, errors.ErrCodeEmptyText},
		{"format", Options{Text: "x", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"style", Options{Text: "x", Style: "marble"}, errors.ErrCodeInvalidStyle},
		{"palette", Options{Text: "x", Primary: "blue"}, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Errorf("error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	snippets, words, err := r.Tokenize(ctx, Options{Text: "The cat sat. The cat sat! A dog?"})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if got, want := len(snippets), 2; got != want {
		t.Fatalf("snippets = %v, want %d", snippets, want)
	}
	if got, want := len(words[0]), 3; got != want {
		t.Errorf("words in first snippet = %d, want %d", got, want)
	}

	snippets, words, err = r.Tokenize(ctx, Options{Tokens: "k ah t / s ih t ||| d oh g"})
	if err != nil {
		t.Fatalf("Tokenize(tokens): %v", err)
	}
	if len(snippets) != 2 || len(words[0]) != 2 || len(words[1]) != 1 {
		t.Errorf("pre-tokenized = %v / %v", snippets, words)
	}
	if got, want := phonetic.ExplainAll(words), "k ah t | s ih t ||| d oh g"; got != want {
		t.Errorf("explanation = %q, want %q", got, want)
	}

	if _, _, err := r.Tokenize(ctx, Options{Text: "?! ..."}); err == nil {
		t.Error("expected error for input without words")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	ctx := context.Background()
	opts := Options{Text: "The cat sat on the mat. Then it slept.", Seed: 7, Formats: []string{FormatJSON, FormatSVG}}

	a, err := NewRunner(nil, nil, nil).Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := NewRunner(nil, nil, nil).Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !bytes.Equal(a.Artifacts[FormatJSON], b.Artifacts[FormatJSON]) {
		t.Error("same seed produced different geometry")
	}
	if !bytes.Equal(a.Artifacts[FormatSVG], b.Artifacts[FormatSVG]) {
		t.Error("same seed produced different SVG")
	}
	if a.Seed != 7 {
		t.Errorf("Seed = %d, want 7", a.Seed)
	}
	if got, want := len(a.Scene.Groups), 2; got != want {
		t.Errorf("groups = %d, want %d", got, want)
	}
	if a.Explanation == "" {
		t.Error("empty explanation")
	}
}

func TestExecuteCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	opts := Options{Tokens: "th ih s / ih z ||| k ah t", Seed: 99, Formats: []string{FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHits != 0 || first.CacheInfo.RenderHit {
		t.Errorf("first run cache info = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.CacheInfo.LayoutHits != 2 {
		t.Errorf("LayoutHits = %d, want 2", second.CacheInfo.LayoutHits)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("RenderHit = false, want true")
	}
	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached run produced different geometry")
	}
	for i := range first.Searches {
		if first.Searches[i].Attempt != second.Searches[i].Attempt {
			t.Errorf("snippet %d attempt = %d, want %d", i, second.Searches[i].Attempt, first.Searches[i].Attempt)
		}
	}

	refreshed := opts
	refreshed.Refresh = true
	third, err := r.Execute(ctx, refreshed)
	if err != nil {
		t.Fatalf("Execute(refresh): %v", err)
	}
	if third.CacheInfo.LayoutHits != 0 {
		t.Errorf("refresh LayoutHits = %d, want 0", third.CacheInfo.LayoutHits)
	}
}

func TestSearchReplay(t *testing.T) {
	ctx := context.Background()
	c, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(c, nil, nil)

	words := phonetic.ParseTokens("k ah t / s ih t / oh n / th ah / m aah t")
	tr := tree.Build(phonetic.Letters(words))
	opts := Options{Seed: 3, Attempts: 6}

	miss, hit, err := r.Search(ctx, tr, words, opts)
	if err != nil || hit {
		t.Fatalf("first Search = hit %v, err %v", hit, err)
	}
	replayed, hit, err := r.Search(ctx, tr, words, opts)
	if err != nil || !hit {
		t.Fatalf("second Search = hit %v, err %v", hit, err)
	}

	if miss.Intersections != replayed.Intersections {
		t.Errorf("intersections = %d, want %d", replayed.Intersections, miss.Intersections)
	}
	a, b := miss.Result.Instances, replayed.Result.Instances
	if len(a) != len(b) {
		t.Fatalf("instances = %d, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i].Position != b[i].Position || a[i].Rotation != b[i].Rotation {
			t.Errorf("instance %d differs after replay", i)
		}
	}

	other := opts
	other.Seed = 4
	if _, hit, _ := r.Search(ctx, tr, words, other); hit {
		t.Error("different seed hit the cache")
	}
}

func TestRenderUnsupported(t *testing.T) {
	_, err := Render(context.Background(), nil, Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestExecutePNG(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Tokens:  "k ah t",
		Seed:    1,
		Formats: []string{FormatPNG},
		Style:   "black",
		Scale:   0.25,
		Padding: 5,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}
}

func TestTrees(t *testing.T) {
	snippets, trees, err := NewRunner(nil, nil, nil).Trees(context.Background(), Options{Tokens: "k ah t ||| d oh g / s ih t"})
	if err != nil {
		t.Fatalf("Trees: %v", err)
	}
	if len(snippets) != 2 || len(trees) != 2 {
		t.Fatalf("got %d snippets, %d trees, want 2 and 2", len(snippets), len(trees))
	}
	if got, want := trees[1].Words(), 2; got != want {
		t.Errorf("Words() = %d, want %d", got, want)
	}
}

func TestLayoutSkipsEmptySnippets(t *testing.T) {
	words := [][]phonetic.Word{
		phonetic.ParseTokens("k ah t"),
		phonetic.ParseTokens("xq"),
		phonetic.ParseTokens("d oh g"),
	}
	scene, searches, _, err := NewRunner(nil, nil, nil).Layout(context.Background(), words, Options{Seed: 5, Attempts: 2})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if got, want := len(searches), 3; got != want {
		t.Errorf("searches = %d, want %d", got, want)
	}
	if got, want := len(scene.Groups), 2; got != want {
		t.Fatalf("groups = %d, want %d", got, want)
	}
	if scene.Groups[1].Merge == nil {
		t.Error("second group has no merge connector")
	}
	sum := searches[0].Result.Len() + searches[2].Result.Len()
	if got, want := scene.Len(), sum+1; got != want {
		t.Errorf("scene Len() = %d, want %d", got, want)
	}
}
