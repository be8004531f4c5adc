package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/inscribe/pkg/glyph"
	"github.com/matzehuels/inscribe/pkg/history"
	"github.com/matzehuels/inscribe/pkg/phonetic"
	"github.com/matzehuels/inscribe/pkg/tree"
)

// run executes the CLI with an isolated cache and config directory.
func run(t *testing.T, config string, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "png"},
		{"svg", "svg"},
		{"svg, pdf,png", "svg|pdf|png"},
		{"json,", "json"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.input), "|"); got != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReadText(t *testing.T) {
	got, _ := readText([]string{"The", "cat"}, "", nil)
	if got != "The cat" {
		t.Errorf("args = %q", got)
	}

	got, _ = readText([]string{"-"}, "", strings.NewReader("from stdin"))
	if got != "from stdin" {
		t.Errorf("stdin = %q", got)
	}

	path := filepath.Join(t.TempDir(), "in.txt")
	os.WriteFile(path, []byte("from file"), 0o644)
	got, _ = readText(nil, path, nil)
	if got != "from file" {
		t.Errorf("file = %q", got)
	}

	if _, err := readText(nil, filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cat")

	err := run(t, "", "render", "--tokens", "k ah t / s ih t", "-f", "svg,json", "--seed", "9", "--attempts", "3", "-o", out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(out + ext); err != nil {
			t.Errorf("missing output %s: %v", ext, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, history.FileName))
	if err != nil {
		t.Fatalf("history not written: %v", err)
	}
	var entries []history.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Seed != 9 || e.ImageFile != "cat.svg" || e.Explanation != "k ah t | s ih t" {
		t.Errorf("history entry = %+v", e)
	}
}

func TestRenderCommandConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "x")
	config := "[render]\nformats = [\"json\"]\n[layout]\nseed = 4\nattempts = 2\n"

	if err := run(t, config, "render", "--tokens", "d oh g", "--no-history", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Error("config formats not applied")
	}
	if _, err := os.Stat(filepath.Join(dir, history.FileName)); err == nil {
		t.Error("--no-history still wrote history")
	}

	if err := run(t, config, "render", "--tokens", "d oh g", "--no-history", "-f", "svg", "-o", out+"2"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out + "2.svg"); err != nil {
		t.Error("flag did not override config formats")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := [][]string{
		{"render", "--tokens", "k ah t", "-f", "gif"},
		{"render", "--tokens", "k ah t", "--seed", "-1"},
		{"render", "--tokens", "k ah t", "-f", "json", "--style", "marble"},
		{"render", "-f", "json"},
		{"render", "-f", "json", "-o", filepath.Join(t.TempDir(), ".hidden"), "hello"},
	}
	for _, args := range tests {
		if err := run(t, "", args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}

	if err := run(t, "[cache]\nbackend = \"memcached\"\n", "letters"); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestRenderTrees(t *testing.T) {
	trees := []*tree.Tree{
		tree.Build(phonetic.Letters(phonetic.ParseTokens("k ah t"))),
		tree.Build(phonetic.Letters(phonetic.ParseTokens("d oh g"))),
	}
	ctx := context.Background()

	text, err := renderTrees(ctx, trees, "text", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(text), "(root)"); got != 2 {
		t.Errorf("text dump has %d roots, want 2", got)
	}

	dot, err := renderTrees(ctx, trees, "dot", false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph G {") || strings.Contains(string(dot), `"d"`) {
		t.Errorf("dot output should hold only the first tree:\n%s", dot)
	}

	if _, err := renderTrees(ctx, trees, "gif", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLettersTable(t *testing.T) {
	out := lettersTable(glyph.Letters())
	for _, want := range []string{"Token", "consonant", "vowel", "number", "PENTAGON"} {
		if !strings.Contains(out, want) {
			t.Errorf("letters table missing %q", want)
		}
	}
}

func TestHistoryListModel(t *testing.T) {
	entries := []history.Entry{
		history.NewEntry("one", "wall", "w ah n", 1),
		history.NewEntry("two", "space", "t oo", 2),
		history.NewEntry("three", "cliff", "th r eee", 3),
	}
	var m tea.Model = NewHistoryListModel(entries)

	key := func(k tea.KeyType) tea.Msg { return tea.KeyMsg{Type: k} }
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyUp))
	if got := m.(HistoryListModel).Cursor; got != 1 {
		t.Errorf("Cursor = %d, want 1", got)
	}
	if !strings.Contains(m.View(), "two") {
		t.Error("view does not show entries")
	}

	m, cmd := m.Update(key(tea.KeyEnter))
	sel := m.(HistoryListModel).Selected
	if sel == nil || sel.Text != "two" {
		t.Errorf("Selected = %+v, want entry two", sel)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("a  b\nc", 10); got != "a b c" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q", got)
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		cached bool
		want   []string
	}{
		{false, []string{"12 glyphs", "3 crossings", "seed 7", "fresh"}},
		{true, []string{"12 glyphs", "3 crossings", "seed 7", "cached"}},
	}
	for _, tt := range tests {
		got := statsLine(12, 3, 7, tt.cached)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("statsLine(cached=%v) = %q, missing %q", tt.cached, got, w)
			}
		}
	}
}
