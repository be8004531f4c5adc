// Package cli implements the inscribe command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/buildinfo"
	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/config"
	"github.com/matzehuels/inscribe/pkg/history"
	"github.com/matzehuels/inscribe/pkg/phonetic"
	"github.com/matzehuels/inscribe/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "inscribe"

	// dictionaryFile is the name of the downloaded pronunciation dictionary.
	dictionaryFile = "cmudict.dict"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: &config.Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Inscribe turns text into a carved spiral script",
		Long: `Inscribe converts text into phonetic tokens, arranges the matching glyphs
as a branching tree, bends it along a curve with as few crossings as it can
find, and renders the result as a stylized image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/inscribe/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.lettersCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.dictCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	tok, err := c.newTokenizer()
	if err != nil {
		ch.Close()
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.CacheBackend() == config.CacheRedis {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.Tokenizer = tok
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	var (
		ch  cache.Cache
		err error
	)
	switch c.Config.CacheBackend() {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		ch, err = cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
		if err != nil {
			return nil, err
		}
	default:
		dir, derr := c.cacheDir()
		if derr != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", derr)
			return cache.NewNullCache(), nil
		}
		ch, err = cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
	}
	return cache.WithMaxTTL(ch, c.Config.Cache.TTL.Duration), nil
}

// newTokenizer loads the configured dictionary and conversion table. The
// downloaded dictionary is used when none is configured.
func (c *CLI) newTokenizer() (*phonetic.Tokenizer, error) {
	var opts []phonetic.Option

	path := c.Config.Tokenizer.Dictionary
	if path == "" {
		if d, err := newDownloader(); err == nil && d.Fresh(dictionaryFile) {
			path = d.Path(dictionaryFile)
		}
	}
	if path != "" {
		dict, err := phonetic.OpenDictionary(path)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("loaded dictionary", "path", path, "words", len(dict))
		opts = append(opts, phonetic.WithDictionary(dict))
	}

	if p := c.Config.Tokenizer.Conversion; p != "" {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open conversion table: %w", err)
		}
		defer f.Close()
		conv, err := phonetic.LoadConversion(f)
		if err != nil {
			return nil, fmt.Errorf("load conversion table %s: %w", p, err)
		}
		opts = append(opts, phonetic.WithConversion(conv))
	}
	return phonetic.NewTokenizer(opts...), nil
}

// newHistory opens the configured history store. The file store lives in
// dir unless the config names another directory.
func (c *CLI) newHistory(ctx context.Context, dir string) (history.Store, error) {
	h := c.Config.History
	if c.Config.HistoryBackend() == config.HistoryMongo {
		return history.NewMongoStore(ctx, history.MongoConfig{
			URI:        h.MongoURI,
			Database:   h.Database,
			Collection: h.Collection,
		})
	}
	if h.Dir != "" {
		dir = h.Dir
	}
	return history.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/inscribe/).
// The config file may point elsewhere.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
