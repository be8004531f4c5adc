// Package config loads the inscribe configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/inscribe/config.toml (or
// ~/.config/inscribe/config.toml). Every key is optional; a missing file is
// the same as an empty one. Command-line flags override the file, and the
// file overrides the pipeline defaults.
//
//	[layout]
//	attempts = 20
//	seed = 42
//
//	[render]
//	style = "space"
//	formats = ["png", "svg"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "redis://localhost:6379/0"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/inscribe/pkg/pipeline"
)

// FileName is the configuration file name inside the config directory.
const FileName = "config.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// History backends.
const (
	HistoryFile  = "file"
	HistoryMongo = "mongo"
)

// DefaultAddr is the server listen address.
const DefaultAddr = ":8080"

// Config is the parsed configuration file.
type Config struct {
	Layout    Layout    `toml:"layout"`
	Render    Render    `toml:"render"`
	Cache     Cache     `toml:"cache"`
	History   History   `toml:"history"`
	Server    Server    `toml:"server"`
	Tokenizer Tokenizer `toml:"tokenizer"`
}

type Layout struct {
	Attempts    int    `toml:"attempts"`
	Workers     int    `toml:"workers"`
	Seed        uint64 `toml:"seed"`
	MaxSnippets int    `toml:"max_snippets"`
	// Curve is "bezier" (default) or "straight".
	Curve string `toml:"curve"`
}

type Render struct {
	Style     string   `toml:"style"`
	Formats   []string `toml:"formats"`
	LineWidth float64  `toml:"line_width"`
	DotRadius float64  `toml:"dot_radius"`
	Scale     float64  `toml:"scale"`
	Padding   int      `toml:"padding"`
	Primary   string   `toml:"primary"`
	Secondary string   `toml:"secondary"`
	Ternary   string   `toml:"ternary"`
}

type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

type History struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Tokenizer points at optional pronunciation data. Without a dictionary
// words are approximated from their spelling.
type Tokenizer struct {
	Dictionary string `toml:"dictionary"`
	Conversion string `toml:"conversion"`
}

// Duration is a time.Duration written as a string ("24h", "90m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultPath returns the location of the configuration file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "inscribe", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "inscribe", FileName), nil
}

// Load reads the configuration at path. An empty path means DefaultPath.
// A missing file yields the zero Config.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	var c Config
	md, err := toml.DecodeFile(path, &c)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	if c.Layout.Curve != "" && c.Layout.Curve != "bezier" && c.Layout.Curve != "straight" {
		return fmt.Errorf("layout.curve: unknown curve %q (must be bezier or straight)", c.Layout.Curve)
	}
	if !oneOf(c.Cache.Backend, CacheFile, CacheRedis, CacheNone) {
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if !oneOf(c.History.Backend, HistoryFile, HistoryMongo) {
		return fmt.Errorf("history.backend: unknown backend %q", c.History.Backend)
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return fmt.Errorf("render.formats: %w", err)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	return v == "" || slices.Contains(allowed, v)
}

// Options returns pipeline options seeded from the file. Callers apply
// their own overrides on top; unset fields keep the pipeline defaults.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		MaxSnippets: c.Layout.MaxSnippets,
		Seed:        c.Layout.Seed,
		Attempts:    c.Layout.Attempts,
		Workers:     c.Layout.Workers,
		Straight:    c.Layout.Curve == "straight",
		Formats:     slices.Clone(c.Render.Formats),
		Style:       c.Render.Style,
		Primary:     c.Render.Primary,
		Secondary:   c.Render.Secondary,
		Ternary:     c.Render.Ternary,
		Scale:       c.Render.Scale,
		LineWidth:   c.Render.LineWidth,
		DotRadius:   c.Render.DotRadius,
		Padding:     c.Render.Padding,
	}
}

// CacheBackend returns the configured cache backend, file by default.
func (c *Config) CacheBackend() string {
	if c.Cache.Backend == "" {
		return CacheFile
	}
	return c.Cache.Backend
}

// HistoryBackend returns the configured history backend, file by default.
func (c *Config) HistoryBackend() string {
	if c.History.Backend == "" {
		return HistoryFile
	}
	return c.History.Backend
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}
