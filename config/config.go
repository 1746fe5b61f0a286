package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/montrey/fastsearch/search"
)

// Config is the widget's external configuration. Every field is optional;
// Load returns the built-in defaults when the file is missing entirely.
type Config struct {
	// IndexURL is where the site's precomputed index document lives.
	IndexURL string `toml:"index_url"`
	// NoResultsText is the per-list placeholder message. The site owns the
	// locale, so it is configuration rather than a constant.
	NoResultsText string `toml:"no_results_text"`
	// OpenCmd is the command template used to open a result's permalink.
	// "{url}" is replaced with the link.
	OpenCmd string `toml:"open_cmd"`

	Fuse *FuseConfig `toml:"fuse"`
}

// FuseConfig mirrors the site's engine option object; the keys are the
// lower-cased names the site configuration uses. Pointer fields distinguish
// "absent" from zero; an absent key falls back to its documented default.
type FuseConfig struct {
	IsCaseSensitive    *bool    `toml:"iscasesensitive"`
	IncludeScore       *bool    `toml:"includescore"`
	MinMatchCharLength *int     `toml:"minmatchcharlength"`
	ShouldSort         *bool    `toml:"shouldsort"`
	FindAllMatches     *bool    `toml:"findallmatches"`
	Location           *int     `toml:"location"`
	Threshold          *float64 `toml:"threshold"`
	Distance           *int     `toml:"distance"`
	IgnoreLocation     *bool    `toml:"ignorelocation"`
	Limit              *int     `toml:"limit"`
}

func defaultConfig() *Config {
	return &Config{
		IndexURL:      "http://localhost:1313/index.json",
		NoResultsText: "no results",
		OpenCmd:       `xdg-open "{url}"`,
	}
}

// DefaultPath returns the config file location, respecting XDG_CONFIG_HOME.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "fastsearch", "config.toml")
}

// Load reads the config from path, returning defaults if the file does not
// exist. Options are validated here, not at search time.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	f := c.Fuse
	if f == nil {
		return nil
	}
	if f.Threshold != nil && (*f.Threshold < 0 || *f.Threshold > 1) {
		return fmt.Errorf("fuse.threshold must be in [0,1], got %v", *f.Threshold)
	}
	if f.Distance != nil && *f.Distance < 0 {
		return fmt.Errorf("fuse.distance must be >= 0, got %d", *f.Distance)
	}
	if f.Location != nil && *f.Location < 0 {
		return fmt.Errorf("fuse.location must be >= 0, got %d", *f.Location)
	}
	if f.MinMatchCharLength != nil && *f.MinMatchCharLength < 1 {
		return fmt.Errorf("fuse.minmatchcharlength must be >= 1, got %d", *f.MinMatchCharLength)
	}
	if f.Limit != nil && *f.Limit < 1 {
		return fmt.Errorf("fuse.limit must be >= 1, got %d", *f.Limit)
	}
	return nil
}

// EngineOptions resolves the configured profile. With no [fuse] table the
// fixed built-in profile applies; with one, each absent key takes its
// documented default and match metadata is always requested.
func (c *Config) EngineOptions() search.Options {
	opts := search.DefaultOptions()
	f := c.Fuse
	if f == nil {
		return opts
	}

	opts.IncludeMatches = true
	opts.IsCaseSensitive = boolOr(f.IsCaseSensitive, false)
	opts.IncludeScore = boolOr(f.IncludeScore, false)
	opts.MinMatchCharLength = intOr(f.MinMatchCharLength, 1)
	opts.ShouldSort = boolOr(f.ShouldSort, true)
	opts.FindAllMatches = boolOr(f.FindAllMatches, false)
	opts.Location = intOr(f.Location, 0)
	opts.Distance = intOr(f.Distance, 100)
	opts.IgnoreLocation = boolOr(f.IgnoreLocation, true)
	if f.Threshold != nil {
		opts.Threshold = *f.Threshold
	}
	return opts
}

// Limit resolves the per-engine result cap.
func (c *Config) Limit() int {
	if c.Fuse != nil && c.Fuse.Limit != nil {
		return *c.Fuse.Limit
	}
	return search.DefaultLimit
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
