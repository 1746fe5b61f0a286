package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/montrey/fastsearch/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.IndexURL == "" || cfg.NoResultsText == "" || cfg.OpenCmd == "" {
		t.Errorf("defaults incomplete: %+v", cfg)
	}
	if cfg.Fuse != nil {
		t.Error("no [fuse] table expected by default")
	}

	// The fixed built-in profile applies.
	opts := cfg.EngineOptions()
	if opts.Threshold != 0.4 || opts.Distance != 100 || !opts.IgnoreLocation {
		t.Errorf("unexpected default profile: %+v", opts)
	}
	if opts.IncludeMatches {
		t.Error("default profile must not request match metadata")
	}
	if cfg.Limit() != search.DefaultLimit {
		t.Errorf("limit = %d, want %d", cfg.Limit(), search.DefaultLimit)
	}
}

func TestLoadFuseOptions(t *testing.T) {
	path := writeConfig(t, `
index_url = "https://example.com/index.json"
no_results_text = "nothing found"

[fuse]
iscasesensitive = true
threshold = 0.6
distance = 200
ignorelocation = false
minmatchcharlength = 2
limit = 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.IndexURL != "https://example.com/index.json" {
		t.Errorf("index_url = %q", cfg.IndexURL)
	}
	if cfg.NoResultsText != "nothing found" {
		t.Errorf("no_results_text = %q", cfg.NoResultsText)
	}

	opts := cfg.EngineOptions()
	if !opts.IsCaseSensitive || opts.Threshold != 0.6 || opts.Distance != 200 || opts.IgnoreLocation {
		t.Errorf("configured options not applied: %+v", opts)
	}
	if opts.MinMatchCharLength != 2 {
		t.Errorf("minmatchcharlength = %d", opts.MinMatchCharLength)
	}
	// Absent keys fall back to their documented defaults.
	if !opts.ShouldSort || opts.FindAllMatches || opts.Location != 0 {
		t.Errorf("absent keys must default: %+v", opts)
	}
	// With a [fuse] table, match metadata is always requested.
	if !opts.IncludeMatches {
		t.Error("expected IncludeMatches with a [fuse] table")
	}
	if cfg.Limit() != 5 {
		t.Errorf("limit = %d, want 5", cfg.Limit())
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{name: "threshold above one", toml: "[fuse]\nthreshold = 1.5\n"},
		{name: "negative distance", toml: "[fuse]\ndistance = -1\n"},
		{name: "zero minmatchcharlength", toml: "[fuse]\nminmatchcharlength = 0\n"},
		{name: "zero limit", toml: "[fuse]\nlimit = 0\n"},
		{name: "broken toml", toml: "[fuse\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.toml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
