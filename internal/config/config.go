// Package config holds the settings of the kwic command line tool.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/viniciusth/kwic"
)

type Config struct {
	Separator       uint8 `toml:"separator"`
	CaseInsensitive bool  `toml:"case_insensitive"`
	Normalize       bool  `toml:"normalize"`
	Linear          bool  `toml:"linear"`
	SkipLCP         bool  `toml:"skip_lcp"`
	SkipDocListing  bool  `toml:"skip_doc_listing"`
	Verbose         bool  `toml:"verbose"`
}

func Default() Config {
	return Config{Separator: kwic.DefaultSeparator}
}

// Load returns the defaults overlaid with the TOML file at path. An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds values bound to command line flags. Only flags set explicitly
// override the loaded configuration.
type Flags struct {
	set *pflag.FlagSet
	cfg Config
}

func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{set: fs, cfg: Default()}
	fs.Uint8Var(&f.cfg.Separator, "separator", f.cfg.Separator, "byte appended after every record")
	fs.BoolVar(&f.cfg.CaseInsensitive, "case-insensitive", false, "case fold records and queries")
	fs.BoolVar(&f.cfg.Normalize, "normalize", false, "NFC normalize records and queries")
	fs.BoolVar(&f.cfg.Linear, "linear", false, "do not match across the end of the text")
	fs.BoolVar(&f.cfg.SkipLCP, "no-lcp", false, "skip the LCP table")
	fs.BoolVar(&f.cfg.SkipDocListing, "no-doc-listing", false, "skip the distinct record structures")
	fs.BoolVarP(&f.cfg.Verbose, "verbose", "v", false, "debug logging")
	return f
}

func (f *Flags) Apply(cfg *Config) {
	overrides := []struct {
		name  string
		apply func()
	}{
		{"separator", func() { cfg.Separator = f.cfg.Separator }},
		{"case-insensitive", func() { cfg.CaseInsensitive = f.cfg.CaseInsensitive }},
		{"normalize", func() { cfg.Normalize = f.cfg.Normalize }},
		{"linear", func() { cfg.Linear = f.cfg.Linear }},
		{"no-lcp", func() { cfg.SkipLCP = f.cfg.SkipLCP }},
		{"no-doc-listing", func() { cfg.SkipDocListing = f.cfg.SkipDocListing }},
		{"verbose", func() { cfg.Verbose = f.cfg.Verbose }},
	}
	for _, o := range overrides {
		if f.set.Changed(o.name) {
			o.apply()
		}
	}
}

// Builder returns a kwic builder for records configured by cfg.
func (cfg Config) Builder(records []string, logger *zap.Logger) *kwic.Builder {
	b := kwic.NewBuilder(records).Separator(cfg.Separator).Logger(logger)
	if cfg.CaseInsensitive {
		b = b.CaseInsensitive()
	}
	if cfg.Normalize {
		b = b.Normalize()
	}
	if cfg.Linear {
		b = b.LinearSuffixes()
	}
	if cfg.SkipLCP {
		b = b.SkipLCP()
	}
	if cfg.SkipDocListing {
		b = b.SkipDocListing()
	}
	return b
}

// Logger builds the process logger: development output when verbose,
// production JSON at info level otherwise.
func (cfg Config) Logger() (*zap.Logger, error) {
	if cfg.Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
