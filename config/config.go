package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/lookbook/catalog"
	"github.com/spektr-org/lookbook/engine"
	"github.com/spektr-org/lookbook/schema"
)

// ============================================================================
// CONFIG — Dashboard settings file
// ============================================================================
// A YAML file can pin the catalog source, the category selection, the ranking
// threshold, the collection list and header overrides. Keys left out of the
// file keep their defaults. CLI flags are applied on top by the caller.
// ============================================================================

// Dashboard is the decoded settings file.
type Dashboard struct {
	Source        string            `yaml:"source"`
	Delimiter     string            `yaml:"delimiter"`
	Categories    []string          `yaml:"categories"` // nil selects every category; [] selects none
	TopRated      TopRated          `yaml:"top_rated"`
	Collections   []string          `yaml:"collections"`
	Columns       map[string]string `yaml:"columns"` // key → header text
	HistogramBins map[string]int    `yaml:"histogram_bins"`
	CatalogStats  bool              `yaml:"catalog_stats"`
	TopWords      int               `yaml:"top_words"`
	Headline      string            `yaml:"headline"`
	Export        Export            `yaml:"export"`
}

// TopRated configures the ranking table.
type TopRated struct {
	MinStars float64 `yaml:"min_stars"`
	Limit    int     `yaml:"limit"`
}

// Export configures optional snapshot output.
type Export struct {
	SQLite string `yaml:"sqlite"`
}

// Default returns the settings used when no file is given.
func Default() *Dashboard {
	return &Dashboard{
		Delimiter:   ",",
		TopRated:    TopRated{MinStars: 4.5, Limit: 10},
		Collections: append([]string(nil), engine.DefaultCollections...),
		HistogramBins: map[string]int{
			engine.KeyPrice: 20,
			engine.KeyStars: 10,
		},
		TopWords: 20,
		Headline: engine.DefaultHeadline,
	}
}

// Load reads a settings file over the defaults and validates the result.
func Load(path string) (*Dashboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over the defaults.
func Parse(data []byte) (*Dashboard, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot honour.
func (d *Dashboard) Validate() error {
	if d.TopRated.MinStars < 0 || d.TopRated.MinStars > 5 {
		return fmt.Errorf("top_rated.min_stars must be between 0 and 5, got %v", d.TopRated.MinStars)
	}
	if d.TopRated.Limit < 0 {
		return fmt.Errorf("top_rated.limit must not be negative, got %d", d.TopRated.Limit)
	}
	if d.TopWords < 0 {
		return fmt.Errorf("top_words must not be negative, got %d", d.TopWords)
	}
	if len(d.Collections) == 0 {
		return fmt.Errorf("collections must not be empty")
	}
	for _, name := range d.Collections {
		if _, err := engine.CollectionPattern(name); err != nil {
			return fmt.Errorf("collections: %w", err)
		}
	}
	for key, bins := range d.HistogramBins {
		if key != engine.KeyPrice && key != engine.KeyStars {
			return fmt.Errorf("histogram_bins: unknown measure %q", key)
		}
		if bins < 1 {
			return fmt.Errorf("histogram_bins.%s must be at least 1, got %d", key, bins)
		}
	}
	known := make(map[string]bool)
	for _, k := range schema.Catalog().Keys() {
		known[k] = true
	}
	for key := range d.Columns {
		if !known[key] {
			return fmt.Errorf("columns: unknown key %q", key)
		}
	}
	if d.Delimiter != "" && utf8.RuneCountInString(d.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", d.Delimiter)
	}
	return nil
}

// Selection resolves the configured categories against what the catalog has.
func (d *Dashboard) Selection(available []string) []string {
	if d.Categories == nil {
		return append([]string{}, available...)
	}
	return append([]string{}, d.Categories...)
}

// Schema returns the catalog schema with header overrides applied.
func (d *Dashboard) Schema() schema.Config {
	return schema.Catalog().WithHeaders(d.Columns)
}

// Comma returns the field delimiter as a rune, ',' when unset.
func (d *Dashboard) Comma() rune {
	if d.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}

// CatalogOptions returns the loader options these settings imply.
func (d *Dashboard) CatalogOptions() []catalog.Option {
	opts := []catalog.Option{catalog.WithSchema(d.Schema())}
	if r := d.Comma(); r != ',' {
		opts = append(opts, catalog.WithComma(r))
	}
	return opts
}

// EngineOptions returns the dashboard options these settings imply.
func (d *Dashboard) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithMinStars(d.TopRated.MinStars),
		engine.WithTopN(d.TopRated.Limit),
		engine.WithCollections(d.Collections),
		engine.WithTopWords(d.TopWords),
		engine.WithHeadline(d.Headline),
	}
	for key, bins := range d.HistogramBins {
		opts = append(opts, engine.WithHistogramBins(key, bins))
	}
	if d.CatalogStats {
		opts = append(opts, engine.WithCatalogStats())
	}
	return opts
}
