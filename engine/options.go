package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Build()
// ============================================================================

// Option configures dashboard assembly via functional options pattern.
type Option func(*config)

type config struct {
	MinStars      float64
	TopN          int
	Collections   []string
	HistogramBins map[string]int
	CatalogStats  bool // statistics over the whole catalog, not the selection
	TopWords      int
	Headline      string
}

// WithMinStars sets the rating threshold for the top-rated ranking.
func WithMinStars(min float64) Option {
	return func(c *config) {
		c.MinStars = min
	}
}

// WithTopN sets how many products the top-rated ranking returns.
func WithTopN(n int) Option {
	return func(c *config) {
		c.TopN = n
	}
}

// WithCollections replaces the ordered collection list. Order is the tie-break.
func WithCollections(names []string) Option {
	return func(c *config) {
		c.Collections = names
	}
}

// WithHistogramBins sets the bin count for a measure's distribution.
func WithHistogramBins(measure string, bins int) Option {
	return func(c *config) {
		c.HistogramBins[measure] = bins
	}
}

// WithCatalogStats computes statistics over the whole catalog; the category
// selection then only narrows the product listing.
func WithCatalogStats() Option {
	return func(c *config) {
		c.CatalogStats = true
	}
}

// WithTopWords sets how many product-name words the word counts keep.
func WithTopWords(n int) Option {
	return func(c *config) {
		c.TopWords = n
	}
}

// WithHeadline replaces the headline template. See BuildHeadline.
func WithHeadline(template string) Option {
	return func(c *config) {
		c.Headline = template
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		MinStars:    4.5,
		TopN:        10,
		Collections: DefaultCollections,
		TopWords:    20,
		Headline:    DefaultHeadline,
		HistogramBins: map[string]int{
			KeyPrice: 20,
			KeyStars: 10,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
