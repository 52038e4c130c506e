package engine

import (
	"log"
)

// ============================================================================
// DASHBOARD — assembles the three views from one catalog view
// ============================================================================
// Pipeline:
//   1. Select categories → SubView (zero-copy)
//   2. Aggregate + rank the selection (Main, Visualizations)
//   3. Tag collections over the whole catalog (Collections)
//   4. Fill the headline template
//
// Nothing is cached: every call recomputes from the view it is given.
// An empty selection produces empty aggregates, not an error.
// ============================================================================

// Dashboard is the render-ready output of Build.
type Dashboard struct {
	Selection   []string        `json:"selection"`
	Headline    *TextData       `json:"headline"`
	Main        MainView        `json:"main"`
	Visuals     VisualsView     `json:"visualizations"`
	Collections CollectionsView `json:"collections"`
}

// MainView backs the main dashboard tab.
type MainView struct {
	CatalogCount      int           `json:"catalogCount"`
	FilteredCount     int           `json:"filteredCount"`
	Products          []ProductRow  `json:"products"`
	Summary           []ColumnStats `json:"summary"`
	ByCategory        []Group       `json:"byCategory"`
	BySubcategory     []Group       `json:"bySubcategory"`
	BestByCategory    []Group       `json:"bestByCategory"`
	BestBySubcategory []Group       `json:"bestBySubcategory"`
	MinStars          float64       `json:"minStars"`
	TopRated          []ProductRow  `json:"topRated"`
}

// VisualsView backs the visualizations tab.
type VisualsView struct {
	CategoryMeans    []Group     `json:"categoryMeans"`
	SubcategoryMeans []Group     `json:"subcategoryMeans"`
	BestVsRegular    Comparison  `json:"bestVsRegular"`
	Distribution     []Group     `json:"distribution"`
	Tree             []Group     `json:"tree"`
	PriceHistogram   []Bin       `json:"priceHistogram"`
	RatingHistogram  []Bin       `json:"ratingHistogram"`
	Words            []WordCount `json:"words"`
}

// CollectionsView backs the collections tab.
type CollectionsView struct {
	Collections []string         `json:"collections"`
	Tagged      int              `json:"tagged"`
	AvgPrice    []Group          `json:"avgPrice"`
	Summary     CollectionTotals `json:"summary"`
}

var priceAndStars = []string{KeyPrice, KeyStars}

// Build computes every dashboard view for the given category selection.
// The only failure is an invalid collection list.
func Build(view RecordView, selection []string, opts ...Option) (*Dashboard, error) {
	cfg := applyOptions(opts)

	tagger, err := NewTagger(cfg.Collections)
	if err != nil {
		return nil, err
	}

	filtered := SelectCategories(view, selection)
	stats := filtered
	if cfg.CatalogStats {
		stats = view
	}

	log.Printf("📊 Lookbook: %d of %d products selected (%d categories)",
		filtered.Len(), view.Len(), len(selection))

	top := TopRated(stats, cfg.MinStars, cfg.TopN)

	categoryMeans := GroupMean(stats, KeyCategory, priceAndStars)
	subcategoryMeans := GroupMean(stats, KeySubcategory, priceAndStars)

	d := &Dashboard{
		Selection: append([]string{}, selection...),
		Main: MainView{
			CatalogCount:      view.Len(),
			FilteredCount:     filtered.Len(),
			Products:          Rows(filtered),
			Summary:           SummaryStats(stats, priceAndStars),
			ByCategory:        categoryMeans,
			BySubcategory:     subcategoryMeans,
			BestByCategory:    BestSellerBreakdown(stats, KeyCategory),
			BestBySubcategory: BestSellerBreakdown(stats, KeySubcategory),
			MinStars:          cfg.MinStars,
			TopRated:          Rows(top),
		},
		Visuals: VisualsView{
			CategoryMeans:    byValueDesc(categoryMeans),
			SubcategoryMeans: byValueDesc(subcategoryMeans),
			BestVsRegular:    BestVsRegular(stats),
			Distribution:     CountBy(stats, KeyCategory),
			Tree:             CountByTree(stats, KeyCategory, KeySubcategory),
			PriceHistogram:   Histogram(stats, KeyPrice, cfg.HistogramBins[KeyPrice]),
			RatingHistogram:  Histogram(stats, KeyStars, cfg.HistogramBins[KeyStars]),
			Words:            WordFrequencies(stats, cfg.TopWords),
		},
	}

	tagged := tagger.Tag(view)
	labeled := tagged.Labeled()
	d.Collections = CollectionsView{
		Collections: tagger.Labels(),
		Tagged:      labeled.Len(),
		AvgPrice:    AvgPricePerCollection(labeled),
		Summary:     CollectionSummary(labeled),
	}

	d.Headline = BuildHeadline(d, cfg.Headline)

	log.Printf("🏷  Lookbook: %d products matched %d collections",
		labeled.Len(), len(d.Collections.Summary.Labels))

	return d, nil
}

// byValueDesc returns a re-sorted copy so the ascending-key original survives.
func byValueDesc(groups []Group) []Group {
	out := append([]Group{}, groups...)
	SortGroups(out, "value_desc")
	return out
}
