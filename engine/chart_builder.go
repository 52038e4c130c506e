package engine

import "fmt"

// ============================================================================
// CHART BUILDER — Produces ChartConfig series from aggregates
// ============================================================================
// Series data only. Colours, annotations and layout belong to the renderer.
// ============================================================================

// BuildMeanChart turns GroupMean output into one series per value column,
// keeping the group order given (callers sort first).
func BuildMeanChart(title, groupKey string, groups []Group, valueColumns []string) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}

	series := make([]ChartSeries, 0, len(valueColumns))
	for _, col := range valueColumns {
		points := make([]ChartPoint, 0, len(groups))
		for _, g := range groups {
			if v, ok := g.Mean(col); ok {
				points = append(points, ChartPoint{Label: g.Label, Value: v})
			}
		}
		series = append(series, ChartSeries{Name: LabelForDimension(col), Data: points})
	}

	return &ChartConfig{
		ChartType: "bar",
		Title:     title,
		XAxis:     LabelForDimension(groupKey),
		YAxis:     "Average",
		Series:    series,
	}
}

// BuildCountChart turns count groups into a single series.
func BuildCountChart(title, chartType, groupKey string, groups []Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}
	if chartType == "" {
		chartType = "bar"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{Label: g.Label, Value: float64(g.Count)})
	}

	return &ChartConfig{
		ChartType: chartType,
		Title:     title,
		XAxis:     LabelForDimension(groupKey),
		YAxis:     "Count",
		Series:    []ChartSeries{{Name: "Count", Data: points}},
	}
}

// BuildComparisonChart puts price and stars side by side for both partitions.
func BuildComparisonChart(title string, cmp Comparison) *ChartConfig {
	parts := []PartitionStats{cmp.Regular, cmp.BestSeller}
	price := ChartSeries{Name: "Price"}
	stars := ChartSeries{Name: "Stars"}
	for _, p := range parts {
		if p.MeanPrice.Ok {
			price.Data = append(price.Data, ChartPoint{Label: p.Label, Value: p.MeanPrice.Value})
		}
		if p.MeanStars.Ok {
			stars.Data = append(stars.Data, ChartPoint{Label: p.Label, Value: p.MeanStars.Value})
		}
	}
	if len(price.Data) == 0 && len(stars.Data) == 0 {
		return nil
	}

	return &ChartConfig{
		ChartType: "grouped_bar",
		Title:     title,
		XAxis:     "Product Type",
		YAxis:     "Average Value",
		Series:    []ChartSeries{price, stars},
	}
}

// BuildCollectionChart returns total products and best sellers per collection
// as two parallel series.
func BuildCollectionChart(title string, totals CollectionTotals) *ChartConfig {
	if len(totals.Labels) == 0 {
		return nil
	}

	total := ChartSeries{Name: "Total Products", Data: make([]ChartPoint, 0, len(totals.Labels))}
	best := ChartSeries{Name: "Best Sellers", Data: make([]ChartPoint, 0, len(totals.Labels))}
	for i, label := range totals.Labels {
		total.Data = append(total.Data, ChartPoint{Label: label, Value: float64(totals.Total[i])})
		best.Data = append(best.Data, ChartPoint{Label: label, Value: float64(totals.BestSellers[i])})
	}

	return &ChartConfig{
		ChartType: "grouped_bar",
		Title:     title,
		XAxis:     "Collection",
		YAxis:     "Count",
		Series:    []ChartSeries{total, best},
	}
}

// BuildHistogramChart labels each bin by its lower edge.
func BuildHistogramChart(title, measure string, bins []Bin) *ChartConfig {
	if len(bins) == 0 {
		return nil
	}
	points := make([]ChartPoint, 0, len(bins))
	for _, b := range bins {
		points = append(points, ChartPoint{Label: FormatCurrency(b.Lower, ""), Value: float64(b.Count)})
	}
	return &ChartConfig{
		ChartType: "histogram",
		Title:     title,
		XAxis:     LabelForDimension(measure),
		YAxis:     "Count",
		Series:    []ChartSeries{{Name: "Count", Data: points}},
	}
}

// BuildTopRatedChart plots star ratings per product, in ranking order.
func BuildTopRatedChart(title string, rows []ProductRow) *ChartConfig {
	if len(rows) == 0 {
		return nil
	}
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		if r.Stars.Ok {
			points = append(points, ChartPoint{Label: r.Name.Or(""), Value: r.Stars.Value})
		}
	}
	return &ChartConfig{
		ChartType: "horizontal_bar",
		Title:     title,
		XAxis:     "Product Name",
		YAxis:     "Star Rating",
		Series:    []ChartSeries{{Name: "Stars", Data: points}},
	}
}

// BuildWordChart plots word counts, most frequent first.
func BuildWordChart(title string, words []WordCount) *ChartConfig {
	if len(words) == 0 {
		return nil
	}
	points := make([]ChartPoint, 0, len(words))
	for _, w := range words {
		points = append(points, ChartPoint{Label: w.Word, Value: float64(w.Count)})
	}
	return &ChartConfig{
		ChartType: "word_cloud",
		Title:     title,
		XAxis:     "Word",
		YAxis:     "Count",
		Series:    []ChartSeries{{Name: "Count", Data: points}},
	}
}

// Charts returns every chart the dashboard can draw; empty aggregates are skipped.
func (d *Dashboard) Charts() []*ChartConfig {
	candidates := []*ChartConfig{
		BuildMeanChart("Average Price & Stars by Category", KeyCategory, d.Visuals.CategoryMeans, priceAndStars),
		BuildMeanChart("Average Price & Stars by Subcategory", KeySubcategory, d.Visuals.SubcategoryMeans, priceAndStars),
		BuildComparisonChart("Best Sellers vs Regular Products Comparison", d.Visuals.BestVsRegular),
		BuildCountChart("Best Sellers by Category", "sunburst", KeyCategory, d.Main.BestByCategory),
		BuildCountChart("Product Distribution by Category", "bar", KeyCategory, d.Visuals.Distribution),
		BuildHistogramChart("Price Distribution", KeyPrice, d.Visuals.PriceHistogram),
		BuildHistogramChart("Rating Distribution", KeyStars, d.Visuals.RatingHistogram),
		BuildWordChart("Common Words in Product Names", d.Visuals.Words),
		BuildTopRatedChart(fmt.Sprintf("Top %d Highest Rated Products (%.1f+ Stars)", len(d.Main.TopRated), d.Main.MinStars), d.Main.TopRated),
		BuildMeanChart("Average Price by Collection", KeyCollection, d.Collections.AvgPrice, []string{KeyPrice}),
		BuildCollectionChart("Total vs Best Sellers by Collection", d.Collections.Summary),
	}

	out := make([]*ChartConfig, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
