package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from aggregates
// ============================================================================
// Every dashboard output has a table form so text, CSV and HTML writers can
// share one renderer. Absent values render as empty cells.
// ============================================================================

// BuildProductTable lists products with the given columns.
func BuildProductTable(title string, rows []ProductRow, columns []string) *TableData {
	cols := make([]Column, 0, len(columns))
	for _, key := range columns {
		cols = append(cols, productColumn(key))
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, 0, len(columns))
		for _, key := range columns {
			cells = append(cells, productCell(r, key))
		}
		out = append(out, cells)
	}

	return &TableData{
		Title:   title,
		Columns: cols,
		Rows:    out,
		Summary: &Summary{
			Label:  "Total Results",
			Values: map[string]string{"count": fmt.Sprintf("%d", len(rows))},
		},
	}
}

func productColumn(key string) Column {
	switch key {
	case KeyPrice:
		return Column{Key: key, Label: "Price", Type: "currency", Align: "right"}
	case KeyStars, KeyBestSeller:
		return Column{Key: key, Label: LabelForDimension(key), Type: "number", Align: "right"}
	default:
		return Column{Key: key, Label: LabelForDimension(key), Type: "text", Align: "left"}
	}
}

func productCell(r ProductRow, key string) string {
	switch key {
	case KeyName:
		return r.Name.Or("")
	case KeyCategory:
		return r.Category.Or("")
	case KeySubcategory:
		return r.Subcategory.Or("")
	case KeyPrice:
		return FormatOptional(r.Price)
	case KeyStars:
		if !r.Stars.Ok {
			return ""
		}
		return fmt.Sprintf("%.1f", r.Stars.Value)
	case KeyBestSeller:
		return fmt.Sprintf("%d", r.BestSeller)
	case KeyCollection:
		return r.Collection.Or("")
	}
	return ""
}

// BuildStatsTable renders SummaryStats with one row per statistic and one
// column per measure.
func BuildStatsTable(title string, stats []ColumnStats) *TableData {
	cols := []Column{{Key: "stat", Label: "", Type: "text", Align: "left"}}
	for _, s := range stats {
		cols = append(cols, Column{Key: s.Column, Label: LabelForDimension(s.Column), Type: "number", Align: "right"})
	}

	type line struct {
		name string
		get  func(ColumnStats) string
	}
	lines := []line{
		{"count", func(s ColumnStats) string { return fmt.Sprintf("%d", s.Count) }},
		{"mean", func(s ColumnStats) string { return FormatOptional(s.Mean) }},
		{"std", func(s ColumnStats) string { return FormatOptional(s.Std) }},
		{"min", func(s ColumnStats) string { return FormatOptional(s.Min) }},
		{"25%", func(s ColumnStats) string { return FormatOptional(s.Q25) }},
		{"50%", func(s ColumnStats) string { return FormatOptional(s.Median) }},
		{"75%", func(s ColumnStats) string { return FormatOptional(s.Q75) }},
		{"max", func(s ColumnStats) string { return FormatOptional(s.Max) }},
	}

	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		row := []string{l.name}
		for _, s := range stats {
			row = append(row, l.get(s))
		}
		rows = append(rows, row)
	}
	return &TableData{Title: title, Columns: cols, Rows: rows}
}

// BuildMeanTable renders GroupMean output.
func BuildMeanTable(title, groupKey string, groups []Group, valueColumns []string) *TableData {
	cols := []Column{{Key: groupKey, Label: LabelForDimension(groupKey), Type: "text", Align: "left"}}
	for _, c := range valueColumns {
		cols = append(cols, Column{Key: c, Label: LabelForDimension(c), Type: "number", Align: "right"})
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := []string{g.Label}
		for _, c := range valueColumns {
			row = append(row, FormatOptional(g.Means[c]))
		}
		rows = append(rows, row)
	}
	return &TableData{Title: title, Columns: cols, Rows: rows}
}

// BuildCountTable renders count groups (CountBy, BestSellerBreakdown).
func BuildCountTable(title, groupKey, countLabel string, groups []Group) *TableData {
	rows := make([][]string, 0, len(groups))
	total := 0
	for _, g := range groups {
		rows = append(rows, []string{g.Label, fmt.Sprintf("%d", g.Count)})
		total += g.Count
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: groupKey, Label: LabelForDimension(groupKey), Type: "text", Align: "left"},
			{Key: "count", Label: countLabel, Type: "number", Align: "right"},
		},
		Rows: rows,
		Summary: &Summary{
			Label:  "Total",
			Values: map[string]string{"count": fmt.Sprintf("%d", total)},
		},
	}
}

// BuildTreeTable flattens a two-level count tree into path rows.
func BuildTreeTable(title string, groups []Group, primary, secondary string) *TableData {
	rows := [][]string{}
	for _, g := range groups {
		for _, sg := range g.Sub {
			rows = append(rows, []string{g.Label, sg.Label, fmt.Sprintf("%d", sg.Count)})
		}
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: primary, Label: LabelForDimension(primary), Type: "text", Align: "left"},
			{Key: secondary, Label: LabelForDimension(secondary), Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

// BuildComparisonTable renders BestVsRegular.
func BuildComparisonTable(title string, cmp Comparison) *TableData {
	rows := [][]string{}
	for _, p := range []PartitionStats{cmp.Regular, cmp.BestSeller} {
		rows = append(rows, []string{p.Label, fmt.Sprintf("%d", p.Count), FormatOptional(p.MeanPrice), FormatOptional(p.MeanStars)})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "type", Label: "Product Type", Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
			{Key: KeyPrice, Label: "Price", Type: "number", Align: "right"},
			{Key: KeyStars, Label: "Stars", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

// BuildHistogramTable renders histogram bins.
func BuildHistogramTable(title, measure string, bins []Bin) *TableData {
	rows := make([][]string, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, []string{fmt.Sprintf("%.2f – %.2f", b.Lower, b.Upper), fmt.Sprintf("%d", b.Count)})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: measure, Label: LabelForDimension(measure), Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

// BuildCollectionTable renders CollectionSummary joined with the average price.
func BuildCollectionTable(title string, totals CollectionTotals, avg []Group) *TableData {
	avgByLabel := make(map[string]Optional[float64], len(avg))
	for _, g := range avg {
		avgByLabel[g.Key] = g.Means[KeyPrice]
	}

	rows := make([][]string, 0, len(totals.Labels))
	for i, label := range totals.Labels {
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%d", totals.Total[i]),
			fmt.Sprintf("%d", totals.BestSellers[i]),
			FormatOptional(avgByLabel[label]),
		})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: KeyCollection, Label: "Collection", Type: "text", Align: "left"},
			{Key: "total", Label: "Total Products", Type: "number", Align: "right"},
			{Key: "best", Label: "Best Sellers", Type: "number", Align: "right"},
			{Key: KeyPrice, Label: "Average Price", Type: "currency", Align: "right"},
		},
		Rows: rows,
	}
}

// BuildWordTable renders word counts.
func BuildWordTable(title string, words []WordCount) *TableData {
	rows := make([][]string, 0, len(words))
	for _, w := range words {
		rows = append(rows, []string{w.Word, fmt.Sprintf("%d", w.Count)})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "word", Label: "Word", Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

// Tables returns every dashboard table in tab order.
func (d *Dashboard) Tables() []*TableData {
	listing := []string{KeyName, KeyCategory, KeySubcategory, KeyPrice, KeyStars, KeyBestSeller}
	ranking := []string{KeyName, KeyStars, KeyCategory, KeyPrice}

	return []*TableData{
		BuildProductTable("Filtered Products", d.Main.Products, listing),
		BuildStatsTable("Price and Stars Summary", d.Main.Summary),
		BuildMeanTable("Average Price and Stars by Category", KeyCategory, d.Main.ByCategory, priceAndStars),
		BuildMeanTable("Average Price and Stars by Subcategory", KeySubcategory, d.Main.BySubcategory, priceAndStars),
		BuildCountTable("Best Seller Counts by Category", KeyCategory, "Best Seller Count", d.Main.BestByCategory),
		BuildCountTable("Best Seller Counts by Subcategory", KeySubcategory, "Best Seller Count", d.Main.BestBySubcategory),
		BuildProductTable(fmt.Sprintf("Top Rated Products (%.1f+ Stars)", d.Main.MinStars), d.Main.TopRated, ranking),
		BuildComparisonTable("Best Seller vs Non-Best Seller", d.Visuals.BestVsRegular),
		BuildCountTable("Product Distribution by Category", KeyCategory, "Count", d.Visuals.Distribution),
		BuildTreeTable("Product Distribution by Category and Subcategory", d.Visuals.Tree, KeyCategory, KeySubcategory),
		BuildHistogramTable("Price Distribution", KeyPrice, d.Visuals.PriceHistogram),
		BuildHistogramTable("Rating Distribution", KeyStars, d.Visuals.RatingHistogram),
		BuildCollectionTable("Products vs Best Sellers by Collection", d.Collections.Summary, d.Collections.AvgPrice),
		BuildWordTable("Common Words in Product Names", d.Visuals.Words),
	}
}

// TableText renders a table as aligned plain text.
func TableText(t *TableData) string {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len([]rune(c.Label))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	b.WriteString(t.Title)
	b.WriteString("\n")
	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			pad := strings.Repeat(" ", widths[i]-len([]rune(cell)))
			if t.Columns[i].Align == "right" {
				b.WriteString(pad + cell)
			} else {
				b.WriteString(cell + pad)
			}
			if i < len(cells)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	writeLine(header)
	for _, row := range t.Rows {
		writeLine(row)
	}
	if len(t.Rows) == 0 {
		b.WriteString("(no data)\n")
	}
	return b.String()
}
