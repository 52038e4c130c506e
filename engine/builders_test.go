package engine

import (
	"strings"
	"testing"
)

func TestDashboardTables(t *testing.T) {
	d, err := Build(sheglamView(), []string{"Lips", "Eyes", "Face"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	tables := d.Tables()
	assertEqual(t, len(tables), 14, "table count")

	listing := tables[0]
	assertEqual(t, len(listing.Rows), 8, "listing rows")
	assertEqual(t, listing.Summary.Values["count"], "8", "listing summary")
	// missing price renders as an empty cell
	assertEqual(t, listing.Rows[7][3], "", "powder price")

	stats := tables[1]
	assertEqual(t, stats.Rows[1][0], "mean", "second stat")
	assertEqual(t, stats.Rows[1][1], "10.07", "mean price")

	collections := tables[12]
	assertEqual(t, collections.Rows[0][0], "Care Bears", "first collection")
	assertEqual(t, collections.Rows[0][3], "8.00", "joined average")

	words := tables[13]
	assertEqual(t, words.Rows[0][0], "bears", "most frequent word")
}

func TestDashboardCharts(t *testing.T) {
	full, err := Build(sheglamView(), []string{"Lips", "Eyes", "Face"})
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, len(full.Charts()), 11, "all charts")

	empty, err := Build(sheglamView(), nil)
	if err != nil {
		t.Fatal(err)
	}
	charts := empty.Charts()
	// only the collection charts survive an empty selection
	assertEqual(t, len(charts), 2, "charts without selection")
	last := charts[len(charts)-1]
	assertEqual(t, len(last.Series), 2, "parallel series")
	assertEqual(t, last.Series[0].Name, "Total Products", "first series")
	assertEqual(t, last.Series[1].Name, "Best Sellers", "second series")
}

func TestBuildCountTableTotal(t *testing.T) {
	table := BuildCountTable("Best", KeyCategory, "Best Seller Count", BestSellerBreakdown(sheglamView(), KeyCategory))
	assertEqual(t, table.Summary.Values["count"], "4", "total")
	assertEqual(t, table.Columns[0].Label, "Category", "group label")
}

func TestTableText(t *testing.T) {
	table := BuildComparisonTable("Best Seller vs Non-Best Seller", BestVsRegular(sheglamView()))
	text := TableText(table)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assertEqual(t, len(lines), 4, "title, header, two rows")
	assertEqual(t, lines[0], "Best Seller vs Non-Best Seller", "title")
	if !strings.Contains(lines[3], "11.88") {
		t.Errorf("best seller row missing price: %q", lines[3])
	}

	empty := TableText(BuildCountTable("Nothing", KeyCategory, "Count", nil))
	if !strings.HasSuffix(empty, "(no data)\n") {
		t.Errorf("empty table text = %q", empty)
	}
}

func TestChartBuildersSkipEmpty(t *testing.T) {
	if BuildMeanChart("x", KeyCategory, nil, priceAndStars) != nil {
		t.Error("mean chart")
	}
	if BuildCountChart("x", "", KeyCategory, nil) != nil {
		t.Error("count chart")
	}
	if BuildHistogramChart("x", KeyPrice, nil) != nil {
		t.Error("histogram chart")
	}
	if BuildCollectionChart("x", CollectionTotals{}) != nil {
		t.Error("collection chart")
	}
	if BuildWordChart("x", nil) != nil || BuildTopRatedChart("x", nil) != nil {
		t.Error("word or top-rated chart")
	}
	c := BuildCountChart("x", "", KeyCategory, CountBy(sheglamView(), KeyCategory))
	assertEqual(t, c.ChartType, "bar", "default chart type")
}
