package engine

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildSelection(t *testing.T) {
	d, err := Build(sheglamView(), []string{"Lips"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	assertEqual(t, d.Main.FilteredCount, 3, "filtered count")
	assertEqual(t, len(d.Main.Products), 3, "listing")
	assertEqual(t, d.Main.Summary[0].Count, 3, "stats follow the selection")
	assertEqual(t, d.Main.MinStars, 4.5, "default threshold")

	top := make([]string, 0, len(d.Main.TopRated))
	for _, r := range d.Main.TopRated {
		top = append(top, r.Name.Value)
	}
	assertEqual(t, strings.Join(top, ","), "Hydrating Lip Balm,Care Bears Lip Gloss,Matte Lipstick", "top rated")

	// collections always look at the whole catalog
	assertEqual(t, d.Collections.Tagged, 3, "tagged products")
	assertEqual(t, len(d.Collections.Collections), 16, "collection list")
}

func TestBuildEmptySelection(t *testing.T) {
	d, err := Build(sheglamView(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	assertEqual(t, d.Main.FilteredCount, 0, "filtered count")
	assertEqual(t, len(d.Main.TopRated), 0, "top rated")
	assertEqual(t, len(d.Main.ByCategory), 0, "means")
	assertEqual(t, len(d.Main.BestByCategory), 0, "best sellers")
	assertEqual(t, len(d.Visuals.PriceHistogram), 0, "histogram")
	assertEqual(t, d.Visuals.BestVsRegular.BestSeller.Count, 0, "comparison")
	for _, s := range d.Main.Summary {
		assertEqual(t, s.Count, 0, s.Column+" count")
		assertAbsent(t, s.Mean, s.Column+" mean")
	}
	assertEqual(t, d.Collections.Tagged, 3, "collections ignore the selection")

	if _, err := json.Marshal(d); err != nil {
		t.Errorf("empty dashboard should marshal: %v", err)
	}
}

func TestBuildCatalogStats(t *testing.T) {
	d, err := Build(sheglamView(), []string{"Lips"}, WithCatalogStats())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	assertEqual(t, d.Main.FilteredCount, 3, "listing still filtered")
	assertEqual(t, d.Main.Summary[0].Count, 7, "price count over the catalog")
	assertEqual(t, len(d.Main.ByCategory), 3, "all categories")
	assertEqual(t, len(d.Main.TopRated), 6, "ranking over the catalog")
}

func TestBuildOptions(t *testing.T) {
	d, err := Build(sheglamView(), []string{"Lips", "Eyes", "Face"},
		WithMinStars(4.9), WithTopN(1), WithHistogramBins(KeyPrice, 3),
		WithCollections([]string{"Care Bears"}))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	assertEqual(t, len(d.Main.TopRated), 1, "top n")
	assertEqual(t, d.Main.TopRated[0].Name.Value, "Volume Mascara", "top product")
	assertEqual(t, len(d.Visuals.PriceHistogram), 3, "price bins")
	assertEqual(t, len(d.Visuals.RatingHistogram), 10, "default rating bins")
	assertEqual(t, strings.Join(d.Collections.Summary.Labels, ","), "Care Bears", "custom collections")
}

func TestBuildRejectsBlankCollection(t *testing.T) {
	if _, err := Build(sheglamView(), nil, WithCollections([]string{" "})); err == nil {
		t.Error("expected error for blank collection name")
	}
}

func TestBuildVisualsOrder(t *testing.T) {
	d, err := Build(sheglamView(), []string{"Lips", "Eyes", "Face"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// main tables stay in key order, charts are by value
	assertEqual(t, d.Main.ByCategory[0].Key, "Eyes", "main first")
	assertEqual(t, d.Visuals.CategoryMeans[0].Key, "Eyes", "visual first (12.17)")
	assertEqual(t, d.Visuals.CategoryMeans[1].Key, "Face", "visual second (9.00)")
	assertEqual(t, d.Visuals.CategoryMeans[2].Key, "Lips", "visual third (8.33)")
	assertEqual(t, len(d.Visuals.Tree), 3, "tree roots")
}
