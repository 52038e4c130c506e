package engine

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

// ============================================================================
// FILTER TESTS
// ============================================================================

func TestSelectCategories(t *testing.T) {
	view := sheglamView()

	lips := SelectCategories(view, []string{"Lips"})
	assertEqual(t, lips.Len(), 3, "Lips rows")

	both := SelectCategories(view, []string{"Lips", "Face"})
	assertEqual(t, both.Len(), 5, "Lips+Face rows")

	all := SelectCategories(view, UniqueValues(view, KeyCategory))
	assertEqual(t, all.Len(), view.Len(), "full selection keeps every row with a category")
}

func TestSelectCategoriesEmptySelection(t *testing.T) {
	view := sheglamView()
	for _, sel := range [][]string{nil, {}} {
		got := SelectCategories(view, sel)
		assertEqual(t, got.Len(), 0, "empty selection")
	}
}

func TestSelectCategoriesMissingNeverMatches(t *testing.T) {
	view := viewOf(
		prod("A", "", "x", 1, 4, 0),
		prod("B", "Lips", "x", 1, 4, 0),
	)
	got := SelectCategories(view, []string{"", "Lips"})
	assertEqual(t, got.Len(), 1, "missing category must not match")
	assertEqual(t, names(got)[0], "B", "matched row")
}

func TestApplyFiltersAndAcrossDimensions(t *testing.T) {
	view := sheglamView()
	got := ApplyFilters(view, Filters{Dimensions: map[string][]string{
		KeyCategory:    {"Lips", "Eyes"},
		KeySubcategory: {"Mascara", "Lipstick", "Blush"},
	}})
	assertEqual(t, strings.Join(names(got), ","), "Volume Mascara,Matte Lipstick", "filtered names")

	assertEqual(t, ApplyFilters(view, Filters{}).Len(), view.Len(), "no filters keeps all")
}

func TestFilterIsCaseSensitive(t *testing.T) {
	got := SelectCategories(sheglamView(), []string{"lips"})
	assertEqual(t, got.Len(), 0, "category match is exact")
}

// ============================================================================
// GROUP MEAN TESTS
// ============================================================================

func TestGroupMeanByCategory(t *testing.T) {
	groups := GroupMean(sheglamView(), KeyCategory, []string{KeyPrice, KeyStars})
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	assertEqual(t, groups[0].Key, "Eyes", "first key")
	assertEqual(t, groups[1].Key, "Face", "second key")
	assertEqual(t, groups[2].Key, "Lips", "third key")

	assertFloat(t, groups[0].Means[KeyPrice], 12.17, "Eyes price")
	assertFloat(t, groups[0].Means[KeyStars], 4.67, "Eyes stars")
	assertFloat(t, groups[1].Means[KeyPrice], 9.00, "Face price skips missing")
	assertEqual(t, groups[1].Count, 2, "Face rows")
	assertFloat(t, groups[2].Means[KeyPrice], 8.33, "Lips price")
	assertFloat(t, groups[2].Means[KeyStars], 4.63, "Lips stars")
}

func TestGroupMeanSingleGroupEqualsPlainMean(t *testing.T) {
	view := viewOf(
		prod("A", "Lips", "x", 3, 4.0, 0),
		prod("B", "Lips", "x", 4, 4.5, 0),
		prod("C", "Lips", "x", 8, 5.0, 1),
	)
	groups := GroupMean(view, KeyCategory, []string{KeyPrice})
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	plain := roundOpt(AvgMeasure(view, KeyPrice))
	assertFloat(t, groups[0].Means[KeyPrice], plain.Value, "single group mean")
	assertFloat(t, plain, 5.0, "plain mean")
}

func TestGroupMeanDropsMissingKey(t *testing.T) {
	groups := GroupMean(sheglamView(), KeySubcategory, []string{KeyPrice})
	for _, g := range groups {
		if g.Key == "" {
			t.Error("missing subcategory formed a group")
		}
	}
	assertEqual(t, len(groups), 7, "subcategory groups")
}

func TestGroupMeanAllMissingColumn(t *testing.T) {
	view := viewOf(testProduct{name: "A", category: "Face", price: None[float64](), stars: Some(4.0)})
	groups := GroupMean(view, KeyCategory, []string{KeyPrice})
	assertAbsent(t, groups[0].Means[KeyPrice], "mean of no prices")

	// absent means serialize as null, not as an error
	if _, err := json.Marshal(groups); err != nil {
		t.Errorf("marshal groups: %v", err)
	}
}

func TestGroupMeanEmptyView(t *testing.T) {
	groups := GroupMean(SelectCategories(sheglamView(), nil), KeyCategory, []string{KeyPrice})
	if groups == nil || len(groups) != 0 {
		t.Errorf("expected empty non-nil groups, got %v", groups)
	}
}

// ============================================================================
// BEST SELLER TESTS
// ============================================================================

func TestBestSellerBreakdown(t *testing.T) {
	groups := BestSellerBreakdown(sheglamView(), KeyCategory)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	// tie at 2 keeps first-seen order
	assertEqual(t, groups[0].Key, "Eyes", "first")
	assertEqual(t, groups[0].Count, 2, "Eyes best sellers")
	assertEqual(t, groups[1].Key, "Lips", "second")
	assertEqual(t, groups[1].Count, 2, "Lips best sellers")
}

func TestBestSellerBreakdownSortedDescending(t *testing.T) {
	view := viewOf(
		prod("A", "Face", "x", 1, 4, 1),
		prod("B", "Lips", "x", 1, 4, 1),
		prod("C", "Lips", "x", 1, 4, 1),
		prod("D", "Lips", "x", 1, 4, 0),
	)
	groups := BestSellerBreakdown(view, KeyCategory)
	assertEqual(t, groups[0].Key, "Lips", "highest count first")
	assertEqual(t, groups[0].Count, 2, "Lips count")
}

func TestBestVsRegular(t *testing.T) {
	view := sheglamView()
	cmp := BestVsRegular(view)

	assertEqual(t, cmp.Regular.Count+cmp.BestSeller.Count, view.Len(), "partitions are complete")
	assertEqual(t, cmp.BestSeller.Count, 4, "best sellers")
	assertEqual(t, cmp.Regular.Count, 4, "regular")
	assertFloat(t, cmp.BestSeller.MeanPrice, 11.88, "best seller price")
	assertFloat(t, cmp.Regular.MeanPrice, 7.67, "regular price skips missing")
}

func TestBestVsRegularEmpty(t *testing.T) {
	cmp := BestVsRegular(SelectCategories(sheglamView(), nil))
	assertEqual(t, cmp.Regular.Count, 0, "regular count")
	assertAbsent(t, cmp.Regular.MeanPrice, "regular price")
	assertAbsent(t, cmp.BestSeller.MeanStars, "best stars")
}

// ============================================================================
// DISTRIBUTION TESTS
// ============================================================================

func TestCountBy(t *testing.T) {
	groups := CountBy(sheglamView(), KeyCategory)
	assertEqual(t, len(groups), 3, "groups")
	// Eyes 3, Lips 3 (tie, first seen Lips), Face 2
	assertEqual(t, groups[0].Key, "Lips", "first")
	assertEqual(t, groups[1].Key, "Eyes", "second")
	assertEqual(t, groups[2].Count, 2, "Face")
}

func TestCountByTree(t *testing.T) {
	tree := CountByTree(sheglamView(), KeyCategory, KeySubcategory)
	total := 0
	for _, g := range tree {
		for _, sg := range g.Sub {
			total += sg.Count
		}
	}
	// Loose Powder has no subcategory
	assertEqual(t, total, 7, "leaf total")
}

func TestSortGroupsNaNLast(t *testing.T) {
	groups := []Group{{Key: "a", Value: math.NaN()}, {Key: "b", Value: 1}, {Key: "c", Value: 3}}
	SortGroups(groups, "value_desc")
	assertEqual(t, groups[0].Key, "c", "desc first")
	assertEqual(t, groups[2].Key, "a", "NaN last")

	SortGroups(groups, "value_asc")
	assertEqual(t, groups[0].Key, "b", "asc first")
	assertEqual(t, groups[2].Key, "a", "NaN last")
}

func TestFormatting(t *testing.T) {
	assertEqual(t, FormatCurrency(1234.5, "$"), "$1,234.50", "currency")
	assertEqual(t, FormatCurrency(-8, "$"), "-$8.00", "negative currency")
	assertEqual(t, FormatInt(1234567), "1,234,567", "int")
	assertEqual(t, LabelForDimension("best_seller"), "Best Seller", "label")
	assertEqual(t, RoundTo2(11.875), 11.88, "half to even")
	assertEqual(t, FormatOptional(None[float64]()), "", "absent")
}
