package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView: zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// Rows with a missing group key are left out of that aggregate only.
// An empty view yields an empty (non-nil) result, never an error.
// ============================================================================

// GroupMean returns, per distinct non-missing value of groupKey, the mean of
// each value column rounded to 2 decimals. Groups come back in ascending key
// order; Value carries the mean of the first value column for SortGroups.
func GroupMean(view RecordView, groupKey string, valueColumns []string) []Group {
	groups := groupBySingle(view, groupKey)
	for i := range groups {
		g := &groups[i]
		g.Count = g.View.Len()
		g.Means = make(map[string]Optional[float64], len(valueColumns))
		for _, col := range valueColumns {
			g.Means[col] = roundOpt(AvgMeasure(g.View, col))
		}
		if len(valueColumns) > 0 {
			g.Value = g.Means[valueColumns[0]].Or(math.NaN())
		}
	}
	SortGroups(groups, "label_asc")
	return groups
}

// BestSellerBreakdown counts best-seller rows per groupKey, highest first.
// Ties keep first-seen order.
func BestSellerBreakdown(view RecordView, groupKey string) []Group {
	return CountBy(Where(view, func(i int) bool { return isBestSeller(view, i) }), groupKey)
}

// BestVsRegular returns mean price and stars for the regular (best_seller 0)
// and best-seller (best_seller 1) partitions. Every row lands in exactly one.
func BestVsRegular(view RecordView) Comparison {
	best := Where(view, func(i int) bool { return isBestSeller(view, i) })
	regular := Where(view, func(i int) bool { return !isBestSeller(view, i) })
	return Comparison{
		Regular:    partitionStats("Non-Best Seller", regular),
		BestSeller: partitionStats("Best Seller", best),
	}
}

func partitionStats(label string, view RecordView) PartitionStats {
	return PartitionStats{
		Label:     label,
		Count:     view.Len(),
		MeanPrice: roundOpt(AvgMeasure(view, KeyPrice)),
		MeanStars: roundOpt(AvgMeasure(view, KeyStars)),
	}
}

// CountBy counts rows per distinct non-missing groupKey, highest first.
func CountBy(view RecordView, groupKey string) []Group {
	groups := groupBySingle(view, groupKey)
	for i := range groups {
		groups[i].Count = groups[i].View.Len()
		groups[i].Value = float64(groups[i].Count)
	}
	SortGroups(groups, "value_desc")
	return groups
}

// CountByTree counts rows per primary key and, inside each, per secondary key.
// Rows missing either key are dropped.
func CountByTree(view RecordView, primary, secondary string) []Group {
	withBoth := Where(view, func(i int) bool {
		_, ok := view.Dimension(i, secondary)
		return ok
	})
	groups := CountBy(withBoth, primary)
	for i := range groups {
		groups[i].Sub = CountBy(groups[i].View, secondary)
	}
	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key, ok := view.Dimension(i, dimension)
		if !ok {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

func isBestSeller(view RecordView, i int) bool {
	v, ok := view.Measure(i, KeyBestSeller)
	return ok && v == 1
}

// ============================================================================
// AGGREGATION
// ============================================================================

// SumMeasure sums the present values of a measure and reports how many there were.
func SumMeasure(view RecordView, measure string) (float64, int) {
	var total float64
	n := 0
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			total += v
			n++
		}
	}
	return total, n
}

// AvgMeasure averages the present values of a measure; absent if there are none.
func AvgMeasure(view RecordView, measure string) Optional[float64] {
	total, n := SumMeasure(view, measure)
	if n == 0 {
		return None[float64]()
	}
	return someFinite(total / float64(n))
}

// measureValues collects present values of a measure in view order.
func measureValues(view RecordView, measure string) []float64 {
	vals := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
// Sorting is stable; NaN values sort last in either direction.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool {
			return nanLast(groups[i].Value, groups[j].Value, func(a, b float64) bool { return a > b })
		})
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool {
			return nanLast(groups[i].Value, groups[j].Value, func(a, b float64) bool { return a < b })
		})
	case "label_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	case "label_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key > groups[j].Key })
	default:
		// preserve grouping order
	}
}

func nanLast(a, b float64, less func(a, b float64) bool) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return less(a, b)
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// RoundTo2 rounds to 2 decimal places, halves to even.
func RoundTo2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func roundOpt(o Optional[float64]) Optional[float64] {
	if !o.Ok {
		return o
	}
	return Some(RoundTo2(o.Value))
}

// FormatCurrency formats an amount with currency prefix and comma separators.
func FormatCurrency(amount float64, currency string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	intPart := cents / 100
	decPart := cents % 100

	result := fmt.Sprintf("%s%s.%02d", currency, FormatInt(int(intPart)), decPart)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatOptional renders a present value with 2 decimals and an absent one as "".
func FormatOptional(o Optional[float64]) string {
	if !o.Ok {
		return ""
	}
	return fmt.Sprintf("%.2f", o.Value)
}

// LabelForDimension returns a display label for a column key.
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	words := strings.Split(dimension, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
