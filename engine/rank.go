package engine

import "sort"

// TopRated returns up to n rows with stars >= minStars, ordered by stars
// descending then price ascending. Rows without a price trail their rating
// peers; full ties keep input order. n <= 0 or no qualifying rows yields an
// empty view.
func TopRated(view RecordView, minStars float64, n int) RecordView {
	if n <= 0 {
		return emptyView(view)
	}

	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if s, ok := view.Measure(i, KeyStars); ok && s >= minStars {
			indices = append(indices, i)
		}
	}

	sort.SliceStable(indices, func(a, b int) bool {
		return rankLess(view, indices[a], indices[b])
	})

	if len(indices) > n {
		indices = indices[:n]
	}
	return newSubView(view, indices)
}

func rankLess(view RecordView, i, j int) bool {
	si, _ := view.Measure(i, KeyStars)
	sj, _ := view.Measure(j, KeyStars)
	if si != sj {
		return si > sj
	}
	pi, iok := view.Measure(i, KeyPrice)
	pj, jok := view.Measure(j, KeyPrice)
	switch {
	case iok && jok:
		return pi < pj
	case iok:
		return true
	default:
		return false
	}
}

// Rows flattens a view into ProductRows, in view order.
func Rows(view RecordView) []ProductRow {
	out := make([]ProductRow, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		out = append(out, ProductRow{
			Name:        dimOpt(view, i, KeyName),
			Category:    dimOpt(view, i, KeyCategory),
			Subcategory: dimOpt(view, i, KeySubcategory),
			Price:       measureOpt(view, i, KeyPrice),
			Stars:       measureOpt(view, i, KeyStars),
			BestSeller:  boolInt(isBestSeller(view, i)),
			Collection:  dimOpt(view, i, KeyCollection),
		})
	}
	return out
}

func dimOpt(view RecordView, i int, key string) Optional[string] {
	if s, ok := view.Dimension(i, key); ok {
		return Some(s)
	}
	return None[string]()
}

func measureOpt(view RecordView, i int, key string) Optional[float64] {
	if v, ok := view.Measure(i, key); ok {
		return Some(v)
	}
	return None[float64]()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
