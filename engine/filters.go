package engine

// ============================================================================
// FILTERS — Dimension-Based Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent), zero data copy.
// Matching is exact; a missing value never matches.
// ============================================================================

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// No filters = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool, len(filters.Dimensions))
	for dim, allowed := range filters.Dimensions {
		if len(allowed) == 0 {
			return emptyView(view)
		}
		sets[dim] = toSet(allowed)
	}

	return Where(view, func(i int) bool {
		for dim, set := range sets {
			val, ok := view.Dimension(i, dim)
			if !ok || !set[val] {
				return false
			}
		}
		return true
	})
}

// SelectCategories keeps rows whose category is in selected.
// An empty selection yields an empty view.
func SelectCategories(view RecordView, selected []string) RecordView {
	return ApplyFilters(view, Filters{Dimensions: map[string][]string{
		KeyCategory: selected,
	}})
}

// Where returns the rows of view for which keep returns true, in order.
func Where(view RecordView, keep func(i int) bool) RecordView {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// UniqueValues returns distinct present values for a dimension, first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for i := 0; i < view.Len(); i++ {
		val, ok := view.Dimension(i, dimension)
		if ok && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
