package engine

import (
	"math"
	"sort"
)

// ============================================================================
// DESCRIPTIVE STATISTICS
// ============================================================================
// describe()-compatible: sample standard deviation (n-1), quartiles by linear
// interpolation between closest ranks, every figure rounded to 2 decimals.
// ============================================================================

// SummaryStats returns count, mean, std, min, quartiles and max for each
// numeric column. Missing values are skipped.
func SummaryStats(view RecordView, columns []string) []ColumnStats {
	out := make([]ColumnStats, 0, len(columns))
	for _, col := range columns {
		out = append(out, describe(col, measureValues(view, col)))
	}
	return out
}

func describe(column string, vals []float64) ColumnStats {
	st := ColumnStats{Column: column, Count: len(vals)}
	if len(vals) == 0 {
		return st
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	st.Mean = roundOpt(someFinite(mean))
	st.Min = roundOpt(someFinite(sorted[0]))
	st.Q25 = roundOpt(someFinite(quantile(sorted, 0.25)))
	st.Median = roundOpt(someFinite(quantile(sorted, 0.5)))
	st.Q75 = roundOpt(someFinite(quantile(sorted, 0.75)))
	st.Max = roundOpt(someFinite(sorted[len(sorted)-1]))

	if len(sorted) > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - mean
			ss += d * d
		}
		st.Std = roundOpt(someFinite(math.Sqrt(ss / float64(len(sorted)-1))))
	}
	return st
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Histogram splits the present values of a column into equal-width bins
// between its minimum and maximum. A constant column gets a unit-wide range
// centred on the value. No values, or bins < 1, yields no bins.
func Histogram(view RecordView, column string, bins int) []Bin {
	vals := measureValues(view, column)
	if len(vals) == 0 || bins < 1 {
		return []Bin{}
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}
