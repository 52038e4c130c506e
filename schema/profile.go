package schema

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// PROFILE — Lenient column survey of a catalog file
// ============================================================================
// Reads a delimited file without validating anything and reports, per header
// column, which schema key it binds to, how full it is and what its values
// look like. Useful when a strict load fails.
//
// Per column:
//   1. Sample values → detect kind (currency, number, flag, text)
//   2. Count blanks and distinct values
//   3. Collect up to 10 sorted samples and any values that break the kind
// ============================================================================

// ProfileOptions controls profiling.
type ProfileOptions struct {
	SampleSize int  // Max rows to inspect (0 = all). Default: 1000
	Comma      rune // Field delimiter. Default: ','
}

// DefaultProfileOptions returns sensible defaults.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{SampleSize: 1000, Comma: ','}
}

// ColumnProfile describes one header column.
type ColumnProfile struct {
	Header       string   `json:"header"`
	Key          string   `json:"key"`
	Bound        bool     `json:"bound"` // matched a schema column
	Expected     Kind     `json:"expected,omitempty"`
	Detected     Kind     `json:"detected"`
	Filled       int      `json:"filled"`
	Blank        int      `json:"blank"`
	Unique       int      `json:"unique"`
	Samples      []string `json:"samples"`
	Nonconformal []string `json:"nonconformal,omitempty"` // values that do not fit Expected
}

// Profile is the survey of a whole file.
type Profile struct {
	Rows    int             `json:"rows"`
	Missing []string        `json:"missing,omitempty"` // required headers not found
	Columns []ColumnProfile `json:"columns"`
}

// ProfileCSV surveys CSV bytes against the schema. Malformed rows are skipped.
func (c Config) ProfileCSV(data []byte, opts ...ProfileOptions) (*Profile, error) {
	opt := DefaultProfileOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Comma == 0 {
		opt.Comma = ','
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opt.Comma
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	var rows [][]string
	limit := opt.SampleSize
	if limit <= 0 {
		limit = 100000 // safety cap
	}
	for i := 0; i < limit; i++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}

	p := &Profile{Rows: len(rows)}
	binding := c.bind(headers)
	for _, col := range c.Columns {
		if _, ok := binding.Index[col.Key]; !ok && col.Required {
			p.Missing = append(p.Missing, col.Header)
		}
	}

	bound := make(map[int]ColumnMeta, len(binding.Index))
	for _, col := range c.Columns {
		if idx, ok := binding.Index[col.Key]; ok {
			bound[idx] = col
		}
	}

	for i, h := range headers {
		cp := analyzeColumn(i, rows)
		cp.Header = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cp.Key = ToSnakeCase(cp.Header)
		if meta, ok := bound[i]; ok {
			cp.Bound = true
			cp.Key = meta.Key
			cp.Expected = meta.Kind
			cp.Nonconformal = nonconformal(meta.Kind, i, rows)
		}
		p.Columns = append(p.Columns, cp)
	}
	return p, nil
}

// analyzeColumn inspects all values in a column.
func analyzeColumn(index int, rows [][]string) ColumnProfile {
	cp := ColumnProfile{}
	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)

	for _, row := range rows {
		if index >= len(row) {
			cp.Blank++
			continue
		}
		val := strings.TrimSpace(row[index])
		if val == "" {
			cp.Blank++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}

	cp.Filled = len(values)
	cp.Unique = len(uniqueSet)
	cp.Samples = collectSamples(uniqueSet, 10)
	cp.Detected = detectKind(values)
	return cp
}

// ============================================================================
// KIND DETECTION
// ============================================================================

// detectKind requires 80%+ of non-blank values to match a kind.
// Flag wins over number so 0/1 columns read as flags.
func detectKind(values []string) Kind {
	if len(values) == 0 {
		return KindText
	}

	currencyCount, numCount, flagCount := 0, 0, 0
	for _, v := range values {
		if isCurrency(v) {
			currencyCount++
		}
		if isNumeric(v) {
			numCount++
		}
		if isFlag(v) {
			flagCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	if threshold < 1 {
		threshold = 1
	}
	switch {
	case flagCount >= threshold:
		return KindFlag
	case currencyCount >= threshold:
		return KindCurrency
	case numCount >= threshold:
		return KindNumber
	}
	return KindText
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// isCurrency accepts "$1,234.56" style amounts; a symbol is required.
func isCurrency(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "$") {
		return false
	}
	return isNumeric(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
}

func isFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "yes", "no", "y", "n", "1", "0", "1.0", "0.0":
		return true
	}
	return false
}

// nonconformal lists up to 5 distinct values that do not fit kind.
func nonconformal(kind Kind, index int, rows [][]string) []string {
	fits := func(v string) bool {
		switch kind {
		case KindCurrency:
			return isCurrency(v) || isNumeric(strings.ReplaceAll(v, ",", ""))
		case KindNumber:
			return isNumeric(v)
		case KindFlag:
			return isFlag(v)
		}
		return true
	}

	seen := map[string]bool{}
	var out []string
	for _, row := range rows {
		if index >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[index])
		if v == "" || seen[v] || fits(v) {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == 5 {
			break
		}
	}
	return out
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
