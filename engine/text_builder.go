package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ============================================================================
// TEXT BUILDER — Headline sentence and product-name word counts
// ============================================================================
// All functions operate on RecordView: zero-copy access to any data source.
// ============================================================================

// DefaultHeadline is the headline template used unless WithHeadline is set.
const DefaultHeadline = "Showing {count} of {total} products ({categories}). " +
	"Average price {avg_price}, average rating {avg_stars}, {best_sellers} best sellers. " +
	"Top rated: {top_product}."

// BuildHeadline fills a headline template from a built dashboard.
//
// Placeholders: {count} {total} {categories} {avg_price} {avg_stars}
// {best_sellers} {top_product} {tagged}. Unknown placeholders are removed.
func BuildHeadline(d *Dashboard, template string) *TextData {
	if template == "" {
		template = DefaultHeadline
	}

	values := map[string]string{
		"{count}":        FormatInt(d.Main.FilteredCount),
		"{total}":        FormatInt(d.Main.CatalogCount),
		"{categories}":   categoriesLabel(d.Selection),
		"{avg_price}":    "n/a",
		"{avg_stars}":    "n/a",
		"{best_sellers}": FormatInt(d.Visuals.BestVsRegular.BestSeller.Count),
		"{top_product}":  "none",
		"{tagged}":       FormatInt(d.Collections.Tagged),
	}
	for _, st := range d.Main.Summary {
		if !st.Mean.Ok {
			continue
		}
		switch st.Column {
		case KeyPrice:
			values["{avg_price}"] = FormatCurrency(st.Mean.Value, "$")
		case KeyStars:
			values["{avg_stars}"] = fmt.Sprintf("%.2f", st.Mean.Value)
		}
	}
	if len(d.Main.TopRated) > 0 {
		values["{top_product}"] = d.Main.TopRated[0].Name.Or("unnamed")
	}

	return &TextData{
		Reply:      ResolvePlaceholders(template, values),
		Count:      d.Main.FilteredCount,
		Total:      d.Main.CatalogCount,
		Categories: append([]string{}, d.Selection...),
	}
}

func categoriesLabel(selection []string) string {
	switch len(selection) {
	case 0:
		return "no categories selected"
	case 1:
		return selection[0]
	}
	return strings.Join(selection[:len(selection)-1], ", ") + " and " + selection[len(selection)-1]
}

// ============================================================================
// PLACEHOLDER RESOLUTION
// ============================================================================

// ResolvePlaceholders substitutes values into a template and strips any
// placeholder left unresolved.
func ResolvePlaceholders(template string, values map[string]string) string {
	result := template
	for placeholder, value := range values {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return stripUnresolvedPlaceholders(result)
}

var placeholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

func stripUnresolvedPlaceholders(text string) string {
	cleaned := placeholderRegex.ReplaceAllString(text, "")
	// Clean up double spaces left behind
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return strings.TrimSpace(cleaned)
}

// ============================================================================
// WORD COUNTS
// ============================================================================

var (
	wordRegex = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}']+`)
	digitsRe  = regexp.MustCompile(`^[\p{N}']+$`)
)

// nameStopwords are words too common in product names to say anything.
var nameStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "of": true, "with": true,
	"for": true, "in": true, "on": true, "to": true, "by": true, "at": true,
	"or": true, "is": true, "it": true, "its": true, "my": true, "your": true,
	"you": true, "me": true,
}

// WordFrequencies counts the words of product names, lowercased, ignoring
// stopwords, bare numbers and one-letter tokens. Most frequent first, ties
// alphabetical, at most n entries. n <= 0 yields none.
func WordFrequencies(view RecordView, n int) []WordCount {
	if n <= 0 {
		return []WordCount{}
	}

	counts := make(map[string]int)
	for i := 0; i < view.Len(); i++ {
		name, ok := view.Dimension(i, KeyName)
		if !ok {
			continue
		}
		for _, w := range wordRegex.FindAllString(strings.ToLower(name), -1) {
			w = strings.Trim(w, "'")
			if len([]rune(w)) < 2 || nameStopwords[w] || digitsRe.MatchString(w) {
				continue
			}
			counts[w]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
