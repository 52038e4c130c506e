package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// ============================================================================
// COLLECTIONS — crossover product lines found in product names
// ============================================================================
// Each collection name compiles to its own case-insensitive matcher where the
// whitespace between words may vary ("Harry  Potter", "HarryPotter"). The
// matchers are tried in list order and the first hit labels the product, so
// the list order is the tie-break when two collections could match.
// ============================================================================

// DefaultCollections is the fixed, ordered list of known collections.
var DefaultCollections = []string{
	"Adventure Time",
	"Harry Potter | SHEGLAM 2.0",
	"Harley Quinn",
	"Rick and Morty",
	"Crimson Butterfly",
	"Hello Kitty | SHEGLAM",
	"The Powerpuff Girls",
	"Ember Rose",
	"Cosmic Come Up",
	"Harry Potter | SHEGLAM 1.0",
	"Chroma Zone 2.0",
	"Care Bears",
	"Corpse Bride",
	"Marilyn Monroe",
	"Frida Kahlo",
	"Willy Wonka",
}

// Collection pairs a label with its name matcher.
type Collection struct {
	Label   string
	matcher *regexp.Regexp
}

// Tagger assigns at most one collection label per product name.
type Tagger struct {
	collections []Collection
}

// NewTagger compiles one matcher per collection name, keeping order.
func NewTagger(names []string) (*Tagger, error) {
	t := &Tagger{collections: make([]Collection, 0, len(names))}
	for _, name := range names {
		re, err := CollectionPattern(name)
		if err != nil {
			return nil, err
		}
		t.collections = append(t.collections, Collection{Label: strings.TrimSpace(name), matcher: re})
	}
	return t, nil
}

// CollectionPattern builds the matcher for a collection name: each
// whitespace-separated token is matched literally, case-insensitively, and
// any amount of whitespace (including none) may sit between tokens.
func CollectionPattern(name string) (*regexp.Regexp, error) {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty collection name")
	}
	for i, tok := range tokens {
		tokens[i] = regexp.QuoteMeta(tok)
	}
	return regexp.Compile(`(?i)` + strings.Join(tokens, `\s*`))
}

// Labels returns the collection labels in match order.
func (t *Tagger) Labels() []string {
	out := make([]string, len(t.collections))
	for i, c := range t.collections {
		out[i] = c.Label
	}
	return out
}

// Match returns the label of the first collection found in name.
func (t *Tagger) Match(name string) (string, bool) {
	for _, c := range t.collections {
		if c.matcher.MatchString(name) {
			return c.Label, true
		}
	}
	return "", false
}

// Tag labels every row of view by its name. The returned view answers the
// "collection" dimension; Labeled() narrows it to matched rows.
func (t *Tagger) Tag(view RecordView) *TaggedView {
	labels := make([]Optional[string], view.Len())
	for i := range labels {
		name, ok := view.Dimension(i, KeyName)
		if !ok {
			continue
		}
		if label, ok := t.Match(name); ok {
			labels[i] = Some(label)
		}
	}
	return newTaggedView(view, KeyCollection, labels)
}

// AvgPricePerCollection returns the mean price per collection, rounded to 2
// decimals, most expensive first.
func AvgPricePerCollection(labeled RecordView) []Group {
	groups := GroupMean(labeled, KeyCollection, []string{KeyPrice})
	SortGroups(groups, "value_desc")
	return groups
}

// CollectionSummary returns product and best-seller counts per collection as
// parallel series in ascending label order.
func CollectionSummary(labeled RecordView) CollectionTotals {
	groups := groupBySingle(labeled, KeyCollection)
	SortGroups(groups, "label_asc")

	out := CollectionTotals{
		Labels:      make([]string, 0, len(groups)),
		Total:       make([]int, 0, len(groups)),
		BestSellers: make([]int, 0, len(groups)),
	}
	for _, g := range groups {
		best := 0
		for i := 0; i < g.View.Len(); i++ {
			if isBestSeller(g.View, i) {
				best++
			}
		}
		out.Labels = append(out.Labels, g.Key)
		out.Total = append(out.Total, g.View.Len())
		out.BestSellers = append(out.BestSellers, best)
	}
	return out
}
