package engine

import (
	"strings"
	"testing"
)

func defaultTagger(t *testing.T) *Tagger {
	t.Helper()
	tagger, err := NewTagger(DefaultCollections)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}
	return tagger
}

func TestTaggerMatch(t *testing.T) {
	tagger := defaultTagger(t)

	tests := []struct {
		name  string
		label string
		ok    bool
	}{
		{"Harry Potter | SHEGLAM 2.0 Mini Palette", "Harry Potter | SHEGLAM 2.0", true},
		{"harry potter | sheglam 1.0 wand", "Harry Potter | SHEGLAM 1.0", true},
		{"HarryPotter|SHEGLAM 2.0 Cloak", "Harry Potter | SHEGLAM 2.0", true},
		{"Care   Bears Cheek Tint", "Care Bears", true},
		{"CAREBEARS blush", "Care Bears", true},
		{"The Powerpuff Girls Gloss Trio", "The Powerpuff Girls", true},
		{"Chroma Zone 2.0 Palette", "Chroma Zone 2.0", true},
		{"Chroma Zone 2X0 Palette", "", false},
		{"Plain Lip Balm", "", false},
		{"Care", "", false},
	}
	for _, tt := range tests {
		label, ok := tagger.Match(tt.name)
		if ok != tt.ok || label != tt.label {
			t.Errorf("Match(%q) = %q, %v; want %q, %v", tt.name, label, ok, tt.label, tt.ok)
		}
	}
}

func TestTaggerListOrderWins(t *testing.T) {
	tagger := defaultTagger(t)

	// Harley Quinn appears first in the name but later in the list.
	label, ok := tagger.Match("Harley Quinn x Adventure Time Kit")
	if !ok || label != "Adventure Time" {
		t.Errorf("got %q, want Adventure Time", label)
	}

	reversed, err := NewTagger([]string{"Harley Quinn", "Adventure Time"})
	if err != nil {
		t.Fatal(err)
	}
	label, _ = reversed.Match("Harley Quinn x Adventure Time Kit")
	assertEqual(t, label, "Harley Quinn", "custom order")
}

func TestTaggerDeterministic(t *testing.T) {
	tagger := defaultTagger(t)
	first := tagger.Tag(sheglamView())
	second := tagger.Tag(sheglamView())
	for i := 0; i < first.Len(); i++ {
		if first.Label(i) != second.Label(i) {
			t.Errorf("row %d: %v vs %v", i, first.Label(i), second.Label(i))
		}
	}
}

func TestTaggerLabels(t *testing.T) {
	tagger := defaultTagger(t)
	labels := tagger.Labels()
	assertEqual(t, len(labels), 16, "collection count")
	assertEqual(t, labels[0], "Adventure Time", "first")
	assertEqual(t, labels[15], "Willy Wonka", "last")
}

func TestCollectionPattern(t *testing.T) {
	re, err := CollectionPattern("Rick and Morty")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"rick and morty", "RickandMorty", "Rick  and\tMorty"} {
		if !re.MatchString(s) {
			t.Errorf("pattern should match %q", s)
		}
	}
	if re.MatchString("Rick & Morty") {
		t.Error("tokens are literal")
	}

	if _, err := CollectionPattern("   "); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := NewTagger([]string{"Care Bears", ""}); err == nil {
		t.Error("expected NewTagger to reject a blank name")
	}
}

func TestTag(t *testing.T) {
	tagged := defaultTagger(t).Tag(sheglamView())
	assertEqual(t, tagged.Len(), 8, "tagged view keeps every row")

	if l := tagged.Label(4); l.Value != "Harry Potter | SHEGLAM 2.0" {
		t.Errorf("palette label = %v", l)
	}
	if tagged.Label(0).Ok {
		t.Error("lip balm should be untagged")
	}
	if c, ok := tagged.Dimension(5, KeyCollection); !ok || c != "Care Bears" {
		t.Errorf("collection dimension = %q, %v", c, ok)
	}
	if cat, _ := tagged.Dimension(5, KeyCategory); cat != "Face" {
		t.Errorf("parent dimensions should pass through, got %q", cat)
	}

	labeled := tagged.Labeled()
	assertEqual(t, strings.Join(names(labeled), ","),
		"Harry Potter | SHEGLAM 2.0 Mini Palette,Care Bears Blush,Care Bears Lip Gloss", "labeled rows")

	rows := Rows(labeled)
	assertEqual(t, rows[1].Collection.Value, "Care Bears", "row collection")
}

func TestAvgPricePerCollection(t *testing.T) {
	labeled := defaultTagger(t).Tag(sheglamView()).Labeled()
	groups := AvgPricePerCollection(labeled)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	assertEqual(t, groups[0].Key, "Harry Potter | SHEGLAM 2.0", "most expensive first")
	assertFloat(t, groups[0].Means[KeyPrice], 18.00, "HP price")
	assertEqual(t, groups[1].Key, "Care Bears", "second")
	assertFloat(t, groups[1].Means[KeyPrice], 8.00, "Care Bears price")
}

func TestCollectionSummary(t *testing.T) {
	labeled := defaultTagger(t).Tag(sheglamView()).Labeled()
	s := CollectionSummary(labeled)

	assertEqual(t, strings.Join(s.Labels, ","), "Care Bears,Harry Potter | SHEGLAM 2.0", "ascending labels")
	assertEqual(t, len(s.Total), len(s.Labels), "parallel totals")
	assertEqual(t, len(s.BestSellers), len(s.Labels), "parallel best sellers")
	assertEqual(t, s.Total[0], 2, "Care Bears total")
	assertEqual(t, s.BestSellers[0], 1, "Care Bears best")
	assertEqual(t, s.Total[1], 1, "HP total")
	assertEqual(t, s.BestSellers[1], 1, "HP best")
	for i := range s.Labels {
		if s.BestSellers[i] > s.Total[i] {
			t.Errorf("%s: best sellers exceed total", s.Labels[i])
		}
	}
}

func TestCollectionsNoMatches(t *testing.T) {
	labeled := defaultTagger(t).Tag(viewOf(prod("Plain Balm", "Lips", "x", 3, 4, 0))).Labeled()
	assertEqual(t, len(AvgPricePerCollection(labeled)), 0, "avg price")
	s := CollectionSummary(labeled)
	if s.Labels == nil || len(s.Labels) != 0 {
		t.Errorf("expected empty non-nil labels, got %v", s.Labels)
	}
}
