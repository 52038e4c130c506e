package engine

import (
	"math"
	"testing"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

type testProduct struct {
	name, category, subcategory string
	price, stars                Optional[float64]
	best                        int
}

func prod(name, category, subcategory string, price, stars float64, best int) testProduct {
	return testProduct{name, category, subcategory, Some(price), Some(stars), best}
}

var testAdapter = NewDomainAdapter[testProduct]().
	Dimension(KeyName, func(t testProduct) (string, bool) { return t.name, true }).
	Dimension(KeyCategory, func(t testProduct) (string, bool) { return t.category, true }).
	Dimension(KeySubcategory, func(t testProduct) (string, bool) { return t.subcategory, true }).
	Measure(KeyPrice, func(t testProduct) (float64, bool) { return t.price.Get() }).
	Measure(KeyStars, func(t testProduct) (float64, bool) { return t.stars.Get() }).
	Measure(KeyBestSeller, func(t testProduct) (float64, bool) { return float64(t.best), true })

func viewOf(products ...testProduct) RecordView {
	return testAdapter.Bind(products)
}

func sheglamView() RecordView {
	return viewOf(
		prod("Hydrating Lip Balm", "Lips", "Lip Care", 8.00, 4.8, 0),
		prod("Volume Mascara", "Eyes", "Mascara", 12.50, 4.9, 1),
		prod("Matte Lipstick", "Lips", "Lipstick", 10.00, 4.5, 1),
		prod("Glitter Liner", "Eyes", "Eyeliner", 6.00, 4.2, 0),
		prod("Harry Potter | SHEGLAM 2.0 Mini Palette", "Eyes", "Eyeshadow", 18.00, 4.9, 1),
		prod("Care Bears Blush", "Face", "Blush", 9.00, 4.7, 0),
		prod("Care Bears Lip Gloss", "Lips", "Lip Gloss", 7.00, 4.6, 1),
		testProduct{name: "Loose Powder", category: "Face", subcategory: "", price: None[float64](), stars: Some(4.0)},
	)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func assertEqual[T comparable](t *testing.T, got, want T, msg string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

func assertFloat(t *testing.T, got Optional[float64], want float64, msg string) {
	t.Helper()
	if !got.Ok {
		t.Errorf("%s: value absent, want %v", msg, want)
		return
	}
	if math.Abs(got.Value-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", msg, got.Value, want)
	}
}

func assertAbsent(t *testing.T, got Optional[float64], msg string) {
	t.Helper()
	if got.Ok {
		t.Errorf("%s: expected absent, got %v", msg, got.Value)
	}
}

func names(view RecordView) []string {
	out := make([]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		n, _ := view.Dimension(i, KeyName)
		out = append(out, n)
	}
	return out
}
