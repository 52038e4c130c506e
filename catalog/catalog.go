package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spektr-org/lookbook/engine"
	"github.com/spektr-org/lookbook/schema"
)

// ============================================================================
// CATALOG — Loads a product CSV into an immutable, typed table
// ============================================================================
// Only the price column is validated: a present price that does not parse
// fails the whole load. Everything else is kept as found, with blank cells
// read as missing.
// ============================================================================

// Product is one catalog row.
type Product struct {
	Name        engine.Optional[string]
	Category    engine.Optional[string]
	Subcategory engine.Optional[string]
	Price       engine.Optional[float64]
	Stars       engine.Optional[float64]
	BestSeller  int               // 0 or 1
	Extra       map[string]string // columns outside the schema, by snake_case key
}

// Catalog is a loaded product table. It is never modified after Parse.
type Catalog struct {
	products []Product
	extras   []string
}

// Option configures parsing.
type Option func(*parseConfig)

type parseConfig struct {
	schema schema.Config
	comma  rune
}

// WithSchema replaces the default column schema.
func WithSchema(s schema.Config) Option {
	return func(c *parseConfig) {
		c.schema = s
	}
}

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) Option {
	return func(c *parseConfig) {
		c.comma = r
	}
}

// Load reads a catalog file from disk.
func Load(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Printf("📦 Lookbook: loaded %d products from %s", cat.Len(), path)
	return cat, nil
}

// Parse reads a delimited catalog with a header row. It fails fast: a bad
// price or a malformed record returns an error and no catalog.
func Parse(r io.Reader, opts ...Option) (*Catalog, error) {
	cfg := &parseConfig{schema: schema.Catalog(), comma: ','}
	for _, opt := range opts {
		opt(cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.comma

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog is empty: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	binding, err := cfg.schema.Resolve(headers)
	if err != nil {
		return nil, err
	}

	kinds := make(map[string]schema.Kind, len(cfg.schema.Columns))
	for _, col := range cfg.schema.Columns {
		kinds[col.Key] = col.Kind
	}

	cat := &Catalog{}
	for _, ex := range binding.Extras {
		cat.extras = append(cat.extras, ex.Key)
	}

	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		p, err := buildProduct(row, binding, kinds)
		if err != nil {
			var mp *MalformedPriceError
			if errors.As(err, &mp) {
				mp.Row = rowNum
			}
			return nil, err
		}
		cat.products = append(cat.products, p)
	}

	return cat, nil
}

func buildProduct(row []string, b *schema.Binding, kinds map[string]schema.Kind) (Product, error) {
	cell := func(key string) string {
		idx, ok := b.Index[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	p := Product{
		Name:        text(cell(engine.KeyName)),
		Category:    text(cell(engine.KeyCategory)),
		Subcategory: text(cell(engine.KeySubcategory)),
	}

	for _, key := range []string{engine.KeyPrice, engine.KeyStars, engine.KeyBestSeller} {
		raw := cell(key)
		switch kinds[key] {
		case schema.KindCurrency:
			v, err := ParsePrice(raw)
			if err != nil {
				var mp *MalformedPriceError
				if errors.As(err, &mp) {
					mp.Column = key
				}
				return Product{}, err
			}
			setMeasure(&p, key, v)
		case schema.KindFlag:
			setMeasure(&p, key, engine.Some(float64(flag(raw))))
		default:
			setMeasure(&p, key, number(raw))
		}
	}

	if len(b.Extras) > 0 {
		p.Extra = make(map[string]string, len(b.Extras))
		for _, ex := range b.Extras {
			if ex.Index < len(row) {
				p.Extra[ex.Key] = row[ex.Index]
			}
		}
	}
	return p, nil
}

func setMeasure(p *Product, key string, v engine.Optional[float64]) {
	switch key {
	case engine.KeyPrice:
		p.Price = v
	case engine.KeyStars:
		p.Stars = v
	case engine.KeyBestSeller:
		if v.Ok && v.Value == 1 {
			p.BestSeller = 1
		}
	}
}

func text(s string) engine.Optional[string] {
	if s == "" {
		return engine.None[string]()
	}
	return engine.Some(s)
}

// number parses a plain numeric cell; blank, unparseable, NaN or Inf reads
// as missing.
func number(s string) engine.Optional[float64] {
	if s == "" {
		return engine.None[float64]()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return engine.None[float64]()
	}
	return engine.Some(v)
}

// flag reads 1/true/yes as 1 and everything else, including blank, as 0.
func flag(s string) int {
	switch strings.ToLower(s) {
	case "1", "1.0", "true", "yes", "y":
		return 1
	}
	return 0
}

// ============================================================================
// ACCESSORS
// ============================================================================

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Product returns the i-th product.
func (c *Catalog) Product(i int) Product { return c.products[i] }

// Products returns a copy of all products.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// ExtraColumns lists the non-schema columns carried on each product.
func (c *Catalog) ExtraColumns() []string {
	return append([]string(nil), c.extras...)
}

// Categories returns distinct non-missing categories in first-seen order.
func (c *Catalog) Categories() []string {
	return engine.UniqueValues(c.View(), engine.KeyCategory)
}

var productAdapter = engine.NewDomainAdapter[Product]().
	Dimension(engine.KeyName, func(p Product) (string, bool) { return p.Name.Get() }).
	Dimension(engine.KeyCategory, func(p Product) (string, bool) { return p.Category.Get() }).
	Dimension(engine.KeySubcategory, func(p Product) (string, bool) { return p.Subcategory.Get() }).
	Measure(engine.KeyPrice, func(p Product) (float64, bool) { return p.Price.Get() }).
	Measure(engine.KeyStars, func(p Product) (float64, bool) { return p.Stars.Get() }).
	Measure(engine.KeyBestSeller, func(p Product) (float64, bool) { return float64(p.BestSeller), true })

// View exposes the catalog to the engine without copying.
func (c *Catalog) View() engine.RecordView {
	return productAdapter.Bind(c.products)
}

// FromProducts builds a catalog from in-memory products.
func FromProducts(products []Product) *Catalog {
	return &Catalog{products: append([]Product(nil), products...)}
}
