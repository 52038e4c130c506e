package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// SCHEMA — Describes the columns of a product catalog file
// ============================================================================
// The loader resolves the file's header row against this description.
// Headers match a column by key ("best_seller") or by header text
// ("Best Seller"), ignoring case, spaces, dashes and underscores.
// Headers that match nothing are kept as extra columns.
// ============================================================================

// Kind says how a column's text is interpreted.
type Kind string

const (
	KindText     Kind = "text"
	KindCurrency Kind = "currency"
	KindNumber   Kind = "number"
	KindFlag     Kind = "flag"
)

// Config describes the complete shape of a catalog file.
type Config struct {
	Name    string       `json:"name" yaml:"name"`
	Columns []ColumnMeta `json:"columns" yaml:"columns"`
}

// ColumnMeta describes one expected column.
type ColumnMeta struct {
	Key      string `json:"key" yaml:"key"`
	Header   string `json:"header" yaml:"header"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Required bool   `json:"required" yaml:"required"`
}

// Catalog returns the product catalog schema: Name, Category, Subcategory,
// Price, Stars, Best Seller.
func Catalog() Config {
	return Config{
		Name: "Product Catalog",
		Columns: []ColumnMeta{
			{Key: "name", Header: "Name", Kind: KindText, Required: true},
			{Key: "category", Header: "Category", Kind: KindText, Required: true},
			{Key: "subcategory", Header: "Subcategory", Kind: KindText, Required: true},
			{Key: "price", Header: "Price", Kind: KindCurrency, Required: true},
			{Key: "stars", Header: "Stars", Kind: KindNumber, Required: true},
			{Key: "best_seller", Header: "Best Seller", Kind: KindFlag, Required: true},
		},
	}
}

// WithHeaders returns a copy whose header text is overridden per key.
// Unknown keys are ignored.
func (c Config) WithHeaders(overrides map[string]string) Config {
	out := Config{Name: c.Name, Columns: make([]ColumnMeta, len(c.Columns))}
	copy(out.Columns, c.Columns)
	for i, col := range out.Columns {
		if h, ok := overrides[col.Key]; ok && strings.TrimSpace(h) != "" {
			out.Columns[i].Header = h
		}
	}
	return out
}

// Keys returns all column keys in schema order.
func (c Config) Keys() []string {
	keys := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		keys[i] = col.Key
	}
	return keys
}

// MissingColumnError reports required columns absent from a header row.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// Binding maps schema keys to positions in a header row.
type Binding struct {
	Index  map[string]int // key → column index
	Extras []Extra        // unmatched header columns, in file order
}

// Extra is a header column not described by the schema.
type Extra struct {
	Key    string
	Header string
	Index  int
}

// Resolve binds a header row to the schema. The first header matching a
// column wins; a required column with no header is an error.
func (c Config) Resolve(headers []string) (*Binding, error) {
	b := c.bind(headers)

	var missing []string
	for _, col := range c.Columns {
		if _, ok := b.Index[col.Key]; !ok && col.Required {
			missing = append(missing, col.Header)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}
	return b, nil
}

// bind matches headers to columns without checking required ones.
func (c Config) bind(headers []string) *Binding {
	b := &Binding{Index: make(map[string]int, len(c.Columns))}

	lookup := make(map[string]string, len(c.Columns)*2)
	for _, col := range c.Columns {
		lookup[normalize(col.Key)] = col.Key
		lookup[normalize(col.Header)] = col.Key
	}

	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		key, ok := lookup[normalize(h)]
		if ok {
			if _, taken := b.Index[key]; !taken {
				b.Index[key] = i
				continue
			}
		}
		b.Extras = append(b.Extras, Extra{Key: ToSnakeCase(h), Header: strings.TrimSpace(h), Index: i})
	}
	return b
}

// normalize folds case and drops separators so "Best Seller", "best_seller"
// and "Best-Seller" compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// ToSnakeCase converts "Column Name" → "column_name".
func ToSnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
