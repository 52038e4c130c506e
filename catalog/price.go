package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/lookbook/engine"
)

// priceStripper removes the currency symbol and thousands separators.
var priceStripper = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")

// MalformedPriceError reports a price cell that is present but not a number.
type MalformedPriceError struct {
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
}

func (e *MalformedPriceError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: malformed %s %q", e.Row, e.Column, e.Value)
	}
	return fmt.Sprintf("malformed %s %q", e.Column, e.Value)
}

// ParsePrice normalizes a price like "$1,234.56", "$12" or "8.5" to a float.
// A blank cell is absent. Anything else that does not parse to a finite,
// non-negative number is a *MalformedPriceError.
func ParsePrice(raw string) (engine.Optional[float64], error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return engine.None[float64](), nil
	}

	cleaned := priceStripper.Replace(trimmed)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return engine.None[float64](), &MalformedPriceError{Column: "price", Value: raw}
	}
	return engine.Some(v), nil
}

// FormatPrice renders a price the way the catalog stores it.
func FormatPrice(v float64) string {
	return engine.FormatCurrency(v, "$")
}
