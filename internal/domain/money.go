package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRating is the stored rating when none is supplied at creation.
const DefaultRating = "0.00"

// NormalizeAmount parses s as a decimal value and renders it with exactly
// two fraction digits, rounding half up. Price and rating are billing and
// display values; they are never handled as floats.
func NormalizeAmount(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid decimal value %q: %w", s, err)
	}
	return d.StringFixed(2), nil
}
