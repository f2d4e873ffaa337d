// Package money converts between the decimal string amounts used at the API
// boundary and the int64 cent amounts stored in the database. All internal
// arithmetic is on cents so sums are exact.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseCents parses a decimal string like "150.00" into cents, rounding to
// the nearest cent. Returns an error for malformed or non-positive amounts.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Mul(hundred).Round(0).IntPart()
	if cents <= 0 {
		return 0, fmt.Errorf("amount must be greater than zero")
	}
	return cents, nil
}

// ParseSignedCents parses a decimal string into cents, rounding to the
// nearest cent. Zero and negative amounts are allowed (initial balances).
func ParseSignedCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// FormatCents renders cents as a decimal string with two fraction digits.
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}

// SplitCents divides totalCents into n parts that sum exactly to totalCents.
// Each part gets the floor share; the first totalCents mod n parts carry one
// extra cent.
func SplitCents(totalCents int64, n int) []int64 {
	base := totalCents / int64(n)
	remainder := totalCents - base*int64(n)

	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
		if int64(i) < remainder {
			parts[i]++
		}
	}
	return parts
}
