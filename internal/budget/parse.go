package budget

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// maxDecimalPlaces bounds the precision of parsed amounts, which keeps
// their string form short.
const maxDecimalPlaces = 8

// ParseAmount parses user-entered money for field. Empty, non-numeric,
// non-finite, and negative input is rejected with a ValidationError.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, invalid(field, s, "amount is required")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return decimal.Zero, invalid(field, s, "must be finite")
		}
		return decimal.Zero, invalid(field, s, "not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, invalid(field, s, "must be finite")
	}
	if f < 0 {
		return decimal.Zero, invalid(field, s, "must not be negative")
	}

	// strconv accepts hex floats and the like; decimal does not.
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, s, "not a number")
	}
	if d.Exponent() < -maxDecimalPlaces {
		return decimal.Zero, invalid(field, s, "too many decimal places")
	}
	return d, nil
}

// NormalizeCategory trims a category name and rejects blank names.
func NormalizeCategory(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", invalid("category", name, "name is required")
	}
	return trimmed, nil
}

func checkAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, d.String(), "must not be negative")
	}
	return nil
}
