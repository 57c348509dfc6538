package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCartValue converts a major-unit decimal string into minor units,
// rounding half away from zero. The arithmetic is exact, so "10.005" is 1001.
func ParseCartValue(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidCartValue)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCartValue, s)
	}
	return toCents(d)
}

// CartValueFromFloat applies the ParseCartValue rule to a float amount.
func CartValueFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidCartValue, f)
	}
	return toCents(decimal.NewFromFloat(f))
}

func toCents(d decimal.Decimal) (int, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: must be non-negative", ErrInvalidCartValue)
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, fmt.Errorf("%w: too large", ErrInvalidCartValue)
	}
	return int(cents.IntPart()), nil
}
