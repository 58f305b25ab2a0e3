// Package core implements the contribution classification and aggregation
// engine. Rounding helpers live here: monetary values are reported with two
// decimal places and percentages with one, both using half-up rounding
// (decimal.Round rounds half away from zero, which is half-up for the
// non-negative values the engine produces).
package core

import "github.com/shopspring/decimal"

// money rounds a monetary amount to 2 decimal places.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// percentage computes part/whole*100 rounded to 1 decimal place, or 0 when
// the denominator is not positive. Division never panics on zero input.
func percentage(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
