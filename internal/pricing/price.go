package pricing

import "github.com/shopspring/decimal"

// ScalePrice returns ceil(basePrice × guests) in whole rupees.
// Negative inputs collapse to zero.
func ScalePrice(basePrice float64, guests int) int64 {
	if basePrice <= 0 || guests <= 0 {
		return 0
	}

	return decimal.NewFromFloat(basePrice).
		Mul(decimal.NewFromInt(int64(guests))).
		Ceil().
		IntPart()
}

// UnitPrice splits a scaled price back into a per-serve price, rounding up.
func UnitPrice(total int64, serves int) int64 {
	if total <= 0 {
		return 0
	}
	if serves <= 1 {
		return total
	}

	return decimal.NewFromInt(total).
		Div(decimal.NewFromInt(int64(serves))).
		Ceil().
		IntPart()
}

// Percent returns amount × pct / 100 rounded half up to whole rupees.
func Percent(amount int64, pct float64) int64 {
	if amount <= 0 || pct <= 0 {
		return 0
	}

	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
