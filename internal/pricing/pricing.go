// Package pricing computes subscription totals.
package pricing

import "github.com/shopspring/decimal"

// WeeksPerMonth approximates the number of delivery weeks billed per month.
var WeeksPerMonth = decimal.RequireFromString("4.3")

// MinorUnits is the number of decimal places a total is rounded to.
const MinorUnits = 2

// ComputeTotalPrice returns unitPrice × mealTypes × deliveryDays × WeeksPerMonth.
// Callers validate that the counts are positive and the price is greater than zero.
func ComputeTotalPrice(unitPrice decimal.Decimal, mealTypes, deliveryDays int) decimal.Decimal {
	return unitPrice.
		Mul(decimal.NewFromInt(int64(mealTypes))).
		Mul(decimal.NewFromInt(int64(deliveryDays))).
		Mul(WeeksPerMonth).
		Round(MinorUnits)
}
