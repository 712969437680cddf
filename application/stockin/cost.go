package stockin

import (
	"github.com/shopspring/decimal"
)

const costScale = 4

// MovingAverage re-averages a balance's unit cost after receiving inQty units
// at inCost. A balance at or below zero carries no cost weight.
func MovingAverage(oldQty int64, oldAvg decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	if oldQty <= 0 {
		return inCost.Round(costScale)
	}
	total := oldAvg.Mul(decimal.NewFromInt(oldQty)).Add(inCost.Mul(decimal.NewFromInt(inQty)))
	return total.Div(decimal.NewFromInt(oldQty + inQty)).Round(costScale)
}
