package utils

import "github.com/shopspring/decimal"

// GSTRate is the flat tax applied to every cab fare.
var GSTRate = decimal.RequireFromString("0.05")

// FareBreakdown is the base/tax/total split printed on an invoice.
type FareBreakdown struct {
	Base  float64
	GST   float64
	Total float64
}

// ComputeFare splits a base fare into GST and total. Both are rounded half-up
// to two decimals, so Total == round(Base + round(Base*0.05, 2), 2) holds exactly.
func ComputeFare(base float64) FareBreakdown {
	b := decimal.NewFromFloat(base).Round(2)
	gst := b.Mul(GSTRate).Round(2)
	total := b.Add(gst).Round(2)

	return FareBreakdown{
		Base:  b.InexactFloat64(),
		GST:   gst.InexactFloat64(),
		Total: total.InexactFloat64(),
	}
}

// RoundMoney rounds to two decimals half-up.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
