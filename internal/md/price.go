package md

import "github.com/shopspring/decimal"

// PriceToSample shifts price by scale decimal digits and rounds half away
// from zero, so 187.255 at scale 2 becomes 18726.
func PriceToSample(price float64, scale int32) int64 {
	return decimal.NewFromFloat(price).Shift(scale).Round(0).IntPart()
}

// SampleToPrice reverses PriceToSample for display.
func SampleToPrice(value int64, scale int32) string {
	return decimal.New(value, -scale).StringFixed(scale)
}
