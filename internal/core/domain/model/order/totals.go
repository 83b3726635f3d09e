package order

import "math"

// Totals is the monetary breakdown of an order as computed by the pricing
// engine. All amounts are in the order currency.
//
// Invariant: Total = (Subtotal - CouponDiscount) + TaxAmount + ShippingCost.
type Totals struct {
	Subtotal       float64
	CouponDiscount float64
	TaxAmount      float64
	ShippingCost   float64
	Total          float64
}

// Round2 rounds an amount to 2 decimal places, the precision used for all
// derived monetary values.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
