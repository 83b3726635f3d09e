package services

import (
	"ecshop/internal/core/domain/model/order"
)

// taxRate is the flat consumption tax applied to the discounted subtotal.
// It is not configurable per SKU.
const taxRate = 0.10

// coupon is either a percentage of the subtotal or a fixed amount.
type coupon struct {
	percent float64
	amount  float64
}

// The coupon table is static. A production system would read a coupons
// table; the set below matches the promotions currently in circulation.
func coupons() map[string]coupon {
	return map[string]coupon{
		"WELCOME10": {percent: 0.10},
		"SAVE500":   {amount: 500},
		"FREESHIP":  {},
	}
}

// PriceLine is the pricing-relevant slice of a cart line.
type PriceLine struct {
	UnitPrice float64
	Quantity  int
}

// PricingEngine computes the monetary breakdown of an order. It is a pure
// function of its inputs: no I/O, no clock, no randomness.
//
// The computation:
//
//	subtotal       = sum(unitPrice * quantity), unrounded
//	couponDiscount = percentage coupons: round2(subtotal * percent)
//	                 fixed coupons:      min(amount, subtotal)
//	taxAmount      = round2((subtotal - couponDiscount) * 0.10)
//	total          = (subtotal - couponDiscount) + taxAmount + shippingCost
//
// Unknown coupon codes apply a zero discount rather than failing: a typo'd
// code degrades gracefully instead of blocking checkout.
type PricingEngine struct{}

// NewPricingEngine creates a pricing engine.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// ComputeTotals prices the given lines with the given shipping method and
// optional coupon code. The shipping method must be valid; callers reject
// unknown methods at the boundary, and this engine re-checks as a guard.
func (PricingEngine) ComputeTotals(
	lines []PriceLine,
	method order.ShippingMethod,
	couponCode string,
) (order.Totals, error) {
	if err := method.Validate(); err != nil {
		return order.Totals{}, err
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	couponDiscount := couponDiscountFor(couponCode, subtotal)
	taxable := subtotal - couponDiscount
	taxAmount := order.Round2(taxable * taxRate)
	shippingCost := method.Cost()

	return order.Totals{
		Subtotal:       subtotal,
		CouponDiscount: couponDiscount,
		TaxAmount:      taxAmount,
		ShippingCost:   shippingCost,
		Total:          taxable + taxAmount + shippingCost,
	}, nil
}

// couponDiscountFor resolves a coupon code against the subtotal.
// Fixed-amount coupons are capped at the subtotal so the discounted
// subtotal can never go negative.
func couponDiscountFor(code string, subtotal float64) float64 {
	if code == "" {
		return 0
	}

	c, ok := coupons()[code]
	if !ok {
		return 0
	}

	if c.percent > 0 {
		return order.Round2(subtotal * c.percent)
	}
	return min(c.amount, subtotal)
}
