// Package pricing implements the storefront price arithmetic: discount
// application, per-line unit prices, and cart totals. Everything here is a
// pure function over float64 amounts in whole currency units; rounding
// happens only at tax computation, never in intermediate sums.
package pricing

import (
	"math"

	"github.com/velmora/storefront-backend/internal/app/model"
)

// Line is the minimal shape totals need from a cart or order line.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Summary is the derived cart summary. It is recomputed from the full line
// set after every mutation and never cached across mutations.
type Summary struct {
	Subtotal       float64 `json:"subtotal"`
	Tax            float64 `json:"tax"`
	DeliveryFee    float64 `json:"delivery_fee"`
	CouponDiscount float64 `json:"coupon_discount"`
	Total          float64 `json:"total"`
}

// DiscountedPrice applies a percentage or fixed reduction to original.
// A nil kind or a value <= 0 leaves the price unchanged; the result is
// clamped so a discount never drives a price below zero.
func DiscountedPrice(original float64, kind *model.DiscountKind, value float64) float64 {
	if kind == nil || value <= 0 {
		return original
	}

	discounted := original
	switch *kind {
	case model.DiscountPercentage:
		discounted = original - original*value/100
	case model.DiscountFixed:
		discounted = original - value
	}

	return math.Max(discounted, 0)
}

// ProductBasePrice resolves a product's effective base price under its
// discount, if any. An inactive (zero-value) discount behaves exactly like
// no discount.
func ProductBasePrice(original float64, discount *model.Discount) float64 {
	if !discount.IsActive() {
		return original
	}
	kind := discount.Kind
	return DiscountedPrice(original, &kind, discount.Value)
}

// LineUnitPrice is the discounted base price plus the color's additive
// extra price. Variant pricing is additive only.
func LineUnitPrice(basePrice, colorExtraPrice float64) float64 {
	return basePrice + colorExtraPrice
}

// LineTotal is the line's contribution to the subtotal.
func LineTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// CartTotals composes the summary: subtotal is the literal sum of line
// totals, tax is rounded to the nearest currency unit, and the coupon
// discount is subtracted last. Callers must reject any coupon whose
// discount exceeds subtotal + delivery + tax, so the total stays >= 0.
func CartTotals(lines []Line, taxRate, deliveryFee, couponDiscount float64) Summary {
	var subtotal float64
	for _, line := range lines {
		subtotal += LineTotal(line.UnitPrice, line.Quantity)
	}

	tax := math.Round(subtotal * taxRate)

	return Summary{
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryFee:    deliveryFee,
		CouponDiscount: couponDiscount,
		Total:          subtotal + deliveryFee + tax - couponDiscount,
	}
}

// MaxCouponDiscount is the ceiling a coupon may take off a cart: the full
// pre-coupon amount due.
func MaxCouponDiscount(lines []Line, taxRate, deliveryFee float64) float64 {
	s := CartTotals(lines, taxRate, deliveryFee, 0)
	return s.Total
}

// ClampQuantity forces a requested quantity into [1, max]. Out-of-range
// input clamps rather than errors.
func ClampQuantity(quantity, max int) int {
	if quantity < 1 {
		return 1
	}
	if quantity > max {
		return max
	}
	return quantity
}
