package service

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/shipping/model"
)

// Calculator answers the three storefront questions about shipping for
// a given settings revision: what it costs, whether it is free, and
// how much more the customer needs to spend for free shipping.
type Calculator struct {
	settings *model.ShippingSettings
}

func NewCalculator(settings *model.ShippingSettings) *Calculator {
	return &Calculator{settings: settings}
}

// Cost returns the flat fee, or zero once the subtotal reaches the
// free-shipping threshold. An empty cart still pays the fee; carts
// that small never reach checkout anyway.
func (c *Calculator) Cost(subtotal decimal.Decimal) decimal.Decimal {
	if c.IsFreeEligible(subtotal) {
		return decimal.Zero
	}
	return c.settings.ShippingFee
}

// IsFreeEligible reports whether the subtotal qualifies for free
// shipping. The threshold itself qualifies.
func (c *Calculator) IsFreeEligible(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(c.settings.FreeThreshold)
}

// AmountNeeded returns how much more the customer must add to the cart
// to reach free shipping, zero once they qualify.
func (c *Calculator) AmountNeeded(subtotal decimal.Decimal) decimal.Decimal {
	needed := c.settings.FreeThreshold.Sub(subtotal)
	if needed.IsNegative() {
		return decimal.Zero
	}
	return needed
}

// Quote bundles the three answers for the storefront cart widget.
func (c *Calculator) Quote(subtotal decimal.Decimal) *model.ShippingQuote {
	return &model.ShippingQuote{
		Subtotal:      subtotal.String(),
		Cost:          c.Cost(subtotal).String(),
		FreeEligible:  c.IsFreeEligible(subtotal),
		AmountNeeded:  c.AmountNeeded(subtotal).String(),
		FreeThreshold: c.settings.FreeThreshold.String(),
	}
}
