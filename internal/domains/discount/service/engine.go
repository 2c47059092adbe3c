package service

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/discount/model"
)

var hundred = decimal.NewFromInt(100)

// Engine holds the pure discount rules: eligibility checks and amount
// computation. It touches no storage so it can be tested in isolation.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Validate runs the eligibility checks in a fixed order and returns a
// quote for the given cart total. rec is nil when no active code
// matched the customer's input.
//
// The order matters: a bad cart total is reported before any code
// lookup result, and expiry before exhaustion, so the customer always
// sees the most actionable failure.
func (e *Engine) Validate(rec *model.DiscountCode, cartTotal decimal.Decimal, now time.Time) (*model.DiscountQuote, error) {
	if !cartTotal.IsPositive() {
		return nil, model.ErrInvalidCartTotal
	}

	if rec == nil || rec.Status != model.StatusActive {
		return nil, model.ErrNotFound
	}

	if rec.IsExpired(now) {
		return nil, model.ErrExpired
	}

	if rec.IsExhausted() {
		return nil, model.ErrExhausted
	}

	if rec.MinAmount != nil && cartTotal.LessThan(*rec.MinAmount) {
		return nil, model.NewBelowMinimumError(rec.MinAmount.String(), cartTotal.String())
	}

	discount := e.Calculate(rec, cartTotal)
	finalTotal := cartTotal.Sub(discount)

	return &model.DiscountQuote{
		Valid:          true,
		Code:           rec.Code,
		Type:           string(rec.Type),
		Value:          rec.Value.String(),
		DiscountAmount: discount.String(),
		FinalTotal:     finalTotal.String(),
		Description:    rec.Description,
	}, nil
}

// Calculate computes the discount amount for an eligible code.
// Percentage discounts are capped by MaxDiscount when set; fixed
// discounts never exceed the cart total, so the final total cannot go
// negative. Amounts are rounded half-up to whole THB.
func (e *Engine) Calculate(rec *model.DiscountCode, cartTotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal

	switch rec.Type {
	case model.DiscountTypePercentage:
		discount = cartTotal.Mul(rec.Value).Div(hundred)
		if rec.MaxDiscount != nil && discount.GreaterThan(*rec.MaxDiscount) {
			discount = *rec.MaxDiscount
		}
	case model.DiscountTypeFixed:
		discount = rec.Value
		if discount.GreaterThan(cartTotal) {
			discount = cartTotal
		}
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount.Round(0)
}
