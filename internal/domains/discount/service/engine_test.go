package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/discount/model"
)

func activeCode(mutate func(*model.DiscountCode)) *model.DiscountCode {
	d := &model.DiscountCode{
		Code:   "SAVE10",
		Type:   model.DiscountTypePercentage,
		Value:  decimal.NewFromInt(10),
		Status: model.StatusActive,
	}
	if mutate != nil {
		mutate(d)
	}
	return d
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

func TestEngineValidate_PercentageQuote(t *testing.T) {
	e := NewEngine()

	quote, err := e.Validate(activeCode(nil), dec("500"), time.Now())
	require.NoError(t, err)

	assert.True(t, quote.Valid)
	assert.Equal(t, "SAVE10", quote.Code)
	assert.Equal(t, "10", quote.Value)
	assert.Equal(t, "50", quote.DiscountAmount)
	assert.Equal(t, "450", quote.FinalTotal)
}

func TestEngineValidate_QuoteCarriesCodeValue(t *testing.T) {
	e := NewEngine()

	// The storefront renders the code's configured value ("10% off")
	// alongside the computed amount, so it must survive serialization.
	quote, err := e.Validate(activeCode(nil), dec("500"), time.Now())
	require.NoError(t, err)

	body, err := json.Marshal(quote)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"value":"10"`)

	fixed := activeCode(func(d *model.DiscountCode) {
		d.Type = model.DiscountTypeFixed
		d.Value = dec("75")
	})
	quote, err = e.Validate(fixed, dec("500"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "75", quote.Value)
}

func TestEngineValidate_PercentageCappedByMaxDiscount(t *testing.T) {
	e := NewEngine()
	rec := activeCode(func(d *model.DiscountCode) {
		d.MaxDiscount = ptr(dec("100"))
	})

	quote, err := e.Validate(rec, dec("5000"), time.Now())
	require.NoError(t, err)

	// 10% of 5000 is 500, capped at 100
	assert.Equal(t, "100", quote.DiscountAmount)
	assert.Equal(t, "4900", quote.FinalTotal)
}

func TestEngineValidate_FixedClampedToCartTotal(t *testing.T) {
	e := NewEngine()
	rec := activeCode(func(d *model.DiscountCode) {
		d.Type = model.DiscountTypeFixed
		d.Value = dec("200")
	})

	quote, err := e.Validate(rec, dec("150"), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "150", quote.DiscountAmount)
	assert.Equal(t, "0", quote.FinalTotal)
}

func TestEngineCalculate_RoundsHalfUp(t *testing.T) {
	e := NewEngine()
	rec := activeCode(func(d *model.DiscountCode) {
		d.Value = dec("7.5")
	})

	// 7.5% of 333 = 24.975 -> 25
	got := e.Calculate(rec, dec("333"))
	assert.Equal(t, "25", got.String())
}

func TestEngineValidate_InvalidCartTotal(t *testing.T) {
	e := NewEngine()

	for _, total := range []string{"0", "-1"} {
		_, err := e.Validate(activeCode(nil), dec(total), time.Now())
		assert.Equal(t, model.ErrInvalidCartTotal, err, "cart total %s", total)
	}
}

func TestEngineValidate_CartTotalCheckedBeforeLookup(t *testing.T) {
	e := NewEngine()

	// A missing record must not mask the cart-total failure.
	_, err := e.Validate(nil, dec("0"), time.Now())
	assert.Equal(t, model.ErrInvalidCartTotal, err)
}

func TestEngineValidate_NotFound(t *testing.T) {
	e := NewEngine()

	_, err := e.Validate(nil, dec("100"), time.Now())
	assert.Equal(t, model.ErrNotFound, err)

	inactive := activeCode(func(d *model.DiscountCode) {
		d.Status = model.StatusInactive
	})
	_, err = e.Validate(inactive, dec("100"), time.Now())
	assert.Equal(t, model.ErrNotFound, err)
}

func TestEngineValidate_Expired(t *testing.T) {
	e := NewEngine()
	now := time.Now()

	rec := activeCode(func(d *model.DiscountCode) {
		d.EndDate = ptr(now.Add(-time.Minute))
	})
	_, err := e.Validate(rec, dec("100"), now)
	assert.Equal(t, model.ErrExpired, err)

	// end date exactly now is still valid
	rec = activeCode(func(d *model.DiscountCode) {
		d.EndDate = ptr(now)
	})
	_, err = e.Validate(rec, dec("100"), now)
	assert.NoError(t, err)
}

func TestEngineValidate_ExpiryReportedBeforeExhaustion(t *testing.T) {
	e := NewEngine()
	now := time.Now()

	rec := activeCode(func(d *model.DiscountCode) {
		d.EndDate = ptr(now.Add(-time.Hour))
		d.MaxUses = ptr(5)
		d.UsedCount = 5
	})

	_, err := e.Validate(rec, dec("100"), now)
	assert.Equal(t, model.ErrExpired, err)
}

func TestEngineValidate_Exhausted(t *testing.T) {
	e := NewEngine()

	rec := activeCode(func(d *model.DiscountCode) {
		d.MaxUses = ptr(3)
		d.UsedCount = 3
	})
	_, err := e.Validate(rec, dec("100"), time.Now())
	assert.Equal(t, model.ErrExhausted, err)

	// one use left is still valid
	rec.UsedCount = 2
	_, err = e.Validate(rec, dec("100"), time.Now())
	assert.NoError(t, err)
}

func TestEngineValidate_BelowMinimum(t *testing.T) {
	e := NewEngine()

	rec := activeCode(func(d *model.DiscountCode) {
		d.MinAmount = ptr(dec("300"))
	})

	_, err := e.Validate(rec, dec("299"), time.Now())
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, model.ErrCodeBelowMinimum, appErr.Code)
	assert.Equal(t, "300", appErr.Details["min_amount"])

	// exactly the minimum qualifies
	_, err = e.Validate(rec, dec("300"), time.Now())
	assert.NoError(t, err)
}

func TestEngineCalculate_UnlimitedCodeIgnoresUsage(t *testing.T) {
	e := NewEngine()

	rec := activeCode(func(d *model.DiscountCode) {
		d.UsedCount = 100000
	})
	_, err := e.Validate(rec, dec("100"), time.Now())
	assert.NoError(t, err)
}
