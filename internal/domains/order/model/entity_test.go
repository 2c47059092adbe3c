package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		discount int64
		shipping int64
		want     int64
	}{
		{"no discount, with shipping", 1000, 0, 100, 1100},
		{"discount and free shipping", 2000, 200, 0, 1800},
		{"discount and shipping", 1200, 100, 100, 1200},
		{"discount equals subtotal", 500, 500, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotal(
				decimal.NewFromInt(tt.subtotal),
				decimal.NewFromInt(tt.discount),
				decimal.NewFromInt(tt.shipping),
			)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestCalculateTotal_NeverNegative(t *testing.T) {
	got := CalculateTotal(decimal.NewFromInt(100), decimal.NewFromInt(500), decimal.Zero)
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusPaid},
		{StatusPending, StatusCancelled},
		{StatusPaid, StatusShipped},
		{StatusPaid, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	denied := []struct{ from, to string }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusPaid, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusPaid},
		{StatusShipped, StatusCancelled},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s should be denied", tr.from, tr.to)
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	n := NewOrderNumber(now)

	assert.True(t, strings.HasPrefix(n, "ORD-20260901-"), "got %s", n)
	assert.NotEqual(t, n, NewOrderNumber(now), "order numbers must not collide")
}
