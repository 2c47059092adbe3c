package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType represents valid discount types
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (dt DiscountType) IsValid() bool {
	switch dt {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// Code status
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DiscountCode represents a user-enterable discount code.
// Codes are created by administrators; the storefront only reads them,
// except for the monotonic used_count increment on commit.
type DiscountCode struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`

	Type  DiscountType    `json:"type" db:"type"`
	Value decimal.Decimal `json:"value" db:"value"`

	// Eligibility constraints
	MinAmount   *decimal.Decimal `json:"min_amount,omitempty" db:"min_amount"`
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty" db:"max_discount"`
	MaxUses     *int             `json:"max_uses,omitempty" db:"max_uses"`
	UsedCount   int              `json:"used_count" db:"used_count"`
	EndDate     *time.Time       `json:"end_date,omitempty" db:"end_date"`

	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizeCode uppercases a raw code for case-insensitive comparison.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired reports whether the code's end date has passed.
func (d *DiscountCode) IsExpired(now time.Time) bool {
	return d.EndDate != nil && now.After(*d.EndDate)
}

// IsExhausted reports whether the code has no uses left.
func (d *DiscountCode) IsExhausted() bool {
	return d.MaxUses != nil && d.UsedCount >= *d.MaxUses
}

// RemainingUses returns the uses left, or nil for unlimited codes.
func (d *DiscountCode) RemainingUses() *int {
	if d.MaxUses == nil {
		return nil
	}
	remaining := *d.MaxUses - d.UsedCount
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
