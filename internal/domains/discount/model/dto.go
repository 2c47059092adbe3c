package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidateCodeRequest is the storefront's dry-run validation payload.
type ValidateCodeRequest struct {
	Code      string          `json:"code"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

func (r ValidateCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(1, 64)),
	)
}

// UseCodeRequest commits one use of a code. OrderID is optional so the
// checkout flow can link the usage to the order it belongs to.
type UseCodeRequest struct {
	Code    string     `json:"code"`
	OrderID *uuid.UUID `json:"order_id,omitempty"`
}

func (r UseCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(1, 64)),
	)
}

// DiscountQuote is the successful validation result. Amounts are
// serialized as strings to survive JSON number precision limits.
type DiscountQuote struct {
	Valid          bool    `json:"valid"`
	Code           string  `json:"code"`
	Type           string  `json:"type"`
	Value          string  `json:"value"`
	DiscountAmount string  `json:"discount_amount"`
	FinalTotal     string  `json:"final_total"`
	Description    *string `json:"description,omitempty"`
}

// CreateDiscountRequest is the admin creation payload.
type CreateDiscountRequest struct {
	Code        string           `json:"code"`
	Description *string          `json:"description,omitempty"`
	Type        DiscountType     `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MinAmount   *decimal.Decimal `json:"min_amount,omitempty"`
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty"`
	MaxUses     *int             `json:"max_uses,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
}

func (r CreateDiscountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Type, validation.Required, validation.By(validateDiscountType)),
		validation.Field(&r.Value, validation.By(validatePositiveDecimal)),
		validation.Field(&r.MaxUses, validation.Min(1)),
	)
}

// UpdateDiscountRequest carries partial updates; nil fields are untouched.
type UpdateDiscountRequest struct {
	Description *string          `json:"description,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	MinAmount   *decimal.Decimal `json:"min_amount,omitempty"`
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty"`
	MaxUses     *int             `json:"max_uses,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

func (r UpdateDiscountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.In(StatusActive, StatusInactive)),
		validation.Field(&r.MaxUses, validation.Min(1)),
	)
}

// ListDiscountsQuery filters the admin listing.
type ListDiscountsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q *ListDiscountsQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

// DiscountUsageRow is one row of the admin usage report.
type DiscountUsageRow struct {
	OrderNumber    string          `json:"order_number"`
	CustomerEmail  string          `json:"customer_email"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	OrderTotal     decimal.Decimal `json:"order_total"`
	UsedAt         time.Time       `json:"used_at"`
}

func validateDiscountType(value interface{}) error {
	dt, _ := value.(DiscountType)
	if !dt.IsValid() {
		return validation.NewError("validation_discount_type", "must be percentage or fixed")
	}
	return nil
}

func validatePositiveDecimal(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if !d.IsPositive() {
		return validation.NewError("validation_positive", "must be greater than zero")
	}
	return nil
}
