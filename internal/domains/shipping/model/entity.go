package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store-wide defaults, used when no settings row exists yet.
var (
	DefaultFreeThreshold = decimal.NewFromInt(1500)
	DefaultShippingFee   = decimal.NewFromInt(100)
)

// ShippingSettings is one revision of the store's flat-rate shipping
// configuration. Revisions are append-only: updating the settings
// deactivates the current row and inserts a new one, so past orders
// can always be traced to the fee schedule they were priced under.
type ShippingSettings struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	FreeThreshold decimal.Decimal `json:"free_shipping_min_amount" db:"free_shipping_min_amount"`
	ShippingFee   decimal.Decimal `json:"standard_shipping_cost" db:"standard_shipping_cost"`
	Active        bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// NewDefaultSettings builds the initial revision from the store defaults.
func NewDefaultSettings() *ShippingSettings {
	return &ShippingSettings{
		ID:            uuid.New(),
		FreeThreshold: DefaultFreeThreshold,
		ShippingFee:   DefaultShippingFee,
		Active:        true,
	}
}

// UpdateSettingsRequest is the admin payload for a new settings revision.
type UpdateSettingsRequest struct {
	FreeThreshold decimal.Decimal `json:"free_shipping_min_amount"`
	ShippingFee   decimal.Decimal `json:"standard_shipping_cost"`
}

func (r UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FreeThreshold, validation.By(validateNonNegative)),
		validation.Field(&r.ShippingFee, validation.By(validateNonNegative)),
	)
}

func validateNonNegative(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return validation.NewError("validation_non_negative", "must not be negative")
	}
	return nil
}

// ShippingQuote is the storefront-facing cost breakdown for a cart.
type ShippingQuote struct {
	Subtotal      string `json:"subtotal"`
	Cost          string `json:"cost"`
	FreeEligible  bool   `json:"free_eligible"`
	AmountNeeded  string `json:"amount_needed"`
	FreeThreshold string `json:"free_shipping_min_amount"`
}
