package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (i CheckoutItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Quantity, validation.Required, validation.Min(1)),
	)
}

// CheckoutRequest is the storefront's cart at the moment of purchase.
// The cart itself lives client-side; the backend only sees it here.
type CheckoutRequest struct {
	Items        []CheckoutItem `json:"items"`
	DiscountCode *string        `json:"discount_code,omitempty"`

	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	AddressLine    string `json:"address_line"`
	Subdistrict    string `json:"subdistrict"`
	District       string `json:"district"`
	Province       string `json:"province"`
	ZipCode        string `json:"zip_code"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.RecipientName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.RecipientPhone, validation.Required, validation.Length(9, 15)),
		validation.Field(&r.AddressLine, validation.Required),
		validation.Field(&r.Subdistrict, validation.Required),
		validation.Field(&r.District, validation.Required),
		validation.Field(&r.Province, validation.Required),
		validation.Field(&r.ZipCode, validation.Required, validation.Length(5, 5)),
	)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required,
			validation.In(StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled)),
	)
}

type ListOrdersQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q *ListOrdersQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}
