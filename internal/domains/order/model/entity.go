package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status lifecycle
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// validTransitions encodes the order lifecycle. Terminal states have
// no outgoing edges.
var validTransitions = map[string][]string{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order with its pricing snapshot. Discount and
// shipping amounts are frozen at checkout time so later settings
// changes never alter past orders.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderNumber string    `json:"order_number" db:"order_number"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Status      string    `json:"status" db:"status"`

	Subtotal       decimal.Decimal `json:"subtotal" db:"subtotal"`
	DiscountCode   *string         `json:"discount_code,omitempty" db:"discount_code"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	ShippingFee    decimal.Decimal `json:"shipping_fee" db:"shipping_fee"`
	Total          decimal.Decimal `json:"total" db:"total"`

	// Shipping address snapshot
	RecipientName  string `json:"recipient_name" db:"recipient_name"`
	RecipientPhone string `json:"recipient_phone" db:"recipient_phone"`
	AddressLine    string `json:"address_line" db:"address_line"`
	Subdistrict    string `json:"subdistrict" db:"subdistrict"`
	District       string `json:"district" db:"district"`
	Province       string `json:"province" db:"province"`
	ZipCode        string `json:"zip_code" db:"zip_code"`

	Items []OrderItem `json:"items,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OrderItem snapshots name and unit price at purchase time.
type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total" db:"line_total"`
}

// CalculateTotal derives the amount to charge. The discount can never
// push the total below the shipping fee's floor of zero.
func CalculateTotal(subtotal, discount, shipping decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// NewOrderNumber builds a human-readable order reference, e.g.
// ORD-20260901-3F2A8C. Uniqueness is enforced by the database.
func NewOrderNumber(now time.Time) string {
	suffix := uuid.New().String()[:6]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
