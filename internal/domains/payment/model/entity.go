package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods
const (
	MethodCard      = "card"
	MethodPromptPay = "promptpay"
)

// Payment statuses
const (
	StatusPending    = "pending"
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
)

var (
	ErrNotFound        = errors.New("payment not found")
	ErrOrderNotPayable = errors.New("order is not awaiting payment")
	ErrChargeFailed    = errors.New("charge was declined")
)

// Payment links an order to a provider charge. Amount mirrors the
// order total at charge time, in THB.
type Payment struct {
	ID       uuid.UUID       `json:"id" db:"id"`
	OrderID  uuid.UUID       `json:"order_id" db:"order_id"`
	ChargeID string          `json:"charge_id" db:"charge_id"`
	Method   string          `json:"method" db:"method"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
	Currency string          `json:"currency" db:"currency"`
	Status   string          `json:"status" db:"status"`

	// Customer-facing next step: 3-D Secure redirect for cards,
	// QR image for PromptPay.
	AuthorizeURI *string `json:"authorize_uri,omitempty" db:"authorize_uri"`
	QRImageURI   *string `json:"qr_image_uri,omitempty" db:"qr_image_uri"`

	FailureMessage *string   `json:"failure_message,omitempty" db:"failure_message"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type CreatePaymentRequest struct {
	OrderID   uuid.UUID `json:"order_id"`
	Method    string    `json:"method"`
	CardToken string    `json:"card_token,omitempty"`
	ReturnURI string    `json:"return_uri,omitempty"`
}

func (r CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Method, validation.Required, validation.In(MethodCard, MethodPromptPay)),
		validation.Field(&r.CardToken, validation.When(r.Method == MethodCard, validation.Required)),
	)
}

// WebhookEvent is the provider's event envelope. Only the charge ID is
// trusted; everything else is re-fetched from the API.
type WebhookEvent struct {
	Key  string `json:"key"`
	Data struct {
		Object string `json:"object"`
		ID     string `json:"id"`
	} `json:"data"`
}
