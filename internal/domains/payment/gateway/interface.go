package gateway

import "context"

// Charge statuses as reported by the payment provider.
const (
	ChargeStatusPending    = "pending"
	ChargeStatusSuccessful = "successful"
	ChargeStatusFailed     = "failed"
	ChargeStatusExpired    = "expired"
)

// ChargeRequest describes a charge to create. Amount is in satang
// (1 THB = 100 satang), which is how the provider counts money.
// Exactly one of CardToken or SourceID must be set.
type ChargeRequest struct {
	Amount      int64
	Currency    string
	CardToken   string
	SourceID    string
	Description string
	ReturnURI   string
	Metadata    map[string]string
}

// Charge is the provider's view of a charge.
type Charge struct {
	ID             string
	Status         string
	Paid           bool
	Amount         int64
	Currency       string
	AuthorizeURI   string
	QRImageURI     string
	FailureCode    string
	FailureMessage string
}

// Source is a non-card payment source, e.g. a PromptPay QR.
type Source struct {
	ID         string
	Type       string
	Amount     int64
	QRImageURI string
}

// Gateway abstracts the payment provider so services and tests never
// talk HTTP directly.
type Gateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)

	// GetCharge re-fetches a charge by ID. Webhook handling relies on
	// this: the webhook body is untrusted, only this read is.
	GetCharge(ctx context.Context, chargeID string) (*Charge, error)

	CreatePromptPaySource(ctx context.Context, amount int64, currency string) (*Source, error)
}
