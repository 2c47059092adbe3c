package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names. The worker registers a handler per type.
const (
	TypeOrderConfirmationEmail = "email:order_confirmation"
	TypeDiscordOrderPaid       = "discord:order_paid"
	TypeDeactivateExpiredCodes = "discount:deactivate_expired"
)

// OrderPaidPayload is shared by the email and Discord tasks.
type OrderPaidPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Email       string `json:"email"`
	Total       string `json:"total"`
}

func NewOrderConfirmationEmailTask(p OrderPaidPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal order paid payload: %w", err)
	}
	return asynq.NewTask(TypeOrderConfirmationEmail, payload), nil
}

func NewDiscordOrderPaidTask(p OrderPaidPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal order paid payload: %w", err)
	}
	return asynq.NewTask(TypeDiscordOrderPaid, payload), nil
}

// NewDeactivateExpiredCodesTask is enqueued on a schedule; it carries no payload.
func NewDeactivateExpiredCodesTask() *asynq.Task {
	return asynq.NewTask(TypeDeactivateExpiredCodes, nil)
}
