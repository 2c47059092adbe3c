package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/infrastructure/notification"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

type taskHandlers struct {
	container *container.Container
	email     notification.EmailService
	discord   *notification.DiscordNotifier
}

func (h *taskHandlers) handleOrderConfirmationEmail(ctx context.Context, t *asynq.Task) error {
	var p queue.OrderPaidPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.Email == "" {
		// Nothing to send to; don't retry.
		return nil
	}

	return h.email.SendOrderConfirmation(ctx, notification.OrderConfirmationData{
		Email:       p.Email,
		OrderNumber: p.OrderNumber,
		Total:       p.Total,
	})
}

func (h *taskHandlers) handleDiscordOrderPaid(ctx context.Context, t *asynq.Task) error {
	var p queue.OrderPaidPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	return h.discord.NotifyOrderPaid(ctx, p.OrderNumber, p.Email, p.Total)
}

func (h *taskHandlers) handleDeactivateExpiredCodes(ctx context.Context, t *asynq.Task) error {
	n, err := h.container.DiscountService.DeactivateExpired(ctx)
	if err != nil {
		return err
	}
	logger.Info("Expired discount sweep finished", map[string]interface{}{
		"deactivated": n,
	})
	return nil
}
