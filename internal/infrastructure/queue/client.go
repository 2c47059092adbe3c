package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/pkg/logger"
)

// Client wraps the asynq client so services enqueue typed tasks
// without depending on asynq directly.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// EnqueueOrderPaid queues both the confirmation email and the Discord
// notification for a freshly paid order. Failures are logged, not
// returned: notifications must never fail the payment flow.
func (c *Client) EnqueueOrderPaid(ctx context.Context, p OrderPaidPayload) {
	emailTask, err := NewOrderConfirmationEmailTask(p)
	if err == nil {
		_, err = c.client.EnqueueContext(ctx, emailTask, asynq.Queue("default"), asynq.MaxRetry(5))
	}
	if err != nil {
		logger.Error("enqueue order confirmation email", err)
	}

	discordTask, err := NewDiscordOrderPaidTask(p)
	if err == nil {
		_, err = c.client.EnqueueContext(ctx, discordTask, asynq.Queue("default"), asynq.MaxRetry(5))
	}
	if err != nil {
		logger.Error("enqueue discord notification", err)
	}
}

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close asynq client: %w", err)
	}
	return nil
}
