package main

import (
	"context"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

func redisOpt(c *container.Container) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

func newWorkerServer(c *container.Container) *asynq.Server {
	return asynq.NewServer(redisOpt(c), asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"high":    20,
			"default": 10,
			"low":     5,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("task failed: "+task.Type(), err)
		}),
	})
}

func newMux(c *container.Container) *asynq.ServeMux {
	email, discord := c.NewNotifiers()
	h := &taskHandlers{
		container: c,
		email:     email,
		discord:   discord,
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeOrderConfirmationEmail, h.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TypeDiscordOrderPaid, h.handleDiscordOrderPaid)
	mux.HandleFunc(queue.TypeDeactivateExpiredCodes, h.handleDeactivateExpiredCodes)
	return mux
}
