package main

import (
	"github.com/hibiken/asynq"

	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

// newScheduler registers the recurring jobs. Times are UTC.
func newScheduler(c *container.Container) *asynq.Scheduler {
	scheduler := asynq.NewScheduler(redisOpt(c), &asynq.SchedulerOpts{})

	// Nightly sweep flipping expired discount codes to inactive.
	if _, err := scheduler.Register("0 20 * * *", queue.NewDeactivateExpiredCodesTask(), asynq.Queue("low")); err != nil {
		logger.Error("register expired-code sweep", err)
	}

	return scheduler
}
