package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

// The worker consumes asynq tasks: order notifications and the nightly
// discount code expiry sweep. It shares the container with the API so
// both processes see the same services.
func main() {
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx)
	if err != nil {
		logger.Error("container initialization failed", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	srv := newWorkerServer(c)
	scheduler := newScheduler(c)

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("scheduler stopped", err)
			stop()
		}
	}()

	go func() {
		if err := srv.Run(newMux(c)); err != nil {
			logger.Error("worker server stopped", err)
			stop()
		}
	}()

	logger.Info("Worker started", map[string]interface{}{
		"env": c.Config.App.Environment,
	})

	<-ctx.Done()
	logger.Info("Worker shutting down", nil)
	scheduler.Shutdown()
	srv.Shutdown()
}
