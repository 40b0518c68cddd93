package cron

import (
	"context"
	"time"

	"unisched/config"
	"unisched/models"
	"unisched/services/tasks"
	"unisched/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Deliverer stores queued notifications.
type Deliverer interface {
	Deliver(ctx context.Context, p models.NotificationPayload) error
}

// QueueRedisOpt is the asynq connection shared by the producer and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotificationWorker runs the async worker in background. The returned
// server is shut down by the caller.
func InitNotificationWorker(deliverer Deliverer) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationDeliver, HandleNotificationTask(deliverer, logger))

	go func() {
		logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Notification worker gave up; change notifications will stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleNotificationTask stores a queued notification for every receiver.
func HandleNotificationTask(deliverer Deliverer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseNotificationTask(task)
		if err != nil {
			logger.Error("Dropping malformed notification task", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := deliverer.Deliver(ctx, p); err != nil {
			logger.Warn("Notification delivery failed", zap.String("type", string(p.Type)), zap.Error(err))
			return err
		}
		return nil
	}
}
