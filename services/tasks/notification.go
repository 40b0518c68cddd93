package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"unisched/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationDeliver = "notification:deliver"

// NewNotificationTask builds a delivery task for system generated notifications.
func NewNotificationTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	if len(payload.ReceiverIDs) == 0 {
		return nil, nil, fmt.Errorf("notification task has no receivers")
	}
	if payload.Timestamp.IsZero() {
		payload.Timestamp = time.Now().UTC()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationDeliver, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// ParseNotificationTask decodes a task built by NewNotificationTask.
func ParseNotificationTask(task *asynq.Task) (models.NotificationPayload, error) {
	var p models.NotificationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid notification payload: %w", err)
	}
	return p, nil
}
