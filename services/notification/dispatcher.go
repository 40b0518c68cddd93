package notification

import (
	"context"
	"time"

	"unisched/metrics"
	"unisched/models"
	"unisched/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the dispatcher uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher queues change notifications for background delivery. Failures
// are logged and never returned to the caller.
type Dispatcher struct {
	queue  Enqueuer
	logger *zap.Logger
}

func NewDispatcher(queue Enqueuer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{queue: queue, logger: logger}
}

// NotifyRoomChange tells a booking owner their booking was changed by someone else.
func (d *Dispatcher) NotifyRoomChange(ctx context.Context, senderID, receiverID, message string) {
	d.dispatch(ctx, models.NotificationPayload{
		SenderID:    senderID,
		ReceiverIDs: []string{receiverID},
		Message:     message,
		Type:        models.NotificationRoomChange,
	})
}

// NotifyTimetableChange tells enrolled students that a timetable entry changed.
func (d *Dispatcher) NotifyTimetableChange(ctx context.Context, senderID string, receiverIDs []string, message string) {
	d.dispatch(ctx, models.NotificationPayload{
		SenderID:    senderID,
		ReceiverIDs: receiverIDs,
		Message:     message,
		Type:        models.NotificationTimetableChange,
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, p models.NotificationPayload) {
	if d == nil || d.queue == nil || len(p.ReceiverIDs) == 0 {
		return
	}
	p.Timestamp = time.Now().UTC()

	task, opts, err := tasks.NewNotificationTask(p)
	if err != nil {
		d.logger.Warn("Failed to build notification task", zap.Error(err))
		metrics.IncNotificationEnqueued(string(p.Type), "error")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if _, err := d.queue.EnqueueContext(ctx, task, opts...); err != nil {
		d.logger.Warn("Failed to enqueue notification",
			zap.String("type", string(p.Type)),
			zap.Int("receivers", len(p.ReceiverIDs)),
			zap.Error(err))
		metrics.IncNotificationEnqueued(string(p.Type), "error")
		return
	}
	metrics.IncNotificationEnqueued(string(p.Type), "queued")
}
