package cron

import (
	"context"
	"errors"
	"testing"

	"unisched/models"
	"unisched/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDeliverer struct{ mock.Mock }

func (m *mockDeliverer) Deliver(ctx context.Context, p models.NotificationPayload) error {
	return m.Called(ctx, p).Error(0)
}

func TestHandleNotificationTask(t *testing.T) {
	d := &mockDeliverer{}
	d.On("Deliver", mock.Anything, mock.MatchedBy(func(p models.NotificationPayload) bool {
		return p.Message == "moved" && len(p.ReceiverIDs) == 2
	})).Return(nil).Once()

	task, _, err := tasks.NewNotificationTask(models.NotificationPayload{
		SenderID: "f1", ReceiverIDs: []string{"s1", "s2"}, Message: "moved", Type: models.NotificationTimetableChange,
	})
	require.NoError(t, err)

	h := HandleNotificationTask(d, zap.NewNop())
	require.NoError(t, h(context.Background(), task))
	d.AssertExpectations(t)
}

func TestHandleNotificationTaskErrors(t *testing.T) {
	d := &mockDeliverer{}
	h := HandleNotificationTask(d, zap.NewNop())

	err := h(context.Background(), asynq.NewTask(tasks.TypeNotificationDeliver, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	d.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Once()
	task, _, _ := tasks.NewNotificationTask(models.NotificationPayload{ReceiverIDs: []string{"s1"}, Message: "x"})
	assert.Error(t, h(context.Background(), task))
}
