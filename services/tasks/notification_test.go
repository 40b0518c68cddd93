package tasks

import (
	"testing"
	"time"

	"unisched/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotificationTask(t *testing.T) {
	ts := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	task, opts, err := NewNotificationTask(models.NotificationPayload{
		SenderID:    "fac-1",
		ReceiverIDs: []string{"s1", "s2"},
		Message:     "CS101 moved to Room 4",
		Type:        models.NotificationTimetableChange,
		Timestamp:   ts,
	})
	require.NoError(t, err)
	assert.Equal(t, TypeNotificationDeliver, task.Type())
	assert.Len(t, opts, 2)

	p, err := ParseNotificationTask(task)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, p.ReceiverIDs)
	assert.Equal(t, models.NotificationTimetableChange, p.Type)
	assert.True(t, ts.Equal(p.Timestamp))
}

func TestNewNotificationTaskRequiresReceivers(t *testing.T) {
	_, _, err := NewNotificationTask(models.NotificationPayload{Message: "x"})
	assert.Error(t, err)
}

func TestParseNotificationTaskRejectsGarbage(t *testing.T) {
	_, err := ParseNotificationTask(asynq.NewTask(TypeNotificationDeliver, []byte("{")))
	assert.Error(t, err)
}
