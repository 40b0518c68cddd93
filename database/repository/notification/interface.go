package notificationRepo

import (
	"context"

	"unisched/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	CreateMany(ctx context.Context, ns []models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	GetByReceiver(ctx context.Context, receiverID string) ([]models.Notification, error)
	GetAll(ctx context.Context) ([]models.Notification, error)
	UpdateMessage(ctx context.Context, id, message string) (*models.Notification, error)
	Delete(ctx context.Context, id string) error
}
