package notification

import (
	"context"
	"errors"
	"time"

	"unisched/database"
	notificationRepo "unisched/database/repository/notification"
	userRepo "unisched/database/repository/user"
	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService manages stored notifications.
type NotificationService interface {
	Send(ctx context.Context, actor models.Identity, in models.NotificationInput) (*models.Notification, error)
	ListMine(ctx context.Context, actor models.Identity) ([]models.Notification, error)
	ListAll(ctx context.Context, actor models.Identity) ([]models.Notification, error)
	UpdateMessage(ctx context.Context, actor models.Identity, id, message string) (*models.Notification, error)
	Delete(ctx context.Context, actor models.Identity, id string) error
	// Deliver stores one notification per receiver. It is the task handler
	// body for queued change notifications.
	Deliver(ctx context.Context, p models.NotificationPayload) error
}

var (
	ErrNotificationNotFound = utils.NotFound("Notification not found")
	ErrReceiverNotFound     = utils.NotFound("Receiver not found")
)

type DefaultNotificationService struct {
	repo   notificationRepo.NotificationRepository
	users  userRepo.UserRepository
	logger *zap.Logger
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, users userRepo.UserRepository, logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{repo: repo, users: users, logger: logger}
}

func (s *DefaultNotificationService) Send(ctx context.Context, actor models.Identity, in models.NotificationInput) (*models.Notification, error) {
	if err := access.Authorize(actor, access.OpNotificationCreate); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, utils.Invalid("Invalid notification type")
	}
	if _, err := s.users.GetByID(ctx, in.Receiver); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to look up receiver", err)
	}

	n := &models.Notification{
		ID:         uuid.NewString(),
		SenderID:   actor.UserID,
		ReceiverID: in.Receiver,
		Message:    in.Message,
		Type:       in.Type,
		Timestamp:  time.Now().UTC(),
	}
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		n.Timestamp = in.Timestamp.UTC()
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to save notification", err)
	}
	return n, nil
}

// ListMine returns an empty list rather than an error when nothing was received.
func (s *DefaultNotificationService) ListMine(ctx context.Context, actor models.Identity) ([]models.Notification, error) {
	if err := access.Authorize(actor, access.OpNotificationMine); err != nil {
		return nil, err
	}
	out, err := s.repo.GetByReceiver(ctx, actor.UserID)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load notifications", err)
	}
	return out, nil
}

func (s *DefaultNotificationService) ListAll(ctx context.Context, actor models.Identity) ([]models.Notification, error) {
	if err := access.Authorize(actor, access.OpNotificationList); err != nil {
		return nil, err
	}
	out, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load notifications", err)
	}
	return out, nil
}

func (s *DefaultNotificationService) UpdateMessage(ctx context.Context, actor models.Identity, id, message string) (*models.Notification, error) {
	if err := access.Authorize(actor, access.OpNotificationUpdate); err != nil {
		return nil, err
	}
	n, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditNotification(actor, n) {
		return nil, utils.Forbidden("You are not authorized to update this notification")
	}
	updated, err := s.repo.UpdateMessage(ctx, id, message)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to update notification", err)
	}
	return updated, nil
}

func (s *DefaultNotificationService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := access.Authorize(actor, access.OpNotificationDelete); err != nil {
		return err
	}
	n, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteNotification(actor, n) {
		return utils.Forbidden("You are not authorized to delete this notification")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return utils.Wrap(utils.KindInternal, "failed to delete notification", err)
	}
	return nil
}

func (s *DefaultNotificationService) Deliver(ctx context.Context, p models.NotificationPayload) error {
	if len(p.ReceiverIDs) == 0 {
		return nil
	}
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	batch := make([]models.Notification, 0, len(p.ReceiverIDs))
	for _, rid := range p.ReceiverIDs {
		batch = append(batch, models.Notification{
			ID:         uuid.NewString(),
			SenderID:   p.SenderID,
			ReceiverID: rid,
			Message:    p.Message,
			Type:       p.Type,
			Timestamp:  ts,
		})
	}
	if err := s.repo.CreateMany(ctx, batch); err != nil {
		return err
	}
	s.logger.Info("Notifications delivered",
		zap.String("type", string(p.Type)),
		zap.Int("receivers", len(batch)))
	return nil
}

func (s *DefaultNotificationService) load(ctx context.Context, id string) (*models.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to load notification", err)
	}
	return n, nil
}
