package room

import (
	"context"
	"errors"
	"strings"

	"unisched/database"
	roomRepo "unisched/database/repository/room"
	"unisched/models"
	"unisched/services/access"
	"unisched/services/booking"
	"unisched/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrRoomExists = utils.Conflict("Room already exists")

// RoomService manages rooms and routes booking mutations through the engine.
type RoomService interface {
	Create(ctx context.Context, actor models.Identity, in models.RoomInput) (*models.Room, error)
	List(ctx context.Context, actor models.Identity) ([]models.Room, error)
	Get(ctx context.Context, actor models.Identity, id string) (*models.Room, error)
	Book(ctx context.Context, actor models.Identity, roomID string, in models.BookingInput) (*models.Booking, error)
	Reschedule(ctx context.Context, actor models.Identity, roomID, bookingID string, in models.BookingInput) (*models.Booking, error)
	Cancel(ctx context.Context, actor models.Identity, roomID, bookingID string) (*models.Room, error)
}

type DefaultRoomService struct {
	Repo   roomRepo.RoomRepository
	Engine *booking.Engine
	logger *zap.Logger
}

func NewDefaultRoomService(repo roomRepo.RoomRepository, engine *booking.Engine, logger *zap.Logger) *DefaultRoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultRoomService{Repo: repo, Engine: engine, logger: logger}
}

func (s *DefaultRoomService) Create(ctx context.Context, actor models.Identity, in models.RoomInput) (*models.Room, error) {
	if err := access.Authorize(actor, access.OpRoomCreate); err != nil {
		return nil, utils.Forbidden("You are not authorized to create a room")
	}
	if in.Capacity <= 0 {
		return nil, utils.Invalid("capacity must be positive")
	}
	if !in.Type.Valid() {
		return nil, utils.Invalid("Invalid room type")
	}

	r := &models.Room{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Capacity: in.Capacity,
		Type:     in.Type,
		Bookings: []models.Booking{},
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrRoomExists
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to create room", err)
	}
	s.logger.Info("Room created", zap.String("roomId", r.ID), zap.String("name", r.Name))
	return r, nil
}

func (s *DefaultRoomService) List(ctx context.Context, actor models.Identity) ([]models.Room, error) {
	if err := access.Authorize(actor, access.OpRoomView); err != nil {
		return nil, err
	}
	rooms, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, utils.Wrap(utils.KindUnavailable, booking.ErrUnavailable.Message, err)
	}
	return rooms, nil
}

func (s *DefaultRoomService) Get(ctx context.Context, actor models.Identity, id string) (*models.Room, error) {
	if err := access.Authorize(actor, access.OpRoomView); err != nil {
		return nil, err
	}
	r, err := s.Repo.LoadRoom(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, booking.ErrRoomNotFound
		}
		return nil, utils.Wrap(utils.KindUnavailable, booking.ErrUnavailable.Message, err)
	}
	return r, nil
}

func (s *DefaultRoomService) Book(ctx context.Context, actor models.Identity, roomID string, in models.BookingInput) (*models.Booking, error) {
	return s.Engine.AdmitCreate(ctx, actor, roomID, booking.Interval{Start: in.StartTime, End: in.EndTime})
}

func (s *DefaultRoomService) Reschedule(ctx context.Context, actor models.Identity, roomID, bookingID string, in models.BookingInput) (*models.Booking, error) {
	return s.Engine.AdmitUpdate(ctx, actor, roomID, bookingID, booking.Interval{Start: in.StartTime, End: in.EndTime})
}

func (s *DefaultRoomService) Cancel(ctx context.Context, actor models.Identity, roomID, bookingID string) (*models.Room, error) {
	return s.Engine.Remove(ctx, actor, roomID, bookingID)
}
