package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unisched/database"
	"unisched/metrics"
	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultLockTimeout = 5 * time.Second

// Engine admits, moves and removes room bookings. Every mutation runs under
// the room lock and is persisted with a version-checked write.
type Engine struct {
	store       RoomStore
	locker      RoomLocker
	notifier    Notifier
	logger      *zap.Logger
	lockTimeout time.Duration
	newID       func() string
}

// Option customises an Engine.
type Option func(*Engine)

func WithLockTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.lockTimeout = d
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine wires the engine. notifier may be nil.
func NewEngine(store RoomStore, locker RoomLocker, notifier Notifier, logger *zap.Logger, opts ...Option) *Engine {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:       store,
		locker:      locker,
		notifier:    notifier,
		logger:      logger,
		lockTimeout: defaultLockTimeout,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AdmitCreate books candidate in the room for the acting user.
func (e *Engine) AdmitCreate(ctx context.Context, actor models.Identity, roomID string, candidate Interval) (*models.Booking, error) {
	if err := access.Authorize(actor, access.OpBookingCreate); err != nil {
		return nil, err
	}
	candidate = candidate.Normalized()
	if err := candidate.Validate(); err != nil {
		e.record("create", err)
		return nil, err
	}

	var created models.Booking
	_, err := e.mutate(ctx, roomID, func(room *models.Room) ([]models.Booking, error) {
		ok, err := CanAdmit(room.Bookings, candidate, "")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrConflict
		}
		created = models.Booking{
			ID:        e.newID(),
			UserID:    actor.UserID,
			StartTime: candidate.Start,
			EndTime:   candidate.End,
		}
		return appendBooking(room.Bookings, created), nil
	})
	e.record("create", err)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Booking created",
		zap.String("roomId", roomID),
		zap.String("bookingId", created.ID),
		zap.String("userId", actor.UserID))
	return &created, nil
}

// AdmitUpdate moves an existing booking to candidate. Moving a booking onto
// its own current interval always succeeds.
func (e *Engine) AdmitUpdate(ctx context.Context, actor models.Identity, roomID, bookingID string, candidate Interval) (*models.Booking, error) {
	if err := access.Authorize(actor, access.OpBookingUpdate); err != nil {
		return nil, err
	}
	candidate = candidate.Normalized()
	if err := candidate.Validate(); err != nil {
		e.record("update", err)
		return nil, err
	}

	var (
		before   models.Booking
		updated  models.Booking
		roomName string
	)
	_, err := e.mutate(ctx, roomID, func(room *models.Room) ([]models.Booking, error) {
		current, found := findBooking(room.Bookings, bookingID)
		if !found {
			return nil, ErrBookingNotFound
		}
		ok, err := CanAdmit(room.Bookings, candidate, bookingID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrConflict
		}
		before = current
		updated = current
		updated.StartTime, updated.EndTime = candidate.Start, candidate.End
		roomName = room.Name
		return replaceInterval(room.Bookings, bookingID, candidate), nil
	})
	e.record("update", err)
	if err != nil {
		return nil, err
	}

	if before.UserID != actor.UserID {
		e.notify(ctx, actor.UserID, before.UserID, fmt.Sprintf(
			"Your booking in %s was moved to %s - %s",
			roomName, updated.StartTime.Format(time.RFC3339), updated.EndTime.Format(time.RFC3339)))
	}
	return &updated, nil
}

// Remove deletes a booking. Removing an id the room does not hold succeeds
// without writing.
func (e *Engine) Remove(ctx context.Context, actor models.Identity, roomID, bookingID string) (*models.Room, error) {
	if err := access.Authorize(actor, access.OpBookingDelete); err != nil {
		return nil, err
	}

	var removed *models.Booking
	room, err := e.mutate(ctx, roomID, func(room *models.Room) ([]models.Booking, error) {
		current, found := findBooking(room.Bookings, bookingID)
		if !found {
			return nil, nil
		}
		removed = &current
		return withoutBooking(room.Bookings, bookingID), nil
	})
	e.record("delete", err)
	if err != nil {
		return nil, err
	}

	if removed != nil && removed.UserID != actor.UserID {
		e.notify(ctx, actor.UserID, removed.UserID, fmt.Sprintf(
			"Your booking in %s from %s was cancelled",
			room.Name, removed.StartTime.Format(time.RFC3339)))
	}
	return room, nil
}

// mutate runs decide under the room lock. A nil slice from decide means no
// write is needed and the loaded room is returned as is.
func (e *Engine) mutate(ctx context.Context, roomID string, decide func(*models.Room) ([]models.Booking, error)) (*models.Room, error) {
	lockCtx, cancel := context.WithTimeout(ctx, e.lockTimeout)
	defer cancel()

	waitStart := time.Now()
	unlock, err := e.locker.Lock(lockCtx, roomID)
	metrics.ObserveLockWait(time.Since(waitStart))
	if err != nil {
		return nil, utils.Wrap(utils.KindUnavailable, ErrRoomBusy.Message, err)
	}
	defer unlock()

	room, err := e.store.LoadRoom(ctx, roomID)
	if err != nil {
		return nil, storeError(err)
	}

	next, err := decide(room)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return room, nil
	}

	saved, err := e.store.SaveBookings(ctx, roomID, room.Version, next)
	if err != nil {
		if errors.Is(err, database.ErrVersionConflict) {
			e.logger.Warn("Room changed outside the lock", zap.String("roomId", roomID))
			return nil, ErrConflict
		}
		return nil, storeError(err)
	}
	return saved, nil
}

func storeError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrRoomNotFound
	}
	return utils.Wrap(utils.KindUnavailable, ErrUnavailable.Message, err)
}

func (e *Engine) notify(ctx context.Context, senderID, receiverID, message string) {
	if e.notifier == nil || receiverID == "" {
		return
	}
	e.notifier.NotifyRoomChange(ctx, senderID, receiverID, message)
}

func (e *Engine) record(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrConflict):
		result = "conflict"
	case errors.Is(err, ErrInvalidInterval):
		result = "invalid"
	case errors.Is(err, utils.ErrNotFound):
		result = "not_found"
	case errors.Is(err, utils.ErrUnavailable):
		result = "unavailable"
	default:
		result = "error"
	}
	metrics.IncBookingDecision(op, result)
	if result == "unavailable" || result == "error" {
		e.logger.Error("Booking operation failed", zap.String("op", op), zap.Error(err))
	}
}
