package booking

import (
	"context"

	"unisched/models"
)

// RoomStore is the persistence the engine needs. roomRepo.RoomRepository satisfies it.
type RoomStore interface {
	LoadRoom(ctx context.Context, id string) (*models.Room, error)
	SaveBookings(ctx context.Context, roomID string, expectedVersion int64, bookings []models.Booking) (*models.Room, error)
}

// Notifier tells a booking owner that someone else changed their booking.
type Notifier interface {
	NotifyRoomChange(ctx context.Context, senderID, receiverID, message string)
}

// RoomLocker serializes mutations of a single room.
type RoomLocker interface {
	// Lock blocks until the room is held or ctx is done. The returned
	// function releases the lock and is safe to call more than once.
	Lock(ctx context.Context, roomID string) (func(), error)
}
