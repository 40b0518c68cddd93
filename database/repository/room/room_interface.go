package roomRepo

import (
	"context"

	"unisched/models"
)

// RoomRepository persists rooms together with their embedded booking lists.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	LoadRoom(ctx context.Context, id string) (*models.Room, error)
	GetAll(ctx context.Context) ([]models.Room, error)
	// SaveBookings replaces the room's booking list only if its stored version
	// still equals expectedVersion. It returns the room as written.
	SaveBookings(ctx context.Context, roomID string, expectedVersion int64, bookings []models.Booking) (*models.Room, error)
}
