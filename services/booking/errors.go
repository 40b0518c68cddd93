package booking

import "unisched/utils"

var (
	ErrInvalidInterval = utils.Invalid("startTime must be before endTime")
	ErrConflict        = utils.Conflict("Room is already booked during this time")
	ErrRoomNotFound    = utils.NotFound("Room not found")
	ErrBookingNotFound = utils.NotFound("Booking not found")
	ErrUnavailable     = utils.NewError(utils.KindUnavailable, "Booking store unavailable")
	ErrRoomBusy        = utils.NewError(utils.KindUnavailable, "Room is busy, try again")
)
