package handlers

import (
	"net/http"

	"unisched/models"
	"unisched/services/room"
	"unisched/utils"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	RoomService room.RoomService
}

func (h *RoomHandler) CreateRoomHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.RoomInput
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.RoomService.Create(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	rooms, err := h.RoomService.List(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoomHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	r, err := h.RoomService.Get(c.Request.Context(), id, c.Param("roomId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// BookRoomHandler handles POST /api/room/book/:roomId.
func (h *RoomHandler) BookRoomHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.BookingInput
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.RoomService.Book(c.Request.Context(), id, c.Param("roomId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBookingHandler handles PUT /api/room/bookings/:roomId/:bookingId.
func (h *RoomHandler) UpdateBookingHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.BookingInput
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.RoomService.Reschedule(c.Request.Context(), id, c.Param("roomId"), c.Param("bookingId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBookingHandler handles DELETE /api/room/bookings/:roomId/:bookingId.
func (h *RoomHandler) DeleteBookingHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	r, err := h.RoomService.Cancel(c.Request.Context(), id, c.Param("roomId"), c.Param("bookingId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Booking deleted", "bookings": r.Bookings})
}
