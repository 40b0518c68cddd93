package models

import "time"

// RoomType is the closed set of room kinds.
type RoomType string

const (
	RoomClassroom      RoomType = "Classroom"
	RoomLectureHall    RoomType = "Lecture Hall"
	RoomLab            RoomType = "Lab"
	RoomProjectorRoom  RoomType = "Projector Room"
	RoomConferenceRoom RoomType = "Conference Room"
)

// Valid reports whether t is a known room type.
func (t RoomType) Valid() bool {
	switch t {
	case RoomClassroom, RoomLectureHall, RoomLab, RoomProjectorRoom, RoomConferenceRoom:
		return true
	}
	return false
}

// Room is a schedulable space. Bookings are embedded and never overlap.
// Version increments on every booking write and guards compare-and-swap saves.
type Room struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Capacity  int       `bson:"capacity" json:"capacity"`
	Type      RoomType  `bson:"type" json:"type"`
	Bookings  []Booking `bson:"bookings" json:"bookings"`
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Booking is a reserved half-open interval [StartTime, EndTime) on a room.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`
}

// RoomInput is the payload for POST /api/room.
type RoomInput struct {
	Name     string   `json:"name" binding:"required"`
	Capacity int      `json:"capacity" binding:"required,gt=0"`
	Type     RoomType `json:"type" binding:"required,roomtype"`
}

// BookingInput is the payload for creating or updating a booking.
type BookingInput struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}
