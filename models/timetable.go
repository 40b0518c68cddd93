package models

import "time"

// Timetable is a scheduled session of a course.
type Timetable struct {
	ID        string    `bson:"id" json:"id"`
	CourseID  string    `bson:"courseId" json:"courseId"`
	Date      time.Time `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"` // free-form slot, e.g. "09:00-10:30"
	FacultyID string    `bson:"facultyId" json:"facultyId"`
	Location  string    `bson:"location" json:"location"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TimetableInput is the payload for creating a timetable entry.
type TimetableInput struct {
	Course   string    `json:"course" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Time     string    `json:"time" binding:"required"`
	Location string    `json:"location" binding:"required"`
}

// TimetableUpdate is the payload for rescheduling a timetable entry.
type TimetableUpdate struct {
	Date     time.Time `json:"date" binding:"required"`
	Time     string    `json:"time" binding:"required"`
	Location string    `json:"location" binding:"required"`
}
