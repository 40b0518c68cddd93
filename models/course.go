package models

import "time"

// Course is a unit of teaching owned by a faculty member.
type Course struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Code        string    `bson:"code" json:"code"`
	Description string    `bson:"description" json:"description"`
	Credits     int       `bson:"credits" json:"credits"`
	FacultyID   string    `bson:"facultyId" json:"facultyId"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CourseInput is the payload for creating a course.
type CourseInput struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
	Credits     int    `json:"credits" binding:"required,gt=0"`
	Faculty     string `json:"faculty" binding:"required"`
}

// CourseUpdate carries a partial update; zero values are left untouched.
type CourseUpdate struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Credits     int    `json:"credits" binding:"omitempty,gt=0"`
	Faculty     string `json:"faculty"`
}

// CourseView is a course with its faculty resolved. Faculty is either a full
// profile (admins) or a UserSummary (everyone else).
type CourseView struct {
	Course
	Faculty any `json:"faculty"`
}

// CourseSummary is the projection of a course embedded in enrollment views.
type CourseSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
