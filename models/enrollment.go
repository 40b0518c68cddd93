package models

import "time"

// Enrollment links a student to a course.
type Enrollment struct {
	ID        string    `bson:"id" json:"id"`
	StudentID string    `bson:"studentId" json:"studentId"`
	CourseID  string    `bson:"courseId" json:"courseId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// EnrollmentInput is the payload a student sends to enroll.
type EnrollmentInput struct {
	Course string `json:"course" binding:"required"`
}

// EnrollmentUpdate is the payload staff send to reassign an enrollment.
type EnrollmentUpdate struct {
	Student string `json:"student" binding:"required"`
	Course  string `json:"course" binding:"required"`
}

// EnrollmentView is an enrollment with student and course names resolved.
type EnrollmentView struct {
	ID        string         `json:"id"`
	Student   *UserSummary   `json:"student,omitempty"`
	Course    *CourseSummary `json:"course"`
	CreatedAt time.Time      `json:"createdAt"`
}
