package handlers

import (
	"unisched/middleware"
	"unisched/utils"
)

// HandlerBundle groups the endpoint handlers and the auth dependencies the
// routes need.
type HandlerBundle struct {
	Tokens      *utils.TokenManager
	Revocations middleware.RevocationChecker

	User         *UserHandler
	Course       *CourseHandler
	Enrollment   *EnrollmentHandler
	Timetable    *TimetableHandler
	Room         *RoomHandler
	Notification *NotificationHandler
}
