// Package access holds the role policy consulted before any mutation.
package access

import (
	"unisched/models"
	"unisched/utils"
)

// Operation names an action guarded by role.
type Operation string

const (
	OpViewProfile Operation = "user.view"
	OpLogout      Operation = "user.logout"

	OpCourseCreate Operation = "course.create"
	OpCourseList   Operation = "course.list"
	OpCourseUpdate Operation = "course.update"
	OpCourseDelete Operation = "course.delete"

	OpTimetableCreate Operation = "timetable.create"
	OpTimetableList   Operation = "timetable.list"
	OpTimetableExport Operation = "timetable.export"
	OpTimetableUpdate Operation = "timetable.update"
	OpTimetableDelete Operation = "timetable.delete"

	OpRoomCreate Operation = "room.create"
	OpRoomView   Operation = "room.view"

	OpBookingCreate Operation = "booking.create"
	OpBookingUpdate Operation = "booking.update"
	OpBookingDelete Operation = "booking.delete"

	OpEnrollSelf       Operation = "enrollment.self"
	OpEnrollmentMine   Operation = "enrollment.mine"
	OpEnrollmentList   Operation = "enrollment.list"
	OpEnrollmentUpdate Operation = "enrollment.update"
	OpEnrollmentDelete Operation = "enrollment.delete"

	OpNotificationCreate Operation = "notification.create"
	OpNotificationMine   Operation = "notification.mine"
	OpNotificationList   Operation = "notification.list"
	OpNotificationUpdate Operation = "notification.update"
	OpNotificationDelete Operation = "notification.delete"
)

var (
	anyRole   = []models.Role{models.RoleAdmin, models.RoleFaculty, models.RoleStudent}
	staff     = []models.Role{models.RoleAdmin, models.RoleFaculty}
	adminOnly = []models.Role{models.RoleAdmin}
	students  = []models.Role{models.RoleStudent}
)

// policy lists the roles that may attempt each operation. Ownership rules for
// timetable and notification edits are applied on top by the Can* helpers.
var policy = map[Operation][]models.Role{
	OpViewProfile: anyRole,
	OpLogout:      anyRole,

	OpCourseCreate: adminOnly,
	OpCourseList:   anyRole,
	OpCourseUpdate: adminOnly,
	OpCourseDelete: adminOnly,

	OpTimetableCreate: staff,
	OpTimetableList:   anyRole,
	OpTimetableExport: staff,
	OpTimetableUpdate: staff,
	OpTimetableDelete: staff,

	OpRoomCreate: adminOnly,
	OpRoomView:   anyRole,

	OpBookingCreate: staff,
	OpBookingUpdate: staff,
	OpBookingDelete: staff,

	OpEnrollSelf:       students,
	OpEnrollmentMine:   students,
	OpEnrollmentList:   staff,
	OpEnrollmentUpdate: staff,
	OpEnrollmentDelete: staff,

	OpNotificationCreate: staff,
	OpNotificationMine:   anyRole,
	OpNotificationList:   adminOnly,
	OpNotificationUpdate: staff,
	OpNotificationDelete: anyRole,
}

// Allowed reports whether role may perform op. Unknown roles and operations
// are denied.
func Allowed(role models.Role, op Operation) bool {
	if !role.Valid() {
		return false
	}
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns a Forbidden AppError when the identity may not perform op.
func Authorize(id models.Identity, op Operation) error {
	if id.UserID == "" {
		return utils.NewError(utils.KindUnauthorized, "Unauthorized")
	}
	if !Allowed(id.Role, op) {
		return utils.Forbidden("Access denied")
	}
	return nil
}

// CanEditTimetable: Admin, or the Faculty member who owns the entry.
func CanEditTimetable(id models.Identity, entry *models.Timetable) bool {
	switch id.Role {
	case models.RoleAdmin:
		return true
	case models.RoleFaculty:
		return entry.FacultyID == id.UserID
	}
	return false
}

// CanEditNotification: Admin, or the Faculty member who sent it.
func CanEditNotification(id models.Identity, n *models.Notification) bool {
	switch id.Role {
	case models.RoleAdmin:
		return true
	case models.RoleFaculty:
		return n.SenderID == id.UserID
	}
	return false
}

// CanDeleteNotification: Admin, the receiver, or the Faculty sender.
func CanDeleteNotification(id models.Identity, n *models.Notification) bool {
	if id.Role == models.RoleAdmin || n.ReceiverID == id.UserID {
		return true
	}
	return id.Role == models.RoleFaculty && n.SenderID == id.UserID
}
