package access

import (
	"testing"

	"unisched/models"
	"unisched/utils"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role models.Role
		op   Operation
		want bool
	}{
		{models.RoleAdmin, OpBookingCreate, true},
		{models.RoleFaculty, OpBookingUpdate, true},
		{models.RoleStudent, OpBookingCreate, false},
		{models.RoleStudent, OpBookingDelete, false},
		{models.RoleAdmin, OpRoomCreate, true},
		{models.RoleFaculty, OpRoomCreate, false},
		{models.RoleStudent, OpRoomView, true},
		{models.RoleStudent, OpEnrollSelf, true},
		{models.RoleAdmin, OpEnrollSelf, false},
		{models.RoleFaculty, OpEnrollmentList, true},
		{models.RoleStudent, OpEnrollmentList, false},
		{models.RoleFaculty, OpCourseCreate, false},
		{models.RoleStudent, OpCourseList, true},
		{models.RoleFaculty, OpNotificationList, false},
		{models.RoleStudent, OpNotificationDelete, true},
		{models.Role("Janitor"), OpRoomView, false},
		{models.RoleAdmin, Operation("unknown"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.op))
		})
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(models.Identity{}, OpRoomView)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	err = Authorize(models.Identity{UserID: "s1", Role: models.RoleStudent}, OpBookingCreate)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	assert.NoError(t, Authorize(models.Identity{UserID: "f1", Role: models.RoleFaculty}, OpBookingCreate))
}

func TestOwnershipRules(t *testing.T) {
	admin := models.Identity{UserID: "a", Role: models.RoleAdmin}
	owner := models.Identity{UserID: "f1", Role: models.RoleFaculty}
	other := models.Identity{UserID: "f2", Role: models.RoleFaculty}
	student := models.Identity{UserID: "s1", Role: models.RoleStudent}

	entry := &models.Timetable{FacultyID: "f1"}
	assert.True(t, CanEditTimetable(admin, entry))
	assert.True(t, CanEditTimetable(owner, entry))
	assert.False(t, CanEditTimetable(other, entry))
	assert.False(t, CanEditTimetable(student, entry))

	n := &models.Notification{SenderID: "f1", ReceiverID: "s1"}
	assert.True(t, CanEditNotification(admin, n))
	assert.True(t, CanEditNotification(owner, n))
	assert.False(t, CanEditNotification(other, n))
	assert.False(t, CanEditNotification(student, n))

	assert.True(t, CanDeleteNotification(student, n))
	assert.True(t, CanDeleteNotification(owner, n))
	assert.False(t, CanDeleteNotification(other, n))
	assert.False(t, CanDeleteNotification(models.Identity{UserID: "s2", Role: models.RoleStudent}, n))
}
