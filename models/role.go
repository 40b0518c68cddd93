package models

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleFaculty Role = "Faculty"
	RoleStudent Role = "Student"
)

// Roles lists every valid role in priority order.
var Roles = []Role{RoleAdmin, RoleFaculty, RoleStudent}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	}
	return false
}

// IsStaff reports whether r may manage schedules (Admin or Faculty).
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleFaculty
}

// ParseRole converts a raw string into a Role. An empty string maps to RoleStudent.
func ParseRole(raw string) (Role, error) {
	if raw == "" {
		return RoleStudent, nil
	}
	r := Role(raw)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}

// Identity is the authenticated caller, passed explicitly into every service call.
type Identity struct {
	UserID string `json:"id"`
	Role   Role   `json:"role"`
}
