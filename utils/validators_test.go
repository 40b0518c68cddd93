package utils

import (
	"testing"

	"unisched/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, registerOn(v))
	v.SetTagName("binding")
	return v
}

func TestRoomInputValidation(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(models.RoomInput{Name: "A101", Capacity: 30, Type: models.RoomLab}))

	err := v.Struct(models.RoomInput{Name: "A101", Capacity: 30, Type: "Gym"})
	require.Error(t, err)
	assert.Contains(t, ValidationMessage(err), "type must be one of")

	err = v.Struct(models.RoomInput{Type: models.RoomLab})
	require.Error(t, err)
	msg := ValidationMessage(err)
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "capacity is required")
}

func TestRegistrationRoleIsOptional(t *testing.T) {
	v := newTestValidator(t)
	in := models.UserRegistration{Username: "ada", Email: "ada@example.com", Password: "secret1"}
	assert.NoError(t, v.Struct(in))

	in.Role = "Dean"
	err := v.Struct(in)
	require.Error(t, err)
	assert.Equal(t, "role must be one of Admin, Faculty, Student", ValidationMessage(err))
}

func TestValidationMessageFallback(t *testing.T) {
	assert.Equal(t, "invalid request body", ValidationMessage(assert.AnError))
}
