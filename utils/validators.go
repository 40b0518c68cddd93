package utils

import (
	"errors"
	"reflect"
	"strings"

	"unisched/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// custom validation tags
const (
	roomTypeTag         = "roomtype"
	roleTag             = "role"
	notificationTypeTag = "notificationtype"
)

// RegisterValidators installs the custom tags on gin's validator engine and
// reports field errors by their JSON names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(roomTypeTag, validateRoomType); err != nil {
		return err
	}
	if err := v.RegisterValidation(roleTag, validateRole); err != nil {
		return err
	}
	return v.RegisterValidation(notificationTypeTag, validateNotificationType)
}

func validateRoomType(fl validator.FieldLevel) bool {
	return models.RoomType(fl.Field().String()).Valid()
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

func validateNotificationType(fl validator.FieldLevel) bool {
	return models.NotificationType(fl.Field().String()).Valid()
}

// ValidationMessage renders binding errors as a short client message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case roomTypeTag:
			parts = append(parts, fe.Field()+" must be one of Classroom, Lecture Hall, Lab, Projector Room, Conference Room")
		case roleTag:
			parts = append(parts, fe.Field()+" must be one of Admin, Faculty, Student")
		case notificationTypeTag:
			parts = append(parts, fe.Field()+" must be one of timetableChange, roomChange, announcement")
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
