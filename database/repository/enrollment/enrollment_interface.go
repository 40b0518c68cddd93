package enrollmentRepo

import (
	"context"

	"unisched/models"
)

// EnrollmentRepository defines methods for enrollment data access.
type EnrollmentRepository interface {
	// Create inserts an enrollment; a repeated (student, course) pair yields database.ErrDuplicate.
	Create(ctx context.Context, e *models.Enrollment) error
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	GetAll(ctx context.Context) ([]models.Enrollment, error)
	GetByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error)
	GetByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error)
	Update(ctx context.Context, e *models.Enrollment) error
	Delete(ctx context.Context, id string) error
}
