package courseRepo

import (
	"context"

	"unisched/models"

	"go.mongodb.org/mongo-driver/bson"
)

// CourseRepository defines methods for course data access.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetAll(ctx context.Context) ([]models.Course, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Course, error)
	// UpdateFields applies a $set document and returns the updated course.
	UpdateFields(ctx context.Context, id string, set bson.M) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}
