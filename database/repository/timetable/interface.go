// File: database/repository/timetable/interface.go
package timetableRepo

import (
	"context"
	"time"

	"unisched/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type TimetableRepository interface {
	Create(ctx context.Context, entry *models.Timetable) error
	GetByID(ctx context.Context, id string) (*models.Timetable, error)
	// List returns entries ordered by date; an empty courseID lists everything.
	List(ctx context.Context, courseID string) ([]models.Timetable, error)
	Reschedule(ctx context.Context, id string, date time.Time, slot, location string) (*models.Timetable, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoTimetableRepo struct {
	coll *mongo.Collection
}

// NewMongoTimetableRepo constructs a new MongoDB TimetableRepository.
func NewMongoTimetableRepo(ctx context.Context, db *mongo.Database) TimetableRepository {
	repo := &mongoTimetableRepo{coll: db.Collection("timetables")}
	if err := repo.ensureIndexes(ctx); err != nil {
		zap.L().Warn("timetables: index creation failed", zap.Error(err))
	}
	return repo
}
