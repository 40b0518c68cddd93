// File: database/repository/timetable/queries.go
package timetableRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unisched/database"
	"unisched/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTimetableRepo) GetByID(ctx context.Context, id string) (*models.Timetable, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t models.Timetable
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch timetable entry %s: %w", id, err)
	}
	return &t, nil
}

func (r *mongoTimetableRepo) List(ctx context.Context, courseID string) ([]models.Timetable, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if courseID != "" {
		filter["courseId"] = courseID
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetable: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Timetable{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode timetable: %w", err)
	}
	return out, nil
}
