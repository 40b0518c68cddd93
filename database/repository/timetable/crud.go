// File: database/repository/timetable/crud.go
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

func (r *mongoTimetableRepo) Create(ctx context.Context, entry *models.Timetable) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create timetable entry: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoTimetableRepo) Reschedule(ctx context.Context, id string, date time.Time, slot, location string) (*models.Timetable, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"date":      date,
		"time":      slot,
		"location":  location,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Timetable
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update timetable entry %s: %w", id, err)
	}
	return &out, nil
}

func (r *mongoTimetableRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete timetable entry %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
