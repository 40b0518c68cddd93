package courseRepo

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
	"go.uber.org/zap"
)

const opTimeout = 5 * time.Second

// MongoCourseRepo implements CourseRepository using MongoDB.
type MongoCourseRepo struct {
	coll *mongo.Collection
}

func NewMongoCourseRepo(ctx context.Context, db *mongo.Database) CourseRepository {
	repo := &MongoCourseRepo{coll: db.Collection("courses")}
	if err := repo.ensureIndexes(ctx); err != nil {
		zap.L().Warn("courses: index creation failed", zap.Error(err))
	}
	return repo
}

func (r *MongoCourseRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "facultyId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCourseRepo) Create(ctx context.Context, course *models.Course) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c models.Course
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch course %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoCourseRepo) GetAll(ctx context.Context) ([]models.Course, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoCourseRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Course, error) {
	out := make(map[string]models.Course, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	courses, err := r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		out[c.ID] = c
	}
	return out, nil
}

func (r *MongoCourseRepo) find(ctx context.Context, filter bson.M) ([]models.Course, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}

func (r *MongoCourseRepo) UpdateFields(ctx context.Context, id string, set bson.M) (*models.Course, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Course
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update course %s: %w", id, database.Translate(err))
	}
	return &c, nil
}

func (r *MongoCourseRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
