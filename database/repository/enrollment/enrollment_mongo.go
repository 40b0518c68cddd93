package enrollmentRepo

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

// MongoEnrollmentRepo implements EnrollmentRepository using MongoDB.
type MongoEnrollmentRepo struct {
	coll *mongo.Collection
}

func NewMongoEnrollmentRepo(ctx context.Context, db *mongo.Database) EnrollmentRepository {
	repo := &MongoEnrollmentRepo{coll: db.Collection("enrollments")}
	if err := repo.ensureIndexes(ctx); err != nil {
		zap.L().Warn("enrollments: index creation failed", zap.Error(err))
	}
	return repo
}

func (r *MongoEnrollmentRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "courseId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "courseId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoEnrollmentRepo) Create(ctx context.Context, e *models.Enrollment) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	e.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to create enrollment: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoEnrollmentRepo) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	var e models.Enrollment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch enrollment %s: %w", id, err)
	}
	return &e, nil
}

func (r *MongoEnrollmentRepo) GetAll(ctx context.Context) ([]models.Enrollment, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoEnrollmentRepo) GetByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	return r.find(ctx, bson.M{"studentId": studentID})
}

func (r *MongoEnrollmentRepo) GetByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error) {
	return r.find(ctx, bson.M{"courseId": courseID})
}

func (r *MongoEnrollmentRepo) find(ctx context.Context, filter bson.M) ([]models.Enrollment, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve enrollments: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Enrollment{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode enrollments: %w", err)
	}
	return out, nil
}

func (r *MongoEnrollmentRepo) Update(ctx context.Context, e *models.Enrollment) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"studentId": e.StudentID, "courseId": e.CourseID}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": e.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update enrollment %s: %w", e.ID, database.Translate(err))
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoEnrollmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete enrollment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
