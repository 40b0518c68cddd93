package notificationRepo

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

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepo(ctx context.Context, db *mongo.Database) NotificationRepository {
	repo := &mongoNotificationRepo{coll: db.Collection("notifications")}

	ictx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ictx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		zap.L().Warn("notifications: index creation failed", zap.Error(err))
	}
	return repo
}

func (r *mongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoNotificationRepo) CreateMany(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(ns))
	for i := range ns {
		if ns[i].Timestamp.IsZero() {
			ns[i].Timestamp = time.Now().UTC()
		}
		docs = append(docs, ns[i])
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create notifications: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	var n models.Notification
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification %s: %w", id, err)
	}
	return &n, nil
}

func (r *mongoNotificationRepo) GetByReceiver(ctx context.Context, receiverID string) ([]models.Notification, error) {
	return r.find(ctx, bson.M{"receiverId": receiverID})
}

func (r *mongoNotificationRepo) GetAll(ctx context.Context) ([]models.Notification, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoNotificationRepo) find(ctx context.Context, filter bson.M) ([]models.Notification, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Notification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return out, nil
}

func (r *mongoNotificationRepo) UpdateMessage(ctx context.Context, id, message string) (*models.Notification, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Notification
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"message": message}}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update notification %s: %w", id, err)
	}
	return &out, nil
}

func (r *mongoNotificationRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
