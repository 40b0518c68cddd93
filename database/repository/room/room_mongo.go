package roomRepo

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

type MongoRoomRepo struct {
	coll *mongo.Collection
}

func NewMongoRoomRepo(ctx context.Context, db *mongo.Database) RoomRepository {
	repo := &MongoRoomRepo{coll: db.Collection("rooms")}
	if err := repo.ensureIndexes(ctx); err != nil {
		zap.L().Warn("rooms: index creation failed", zap.Error(err))
	}
	return repo
}

func (r *MongoRoomRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create room indexes: %w", err)
	}
	return nil
}

func (r *MongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	now := time.Now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now
	if room.Bookings == nil {
		room.Bookings = []models.Booking{}
	}
	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		return fmt.Errorf("failed to create room: %w", database.Translate(err))
	}
	return nil
}

func (r *MongoRoomRepo) LoadRoom(ctx context.Context, id string) (*models.Room, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	var room models.Room
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load room %s: %w", id, err)
	}
	if room.Bookings == nil {
		room.Bookings = []models.Booking{}
	}
	return &room, nil
}

func (r *MongoRoomRepo) GetAll(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

func (r *MongoRoomRepo) SaveBookings(ctx context.Context, roomID string, expectedVersion int64, bookings []models.Booking) (*models.Room, error) {
	ctx, cancel := database.WithTimeout(ctx, opTimeout)
	defer cancel()

	if bookings == nil {
		bookings = []models.Booking{}
	}
	filter := bson.M{"id": roomID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"bookings": bookings, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Room
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to save bookings for room %s: %w", roomID, err)
	}

	// Nothing matched: either the room is gone or another writer bumped the version.
	n, cErr := r.coll.CountDocuments(ctx, bson.M{"id": roomID})
	if cErr != nil {
		return nil, fmt.Errorf("failed to check room %s: %w", roomID, cErr)
	}
	if n == 0 {
		return nil, database.ErrNotFound
	}
	return nil, database.ErrVersionConflict
}
