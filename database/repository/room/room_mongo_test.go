package roomRepo

import (
	"context"
	"os"
	"testing"
	"time"

	"unisched/database"
	"unisched/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newTestRepo(t *testing.T) RoomRepository {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database("unisched_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewMongoRoomRepo(ctx, db)
}

func TestSaveBookingsCompareAndSwap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	room := &models.Room{ID: uuid.NewString(), Name: "B-101", Capacity: 30, Type: models.RoomClassroom}
	require.NoError(t, repo.Create(ctx, room))

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{{ID: uuid.NewString(), UserID: "u1", StartTime: start, EndTime: start.Add(time.Hour)}}

	saved, err := repo.SaveBookings(ctx, room.ID, 0, bookings)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	assert.Len(t, saved.Bookings, 1)

	_, err = repo.SaveBookings(ctx, room.ID, 0, nil)
	assert.ErrorIs(t, err, database.ErrVersionConflict)

	_, err = repo.SaveBookings(ctx, uuid.NewString(), 0, nil)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCreateDuplicateName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Room{ID: uuid.NewString(), Name: "Lab 1", Capacity: 10, Type: models.RoomLab}))
	err := repo.Create(ctx, &models.Room{ID: uuid.NewString(), Name: "Lab 1", Capacity: 12, Type: models.RoomLab})
	assert.ErrorIs(t, err, database.ErrDuplicate)
}
