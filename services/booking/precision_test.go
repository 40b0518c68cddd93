package booking

import (
	"context"
	"testing"
	"time"

	"unisched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonStore persists bookings through a BSON encode/decode, losing
// sub-millisecond precision the same way the Mongo repository does.
type bsonStore struct {
	*memStore
	t *testing.T
}

func (s bsonStore) SaveBookings(ctx context.Context, id string, version int64, bookings []models.Booking) (*models.Room, error) {
	type doc struct {
		Bookings []models.Booking `bson:"bookings"`
	}
	raw, err := bson.Marshal(doc{Bookings: bookings})
	require.NoError(s.t, err)
	var decoded doc
	require.NoError(s.t, bson.Unmarshal(raw, &decoded))
	return s.memStore.SaveBookings(ctx, id, version, decoded.Bookings)
}

func TestSubMillisecondIntervalIsRejected(t *testing.T) {
	store := bsonStore{memStore: newMemStore(testRoom()), t: t}
	e := newTestEngine(store, nil)

	start := at(10, 0).Add(100 * time.Microsecond)
	_, err := e.AdmitCreate(context.Background(), faculty, "room-1", Interval{Start: start, End: start.Add(800 * time.Microsecond)})

	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Empty(t, store.bookings("room-1"))
	assert.Equal(t, 0, store.saves)
}

func TestReturnedBookingMatchesStoredBooking(t *testing.T) {
	store := bsonStore{memStore: newMemStore(testRoom()), t: t}
	e := newTestEngine(store, nil)
	ctx := context.Background()

	noisy := Interval{
		Start: at(10, 0).Add(500 * time.Microsecond),
		End:   at(11, 0).Add(700*time.Microsecond + 3),
	}
	created, err := e.AdmitCreate(ctx, faculty, "room-1", noisy)
	require.NoError(t, err)

	stored := store.bookings("room-1")
	require.Len(t, stored, 1)
	assert.True(t, stored[0].StartTime.Equal(created.StartTime))
	assert.True(t, stored[0].EndTime.Equal(created.EndTime))
	assert.True(t, stored[0].StartTime.Before(stored[0].EndTime))
	assert.True(t, created.StartTime.Equal(at(10, 0)))

	moved, err := e.AdmitUpdate(ctx, faculty, "room-1", created.ID, Interval{
		Start: at(12, 0).Add(999 * time.Microsecond),
		End:   at(13, 0).Add(1500 * time.Microsecond),
	})
	require.NoError(t, err)

	stored = store.bookings("room-1")
	require.Len(t, stored, 1)
	assert.True(t, stored[0].StartTime.Equal(moved.StartTime))
	assert.True(t, stored[0].EndTime.Equal(moved.EndTime))
	assert.True(t, moved.EndTime.Equal(at(13, 0).Add(time.Millisecond)))
}

func TestNormalizedTruncatesToMilliseconds(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	i := Interval{
		Start: time.Date(2026, 1, 5, 13, 0, 0, 1_999_999, loc),
		End:   time.Date(2026, 1, 5, 14, 0, 0, 0, loc),
	}.Normalized()

	assert.Equal(t, time.UTC, i.Start.Location())
	assert.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, int(time.Millisecond), time.UTC), i.Start)
	assert.Equal(t, time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC), i.End)
}
