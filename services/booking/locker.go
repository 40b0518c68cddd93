package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"unisched/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalLocker serializes room mutations inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	rooms map[string]*roomSlot
}

type roomSlot struct {
	sem  chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{rooms: make(map[string]*roomSlot)}
}

func (l *LocalLocker) Lock(ctx context.Context, roomID string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.rooms[roomID]
	if !ok {
		slot = &roomSlot{sem: make(chan struct{}, 1)}
		l.rooms[roomID] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.sem
				l.release(roomID, slot)
			})
		}, nil
	case <-ctx.Done():
		l.release(roomID, slot)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) release(roomID string, slot *roomSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.rooms, roomID)
	}
}

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes room mutations across instances sharing a Redis.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewRedisLocker returns a locker whose keys expire after ttl, so a crashed
// holder cannot block a room forever.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, retry: 25 * time.Millisecond}
}

func (l *RedisLocker) Lock(ctx context.Context, roomID string) (func(), error) {
	key := utils.RoomLockPrefix + roomID
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("acquire room lock %s: %w", roomID, err)
		}
		if ok {
			break
		}
		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				zap.L().Warn("room lock release failed", zap.String("roomId", roomID), zap.Error(err))
			}
		})
	}, nil
}
