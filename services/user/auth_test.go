package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"unisched/database"
	"unisched/models"
	"unisched/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.Email == u.Email || x.Username == u.Username {
			return database.ErrDuplicate
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) GetByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*DefaultUserService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewDefaultUserService(
		&memUsers{users: map[string]models.User{}},
		utils.NewTokenManager("test-secret", time.Hour),
		NewRedisTokenStore(client),
		nil,
	)
	return svc, mr
}

func TestRegisterLoginMe(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, models.UserRegistration{Username: "ada", Email: "Ada@Uni.edu", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, u.Role)
	assert.Equal(t, "ada@uni.edu", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = svc.Register(ctx, models.UserRegistration{Username: "ada2", Email: "ada@uni.edu", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Login(ctx, models.UserLogin{Email: "ada@uni.edu", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.UserLogin{Email: "nobody@uni.edu", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login(ctx, models.UserLogin{Email: "ada@uni.edu", Password: "secret1"})
	require.NoError(t, err)

	claims, err := svc.Tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, models.RoleStudent, claims.Role)

	me, err := svc.Me(ctx, claims.Identity())
	require.NoError(t, err)
	assert.Equal(t, "ada", me.Username)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), models.UserRegistration{Username: "x", Email: "x@y.z", Password: "secret1", Role: "Dean"})
	assert.ErrorIs(t, err, utils.ErrInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, models.UserRegistration{Username: "prof", Email: "prof@uni.edu", Password: "secret1", Role: models.RoleFaculty})
	require.NoError(t, err)
	token, err := svc.Login(ctx, models.UserLogin{Email: "prof@uni.edu", Password: "secret1"})
	require.NoError(t, err)

	revoked, err := svc.Store.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	actor := models.Identity{UserID: u.ID, Role: u.Role}
	require.NoError(t, svc.Logout(ctx, actor, token))

	revoked, err = svc.Store.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	key := revokedKey(token)
	assert.True(t, mr.TTL(key) > 0 && mr.TTL(key) <= time.Hour)

	mr.FastForward(2 * time.Hour)
	revoked, err = svc.Store.IsRevoked(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestLogoutWhenRedisDown(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, _ := svc.Register(ctx, models.UserRegistration{Username: "p", Email: "p@uni.edu", Password: "secret1", Role: models.RoleAdmin})
	token, err := svc.Login(ctx, models.UserLogin{Email: "p@uni.edu", Password: "secret1"})
	require.NoError(t, err)

	dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = dead.Close() })
	svc.Store = NewRedisTokenStore(dead)

	err = svc.Logout(ctx, models.Identity{UserID: u.ID, Role: u.Role}, token)
	assert.ErrorIs(t, err, utils.ErrUnavailable)
}
