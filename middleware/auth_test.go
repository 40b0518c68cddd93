package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[token], nil
}

func newAuthRouter(tm *utils.TokenManager, rc RevocationChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(tm, rc))
	r.GET("/me", func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, id)
	})
	r.POST("/rooms", RequireOperation(access.OpRoomCreate), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	tm := utils.NewTokenManager("secret", time.Hour)
	rc := &fakeRevocations{revoked: map[string]bool{}}
	r := newAuthRouter(tm, rc)

	token, err := tm.GenerateToken(models.Identity{UserID: "u1", Role: models.RoleFaculty})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer garbage"}).Code)

	w := do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"Faculty"}`, w.Body.String())

	w = do(r, http.MethodGet, "/me", map[string]string{LegacyTokenHeader: token})
	assert.Equal(t, http.StatusOK, w.Code)

	other := utils.NewTokenManager("different", time.Hour)
	forged, _ := other.GenerateToken(models.Identity{UserID: "u1", Role: models.RoleAdmin})
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + forged}).Code)

	rc.revoked[token] = true
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token}).Code)

	rc.err = errors.New("redis down")
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token}).Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := utils.NewTokenManager("secret", -time.Minute)
	r := newAuthRouter(tm, nil)
	token, err := tm.GenerateToken(models.Identity{UserID: "u1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token}).Code)
}

func TestRequireOperation(t *testing.T) {
	tm := utils.NewTokenManager("secret", time.Hour)
	r := newAuthRouter(tm, nil)

	faculty, _ := tm.GenerateToken(models.Identity{UserID: "f1", Role: models.RoleFaculty})
	admin, _ := tm.GenerateToken(models.Identity{UserID: "a1", Role: models.RoleAdmin})

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/rooms", map[string]string{"Authorization": "Bearer " + faculty}).Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/rooms", map[string]string{"Authorization": "Bearer " + admin}).Code)
}
