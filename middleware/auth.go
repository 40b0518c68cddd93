package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"unisched/models"
	"unisched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey = "identity"
	tokenKey    = "token"

	// LegacyTokenHeader is accepted alongside Authorization: Bearer.
	LegacyTokenHeader = "x-auth-token"
)

// RevocationChecker reports tokens that were logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// JWTAuthMiddleware resolves the caller identity from the access token. When
// the revocation store cannot be reached the signature check alone decides.
func JWTAuthMiddleware(tokens *utils.TokenManager, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			utils.JSONError(c, http.StatusUnauthorized, "No token, authorization denied", "")
			return
		}

		claims, err := tokens.ParseToken(raw)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Token is not valid", "")
			return
		}

		if revoked != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
			isRevoked, err := revoked.IsRevoked(ctx, raw)
			cancel()
			if err != nil {
				zap.L().Warn("Token revocation check skipped", zap.Error(err))
			} else if isRevoked {
				utils.JSONError(c, http.StatusUnauthorized, "Token has been revoked", "")
				return
			}
		}

		c.Set(identityKey, claims.Identity())
		c.Set(tokenKey, raw)
		c.Next()
	}
}

// CurrentIdentity returns the caller set by JWTAuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// CurrentToken returns the raw token of the authenticated request.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader(LegacyTokenHeader))
}
