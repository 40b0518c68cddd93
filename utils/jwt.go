package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"unisched/models"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller identity inside an access token.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.StandardClaims
}

// Identity returns the caller described by the claims.
func (c *Claims) Identity() models.Identity {
	return models.Identity{UserID: c.Subject, Role: c.Role}
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// GenerateToken creates a signed token for id that expires after the configured TTL.
func (m *TokenManager) GenerateToken(id models.Identity) (string, error) {
	now := m.now()
	claims := Claims{
		Role: id.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   id.UserID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken validates signature and expiry and returns the embedded claims.
func (m *TokenManager) ParseToken(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
