package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"unisched/database"
	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = utils.Conflict("User already exists")
	ErrInvalidCredentials = utils.Invalid("Invalid credentials")
	ErrUserNotFound       = utils.NotFound("User not found")
)

func (s *DefaultUserService) Register(ctx context.Context, in models.UserRegistration) (*models.User, error) {
	role, err := models.ParseRole(string(in.Role))
	if err != nil {
		return nil, utils.Invalid("Invalid role")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	taken, err := s.Repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to check user", err)
	}
	if taken {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to create user", err)
	}
	s.logger.Info("User registered", zap.String("userId", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *DefaultUserService) Login(ctx context.Context, in models.UserLogin) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", utils.Wrap(utils.KindInternal, "failed to fetch user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.Tokens.GenerateToken(models.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return "", utils.Wrap(utils.KindInternal, "failed to issue token", err)
	}
	return token, nil
}

func (s *DefaultUserService) Me(ctx context.Context, actor models.Identity) (*models.User, error) {
	if err := access.Authorize(actor, access.OpViewProfile); err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to fetch user", err)
	}
	return u, nil
}

func (s *DefaultUserService) Logout(ctx context.Context, actor models.Identity, token string) error {
	if err := access.Authorize(actor, access.OpLogout); err != nil {
		return err
	}
	claims, err := s.Tokens.ParseToken(token)
	if err != nil {
		return utils.NewError(utils.KindUnauthorized, "Token is not valid")
	}
	remaining := time.Until(time.Unix(claims.ExpiresAt, 0))
	if remaining <= 0 {
		return nil
	}
	if s.Store == nil {
		return utils.NewError(utils.KindUnavailable, "Token store unavailable")
	}
	if err := s.Store.Revoke(ctx, token, remaining); err != nil {
		return utils.Wrap(utils.KindUnavailable, "Token store unavailable", err)
	}
	return nil
}
