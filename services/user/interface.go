package user

import (
	"context"

	userRepo "unisched/database/repository/user"
	"unisched/models"
	"unisched/utils"

	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, in models.UserRegistration) (*models.User, error)
	// Login returns a signed access token.
	Login(ctx context.Context, in models.UserLogin) (string, error)
	Me(ctx context.Context, actor models.Identity) (*models.User, error)
	// Logout revokes token for the rest of its lifetime.
	Logout(ctx context.Context, actor models.Identity, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Tokens *utils.TokenManager
	Store  TokenStore
	logger *zap.Logger
}

func NewDefaultUserService(repo userRepo.UserRepository, tokens *utils.TokenManager, store TokenStore, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{Repo: repo, Tokens: tokens, Store: store, logger: logger}
}
