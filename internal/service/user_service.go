package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
)

// UserService serves account lookups for authenticated callers.
type UserService struct {
	repo   UserRepository
	logger *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// GetSelf returns the stored record of the authenticated user. Callers may
// only read their own record.
func (s *UserService) GetSelf(ctx context.Context, requesterID, id string) (*models.User, error) {
	if requesterID == "" || requesterID != id {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot access another user's record")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists")
		}
		return nil, storeError(err, "user", "load user")
	}
	return user, nil
}
