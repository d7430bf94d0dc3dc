package user

import (
	"context"
	"log/slog"

	appErrors "github.com/frahmantamala/family-ledger/internal"
)

type Repository interface {
	// GetProfile returns nil, nil for an unknown user.
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load profile", "user_id", userID, "error", err)
		return nil, appErrors.NewStorageError("failed to load user", err)
	}
	if p == nil {
		return nil, appErrors.ErrUserNotFound
	}
	return p, nil
}
