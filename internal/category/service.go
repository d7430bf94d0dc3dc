package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	appErrors "github.com/frahmantamala/family-ledger/internal"
	categoryDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/category"
	"github.com/frahmantamala/family-ledger/internal/core/events"
)

type RepositoryAPI interface {
	ListVisible(ctx context.Context, familyID int64) ([]*categoryDatamodel.Category, error)
	// GetVisible returns nil, nil when the category is not in the family's catalog.
	GetVisible(ctx context.Context, familyID, id int64) (*categoryDatamodel.Category, error)
	Create(ctx context.Context, category *categoryDatamodel.Category) error
	Update(ctx context.Context, familyID int64, category *categoryDatamodel.Category) error
	DeleteOrHide(ctx context.Context, familyID, id int64) (hidden bool, err error)
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) ListVisible(ctx context.Context, familyID int64) ([]*Category, error) {
	rows, err := s.repo.ListVisible(ctx, familyID)
	if err != nil {
		s.logger.Error("failed to list categories", "family_id", familyID, "error", err)
		return nil, appErrors.NewStorageError("failed to load categories", err)
	}

	categories := make([]*Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, FromDataModel(row))
	}
	return categories, nil
}

func (s *Service) Get(ctx context.Context, familyID, id int64) (*Category, error) {
	row, err := s.repo.GetVisible(ctx, familyID, id)
	if err != nil {
		s.logger.Error("failed to get category", "family_id", familyID, "category_id", id, "error", err)
		return nil, appErrors.NewStorageError("failed to load category", err)
	}
	if row == nil {
		return nil, appErrors.ErrCategoryNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, familyID int64, in Input) (*Category, error) {
	normalized, vErr := in.Normalize()
	if vErr != nil {
		return nil, vErr
	}

	cat := NewCategory(&familyID, normalized)
	row := ToDataModel(cat)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, s.mapRepoError("create", familyID, 0, err)
	}

	s.logger.Info("category created", "family_id", familyID, "category_id", row.ID, "type", row.Type)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, familyID, id int64, in Input) (*Category, error) {
	normalized, vErr := in.Normalize()
	if vErr != nil {
		return nil, vErr
	}

	cat := NewCategory(&familyID, normalized)
	cat.ID = id
	row := ToDataModel(cat)
	if strings.TrimSpace(in.Type) == "" {
		// an omitted type keeps the stored one
		row.Type = ""
	}
	if err := s.repo.Update(ctx, familyID, row); err != nil {
		return nil, s.mapRepoError("update", familyID, id, err)
	}
	row.UpdatedAt = time.Now()

	s.logger.Info("category updated", "family_id", familyID, "category_id", id)
	return FromDataModel(row), nil
}

// Delete removes a family-owned category, or hides a shared one for this
// family. The family's transactions in that category are removed either way.
func (s *Service) Delete(ctx context.Context, familyID, id int64) error {
	hidden, err := s.repo.DeleteOrHide(ctx, familyID, id)
	if err != nil {
		return s.mapRepoError("delete", familyID, id, err)
	}

	s.logger.Info("category removed", "family_id", familyID, "category_id", id, "hidden", hidden)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewCategoryDeletedEvent(familyID, id, hidden)); err != nil {
			s.logger.Warn("failed to publish category deleted event", "family_id", familyID, "category_id", id, "error", err)
		}
	}
	return nil
}

func (s *Service) mapRepoError(op string, familyID, id int64, err error) error {
	switch {
	case errors.Is(err, ErrDuplicate):
		return appErrors.NewConflictError("a category with this name and type already exists", appErrors.ErrCodeDuplicateCategory)
	case errors.Is(err, ErrNotFound):
		return appErrors.ErrCategoryNotFound
	case errors.Is(err, ErrNotOwned):
		return appErrors.ErrCategoryNotOwned
	}
	s.logger.Error("category repository failure", "op", op, "family_id", familyID, "category_id", id, "error", err)
	return appErrors.NewStorageError("failed to "+op+" category", err)
}
