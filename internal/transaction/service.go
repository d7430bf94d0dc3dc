package transaction

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/category"
	"github.com/frahmantamala/family-ledger/internal/core/common/period"
	transactionDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/transaction"
	"github.com/frahmantamala/family-ledger/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, tx *transactionDatamodel.Transaction) error
	// Query returns rows with from <= date < until, newest first.
	Query(ctx context.Context, familyID, accountID int64, from, until time.Time, categoryID *int64) ([]*transactionDatamodel.WithCategory, error)
	DeleteByCategory(ctx context.Context, familyID, categoryID int64) (int64, error)
	ResetFamily(ctx context.Context, familyID int64) error
}

// CategoryResolver looks up a category in the family's visible catalog.
type CategoryResolver interface {
	Get(ctx context.Context, familyID, id int64) (*category.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryResolver
	publisher  events.Publisher
	clock      period.Clock
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryResolver, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		publisher:  publisher,
		clock:      period.SystemClock,
		logger:     logger,
	}
}

// WithClock replaces the clock used for the default query window.
func (s *Service) WithClock(clock period.Clock) *Service {
	s.clock = clock
	return s
}

func (s *Service) Append(ctx context.Context, scope appErrors.Scope, userID int64, in AppendInput) (*Transaction, error) {
	p, vErr := in.parse()
	if vErr != nil {
		return nil, vErr
	}

	if _, err := s.categories.Get(ctx, scope.FamilyID, p.categoryID); err != nil {
		return nil, err
	}

	t := &Transaction{
		FamilyID:    scope.FamilyID,
		AccountID:   scope.AccountID,
		UserID:      userID,
		CategoryID:  p.categoryID,
		Amount:      p.amount,
		Date:        p.date,
		Description: p.description,
		Who:         p.who,
		CreatedAt:   time.Now(),
	}

	row := ToDataModel(t)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to store transaction", "family_id", scope.FamilyID, "error", err)
		return nil, appErrors.NewStorageError("failed to save transaction", err)
	}
	t.ID = row.ID

	s.logger.Info("transaction recorded",
		"transaction_id", t.ID,
		"family_id", t.FamilyID,
		"category_id", t.CategoryID,
		"amount", t.Amount.String())

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewTransactionRecordedEvent(t.ID, t.FamilyID, t.CategoryID, t.Amount.StringFixed(2))); err != nil {
			s.logger.Warn("failed to publish transaction recorded event", "transaction_id", t.ID, "error", err)
		}
	}
	return t, nil
}

// Query lists the account's transactions in the filter window. It also
// returns the resolved window so callers can echo it back.
func (s *Service) Query(ctx context.Context, scope appErrors.Scope, f Filter) ([]*View, period.Period, error) {
	window, err := period.Parse(f.From, f.To, s.clock())
	if err != nil {
		return nil, period.Period{}, err
	}

	categoryID, err := parseCategoryFilter(f.CategoryID)
	if err != nil {
		return nil, period.Period{}, err
	}

	rows, err := s.repo.Query(ctx, scope.FamilyID, scope.AccountID, window.From, window.End(), categoryID)
	if err != nil {
		s.logger.Error("failed to query transactions", "family_id", scope.FamilyID, "period", window.String(), "error", err)
		return nil, period.Period{}, appErrors.NewStorageError("failed to load transactions", err)
	}

	views := make([]*View, 0, len(rows))
	for _, row := range rows {
		views = append(views, ViewFromDataModel(row))
	}
	return views, window, nil
}

// DeleteByCategory is the cascade step of category removal.
func (s *Service) DeleteByCategory(ctx context.Context, familyID, categoryID int64) (int64, error) {
	n, err := s.repo.DeleteByCategory(ctx, familyID, categoryID)
	if err != nil {
		s.logger.Error("failed to delete transactions by category", "family_id", familyID, "category_id", categoryID, "error", err)
		return 0, appErrors.NewStorageError("failed to delete transactions", err)
	}
	return n, nil
}

// ResetFamily wipes the family's transactions, private categories and hide
// overrides in one unit.
func (s *Service) ResetFamily(ctx context.Context, familyID int64) error {
	if err := s.repo.ResetFamily(ctx, familyID); err != nil {
		s.logger.Error("family reset failed", "family_id", familyID, "error", err)
		return appErrors.NewStorageError("failed to reset family data", err)
	}

	s.logger.Warn("family data reset", "family_id", familyID)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewFamilyResetEvent(familyID)); err != nil {
			s.logger.Warn("failed to publish family reset event", "family_id", familyID, "error", err)
		}
	}
	return nil
}

func parseCategoryFilter(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, CategoryFilterAll) {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, appErrors.NewValidationFieldError("category_id", "category_id must be a category id or \"all\"", appErrors.ErrCodeInvalidCategory)
	}
	return &id, nil
}
