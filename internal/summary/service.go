package summary

import (
	"context"
	"log/slog"
	"time"

	appErrors "github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/core/common/period"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type RepositoryAPI interface {
	// Balance sums every transaction of the account, ignoring dates.
	Balance(ctx context.Context, familyID, accountID int64) (decimal.Decimal, error)
	Totals(ctx context.Context, familyID, accountID int64, from, until time.Time) (*Totals, error)
	SpendByCategory(ctx context.Context, familyID, accountID int64, from, until time.Time) ([]*SpendRow, error)
}

type Service struct {
	repo   RepositoryAPI
	clock  period.Clock
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		clock:  period.SystemClock,
		logger: logger,
	}
}

func (s *Service) WithClock(clock period.Clock) *Service {
	s.clock = clock
	return s
}

// Summarize reduces the account's ledger over [from, to] into totals and a
// per-category spend breakdown. Empty bounds default to the current month.
func (s *Service) Summarize(ctx context.Context, scope appErrors.Scope, from, to string) (*Summary, error) {
	window, err := period.Parse(from, to, s.clock())
	if err != nil {
		return nil, err
	}

	var (
		balance decimal.Decimal
		totals  *Totals
		rows    []*SpendRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if balance, err = s.repo.Balance(gctx, scope.FamilyID, scope.AccountID); err != nil {
			return s.storageError("balance", scope, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if totals, err = s.repo.Totals(gctx, scope.FamilyID, scope.AccountID, window.From, window.End()); err != nil {
			return s.storageError("totals", scope, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rows, err = s.repo.SpendByCategory(gctx, scope.FamilyID, scope.AccountID, window.From, window.End()); err != nil {
			return s.storageError("breakdown", scope, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdown, totalSpent := BuildBreakdown(rows)
	return &Summary{
		Period:     window,
		Balance:    balance.Round(2),
		Income:     totals.Income.Round(2),
		Expense:    totals.Expense.Round(2),
		TotalSpent: totalSpent,
		Breakdown:  breakdown,
	}, nil
}

func (s *Service) storageError(step string, scope appErrors.Scope, err error) error {
	s.logger.Error("summary query failed", "step", step, "family_id", scope.FamilyID, "account_id", scope.AccountID, "error", err)
	return appErrors.NewStorageError("failed to build summary", err)
}
