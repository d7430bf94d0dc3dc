package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/family-ledger/internal/summary"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const (
	balanceQuery = `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE family_id = ? AND account_id = ?`

	totalsQuery = `
		SELECT
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN amount < 0 THEN amount ELSE 0 END), 0) AS expense
		FROM transactions
		WHERE family_id = ? AND account_id = ?
		  AND date >= ? AND date < ?`

	spendByCategoryQuery = `
		SELECT
			t.category_id AS category_id,
			COALESCE(c.name, '') AS name,
			COALESCE(c.color, '') AS color,
			COALESCE(c.icon, '') AS icon,
			SUM(-t.amount) AS spent
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.family_id = ? AND t.account_id = ?
		  AND t.date >= ? AND t.date < ?
		  AND t.amount < 0
		GROUP BY t.category_id, c.name, c.color, c.icon
		ORDER BY spent DESC, t.category_id ASC`
)

// SummaryRepository runs the read-only aggregate queries through sqlx.
type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) summary.RepositoryAPI {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Balance(ctx context.Context, familyID, accountID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance, r.db.Rebind(balanceQuery), familyID, accountID)
	return balance, err
}

func (r *SummaryRepository) Totals(ctx context.Context, familyID, accountID int64, from, until time.Time) (*summary.Totals, error) {
	var totals summary.Totals
	err := r.db.GetContext(ctx, &totals, r.db.Rebind(totalsQuery),
		familyID, accountID, from.Format(time.DateOnly), until.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *SummaryRepository) SpendByCategory(ctx context.Context, familyID, accountID int64, from, until time.Time) ([]*summary.SpendRow, error) {
	rows := []*summary.SpendRow{}
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(spendByCategoryQuery),
		familyID, accountID, from.Format(time.DateOnly), until.Format(time.DateOnly))
	return rows, err
}
