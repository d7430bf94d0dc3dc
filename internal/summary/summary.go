package summary

import (
	"sort"

	"github.com/frahmantamala/family-ledger/internal/core/common/period"
	"github.com/shopspring/decimal"
)

const (
	DefaultColor = "#cccccc"
	DefaultIcon  = "bi-tag"
)

var (
	thousand = decimal.NewFromInt(1000)
	ten      = decimal.NewFromInt(10)
)

type Summary struct {
	Period     period.Period
	Balance    decimal.Decimal
	Income     decimal.Decimal
	Expense    decimal.Decimal
	TotalSpent decimal.Decimal
	Breakdown  []CategorySpend
}

type CategorySpend struct {
	CategoryID int64
	Name       string
	Color      string
	Icon       string
	Spent      decimal.Decimal
	Percent    float64
}

// SpendRow is one category's raw expense magnitude over a window.
type SpendRow struct {
	CategoryID int64           `db:"category_id"`
	Name       string          `db:"name"`
	Color      string          `db:"color"`
	Icon       string          `db:"icon"`
	Spent      decimal.Decimal `db:"spent"`
}

type Totals struct {
	Income  decimal.Decimal `db:"income"`
	Expense decimal.Decimal `db:"expense"`
}

// Percent is spent/total as a percentage rounded to one decimal place, 0 when total is 0.
func Percent(spent, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return spent.Div(total).Mul(thousand).Round(0).Div(ten).InexactFloat64()
}

// BuildBreakdown orders rows by spend, largest first, and assigns percentages.
func BuildBreakdown(rows []*SpendRow) ([]CategorySpend, decimal.Decimal) {
	total := decimal.Zero
	out := make([]CategorySpend, 0, len(rows))
	for _, r := range rows {
		spent := r.Spent.Round(2)
		total = total.Add(spent)
		cs := CategorySpend{
			CategoryID: r.CategoryID,
			Name:       r.Name,
			Color:      r.Color,
			Icon:       r.Icon,
			Spent:      spent,
		}
		if cs.Color == "" {
			cs.Color = DefaultColor
		}
		if cs.Icon == "" {
			cs.Icon = DefaultIcon
		}
		out = append(out, cs)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Spent.Cmp(out[j].Spent); c != 0 {
			return c > 0
		}
		return out[i].CategoryID < out[j].CategoryID
	})

	for i := range out {
		out[i].Percent = Percent(out[i].Spent, total)
	}
	return out, total
}
