package transaction

import (
	"strings"
	"time"

	transactionDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/transaction"
	"github.com/shopspring/decimal"
)

const (
	WhoMe         = "me"
	WhoGirlfriend = "girlfriend"
	WhoShared     = "shared"

	TypeIncome  = "income"
	TypeExpense = "expense"

	// CategoryFilterAll disables the category filter on queries.
	CategoryFilterAll = "all"

	MaxDescriptionLength = 500
)

// maxAmount is the exclusive magnitude bound of numeric(14,2).
var maxAmount = decimal.New(1, 12)

type Transaction struct {
	ID          int64           `json:"id"`
	FamilyID    int64           `json:"family_id"`
	AccountID   int64           `json:"account_id"`
	UserID      int64           `json:"user_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"-"`
	Description *string         `json:"description"`
	Who         string          `json:"who"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// View is a transaction as listed to the family, with category display data.
type View struct {
	Transaction
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
	CategoryIcon  string `json:"category_icon"`
}

// ParseWho reads the attribution tag. An empty value means shared.
func ParseWho(who string) (string, bool) {
	switch w := strings.TrimSpace(strings.ToLower(who)); w {
	case "":
		return WhoShared, true
	case WhoMe, WhoGirlfriend, WhoShared:
		return w, true
	}
	return "", false
}

// ParseType reads the optional transaction type. Empty means the amount's
// sign is taken as given.
func ParseType(typ string) (string, bool) {
	switch t := strings.TrimSpace(strings.ToLower(typ)); t {
	case "", TypeIncome, TypeExpense:
		return t, true
	}
	return "", false
}

// SignedAmount applies the sign convention: expenses are stored negative.
func SignedAmount(amount decimal.Decimal, typ string) decimal.Decimal {
	if typ == TypeExpense && amount.IsPositive() {
		return amount.Neg()
	}
	return amount
}

func ToDataModel(t *Transaction) *transactionDatamodel.Transaction {
	return &transactionDatamodel.Transaction{
		ID:          t.ID,
		FamilyID:    t.FamilyID,
		AccountID:   t.AccountID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		Who:         t.Who,
		CreatedAt:   t.CreatedAt,
	}
}

func FromDataModel(t *transactionDatamodel.Transaction) *Transaction {
	return &Transaction{
		ID:          t.ID,
		FamilyID:    t.FamilyID,
		AccountID:   t.AccountID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Date:        t.Date.UTC(),
		Description: t.Description,
		Who:         t.Who,
		CreatedAt:   t.CreatedAt,
	}
}

func ViewFromDataModel(row *transactionDatamodel.WithCategory) *View {
	return &View{
		Transaction:   *FromDataModel(&row.Transaction),
		CategoryName:  row.CategoryName,
		CategoryColor: row.CategoryColor,
		CategoryIcon:  row.CategoryIcon,
	}
}
