package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int64           `gorm:"primaryKey"`
	FamilyID    int64           `gorm:"column:family_id;not null;index:idx_transactions_family_date"`
	AccountID   int64           `gorm:"column:account_id;not null;index"`
	UserID      int64           `gorm:"column:user_id;not null"`
	CategoryID  int64           `gorm:"column:category_id;not null;index"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Date        time.Time       `gorm:"column:date;type:date;not null;index:idx_transactions_family_date"`
	Description *string         `gorm:"column:description"`
	Who         string          `gorm:"column:who;not null;default:shared"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// WithCategory is a transaction row joined with its category's display fields.
type WithCategory struct {
	Transaction
	CategoryName  string `gorm:"column:category_name"`
	CategoryColor string `gorm:"column:category_color"`
	CategoryIcon  string `gorm:"column:category_icon"`
}
