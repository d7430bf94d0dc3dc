package postgres

import (
	"context"
	"time"

	categoryDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/category"
	transactionDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/transaction"
	"github.com/frahmantamala/family-ledger/internal/core/store"
	"github.com/frahmantamala/family-ledger/internal/transaction"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.RepositoryAPI {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *transactionDatamodel.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *TransactionRepository) Query(ctx context.Context, familyID, accountID int64, from, until time.Time, categoryID *int64) ([]*transactionDatamodel.WithCategory, error) {
	var rows []*transactionDatamodel.WithCategory
	q := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("t.*, c.name AS category_name, c.color AS category_color, c.icon AS category_icon").
		Joins("LEFT JOIN categories AS c ON c.id = t.category_id").
		Where("t.family_id = ? AND t.account_id = ?", familyID, accountID).
		Where("t.date >= ? AND t.date < ?", from.Format(time.DateOnly), until.Format(time.DateOnly))
	if categoryID != nil {
		q = q.Where("t.category_id = ?", *categoryID)
	}
	err := q.Order("t.date DESC").Order("t.id DESC").Find(&rows).Error
	return rows, err
}

func (r *TransactionRepository) DeleteByCategory(ctx context.Context, familyID, categoryID int64) (int64, error) {
	return DeleteByCategory(r.db.WithContext(ctx), familyID, categoryID)
}

// DeleteByCategory removes every transaction of the family in the category.
// It takes the caller's handle so category removal can run it inside its own
// transaction.
func DeleteByCategory(tx *gorm.DB, familyID, categoryID int64) (int64, error) {
	res := tx.Where("family_id = ? AND category_id = ?", familyID, categoryID).
		Delete(&transactionDatamodel.Transaction{})
	return res.RowsAffected, res.Error
}

func (r *TransactionRepository) ResetFamily(ctx context.Context, familyID int64) error {
	return store.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("family_id = ?", familyID).Delete(&transactionDatamodel.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", familyID).Delete(&categoryDatamodel.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("family_id = ?", familyID).Delete(&categoryDatamodel.HiddenCategory{}).Error
	})
}
