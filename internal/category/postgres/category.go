package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/family-ledger/internal/category"
	categoryDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/category"
	"github.com/frahmantamala/family-ledger/internal/core/store"
	transactionPostgres "github.com/frahmantamala/family-ledger/internal/transaction/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

// visible narrows q to the family's catalog: its own rows plus globals it has not hidden.
func visible(q *gorm.DB, familyID int64) *gorm.DB {
	hidden := store.NewSession(q).
		Model(&categoryDatamodel.HiddenCategory{}).
		Select("category_id").
		Where("family_id = ?", familyID)
	return q.Where(
		store.NewSession(q).
			Where("family_id = ?", familyID).
			Or("family_id IS NULL AND id NOT IN (?)", hidden),
	)
}

func (r *CategoryRepository) ListVisible(ctx context.Context, familyID int64) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	q := r.db.WithContext(ctx).Model(&categoryDatamodel.Category{})
	err := visible(q, familyID).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetVisible(ctx context.Context, familyID, id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	q := r.db.WithContext(ctx).Model(&categoryDatamodel.Category{}).Where("id = ?", id)
	err := visible(q, familyID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	if cat.FamilyID == nil {
		return r.db.WithContext(ctx).Create(cat).Error
	}
	familyID := *cat.FamilyID
	return store.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		taken, err := duplicateExists(tx, familyID, cat.Name, cat.Type, 0)
		if err != nil {
			return err
		}
		if taken {
			return category.ErrDuplicate
		}
		cat.ID = 0
		return tx.Create(cat).Error
	})
}

func (r *CategoryRepository) Update(ctx context.Context, familyID int64, cat *categoryDatamodel.Category) error {
	return store.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		var existing categoryDatamodel.Category
		if err := tx.Where("id = ?", cat.ID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return category.ErrNotFound
			}
			return err
		}
		if existing.FamilyID == nil {
			return category.ErrNotOwned
		}
		if *existing.FamilyID != familyID {
			return category.ErrNotFound
		}
		if cat.Type == "" {
			cat.Type = existing.Type
		}

		taken, err := duplicateExists(tx, familyID, cat.Name, cat.Type, cat.ID)
		if err != nil {
			return err
		}
		if taken {
			return category.ErrDuplicate
		}

		cat.FamilyID = existing.FamilyID
		cat.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Updates(map[string]interface{}{
			"name":  cat.Name,
			"type":  cat.Type,
			"color": cat.Color,
			"icon":  cat.Icon,
		}).Error
	})
}

// DeleteOrHide cascades the family's transactions for the category, then
// removes a family-owned row or records a hide override for anything else.
func (r *CategoryRepository) DeleteOrHide(ctx context.Context, familyID, id int64) (bool, error) {
	hidden := false
	err := store.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		var cat categoryDatamodel.Category
		if err := tx.Where("id = ?", id).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return category.ErrNotFound
			}
			return err
		}

		if _, err := transactionPostgres.DeleteByCategory(tx, familyID, id); err != nil {
			return err
		}

		if cat.FamilyID != nil && *cat.FamilyID == familyID {
			hidden = false
			return tx.Where("id = ? AND family_id = ?", id, familyID).
				Delete(&categoryDatamodel.Category{}).Error
		}

		hidden = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&categoryDatamodel.HiddenCategory{FamilyID: familyID, CategoryID: id}).Error
	})
	return hidden, err
}

func duplicateExists(tx *gorm.DB, familyID int64, name, typ string, excludeID int64) (bool, error) {
	var count int64
	q := store.NewSession(tx).Model(&categoryDatamodel.Category{}).
		Where("LOWER(name) = LOWER(?) AND type = ?", name, typ)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := visible(q, familyID).Count(&count).Error
	return count > 0, err
}
