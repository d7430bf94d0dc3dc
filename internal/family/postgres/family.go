package postgres

import (
	"context"
	"errors"

	familyDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/family"
	"github.com/frahmantamala/family-ledger/internal/family"
	"gorm.io/gorm"
)

type FamilyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) family.RepositoryAPI {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) MembershipForUser(ctx context.Context, userID int64) (*familyDatamodel.FamilyMember, error) {
	var m familyDatamodel.FamilyMember
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("family_id ASC").First(&m).Error
	return firstOrNil(&m, err)
}

// MainAccount prefers the primary account and falls back to the oldest one.
func (r *FamilyRepository) MainAccount(ctx context.Context, familyID int64) (*familyDatamodel.Account, error) {
	var a familyDatamodel.Account
	err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("is_primary DESC").Order("id ASC").
		First(&a).Error
	return firstOrNil(&a, err)
}

func (r *FamilyRepository) GetFamily(ctx context.Context, familyID int64) (*familyDatamodel.Family, error) {
	var f familyDatamodel.Family
	err := r.db.WithContext(ctx).Where("id = ?", familyID).First(&f).Error
	return firstOrNil(&f, err)
}

func (r *FamilyRepository) Members(ctx context.Context, familyID int64) ([]*familyDatamodel.FamilyMember, error) {
	var members []*familyDatamodel.FamilyMember
	err := r.db.WithContext(ctx).Where("family_id = ?", familyID).Order("created_at ASC").Order("user_id ASC").Find(&members).Error
	return members, err
}

func firstOrNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
