package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/family-ledger/internal/auth"
	familyDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/family"
	userDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/user"
	"github.com/frahmantamala/family-ledger/internal/core/store"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) CreateHousehold(ctx context.Context, u *userDatamodel.User, familyName, accountName string) (int64, error) {
	var familyID int64
	err := store.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		u.ID = 0
		if err := tx.Create(u).Error; err != nil {
			if store.IsDuplicateKey(err) {
				return auth.ErrEmailExists
			}
			return err
		}

		family := &familyDatamodel.Family{Name: familyName}
		if err := tx.Create(family).Error; err != nil {
			return err
		}

		member := &familyDatamodel.FamilyMember{
			FamilyID: family.ID,
			UserID:   u.ID,
			Role:     familyDatamodel.RoleOwner,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		account := &familyDatamodel.Account{
			FamilyID:  family.ID,
			Name:      accountName,
			IsPrimary: true,
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}

		familyID = family.ID
		return nil
	})
	return familyID, err
}
