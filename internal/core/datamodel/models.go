package datamodel

import (
	"github.com/frahmantamala/family-ledger/internal/core/datamodel/category"
	"github.com/frahmantamala/family-ledger/internal/core/datamodel/family"
	"github.com/frahmantamala/family-ledger/internal/core/datamodel/transaction"
	"github.com/frahmantamala/family-ledger/internal/core/datamodel/user"
)

// Models lists every persisted model in dependency order, for gorm AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&family.Family{},
		&family.FamilyMember{},
		&family.Account{},
		&category.Category{},
		&category.HiddenCategory{},
		&transaction.Transaction{},
	}
}
