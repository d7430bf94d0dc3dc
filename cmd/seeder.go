package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/auth"
	authPostgres "github.com/frahmantamala/family-ledger/internal/auth/postgres"
	"github.com/frahmantamala/family-ledger/internal/category"
	categoryPostgres "github.com/frahmantamala/family-ledger/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/category"
	familyDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/family"
	transactionDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/transaction"
	userDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/user"
	"github.com/frahmantamala/family-ledger/internal/core/store"
	"github.com/frahmantamala/family-ledger/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@family.local"
	demoPassword = "password"
	demoName     = "Demo"
)

var globalCategories = []category.Input{
	{Name: "Salary", Type: category.TypeIncome, Color: "#2e7d32", Icon: "bi-cash-stack"},
	{Name: "Gifts", Type: category.TypeIncome, Color: "#8e24aa", Icon: "bi-gift"},
	{Name: "Groceries", Type: category.TypeExpense, Color: "#f9a825", Icon: "bi-basket"},
	{Name: "Transport", Type: category.TypeExpense, Color: "#1565c0", Icon: "bi-bus-front"},
	{Name: "Housing", Type: category.TypeExpense, Color: "#6d4c41", Icon: "bi-house"},
	{Name: "Utilities", Type: category.TypeExpense, Color: "#00838f", Icon: "bi-lightning"},
	{Name: "Health", Type: category.TypeExpense, Color: "#c62828", Icon: "bi-heart-pulse"},
	{Name: "Entertainment", Type: category.TypeExpense, Color: "#ef6c00", Icon: "bi-controller"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the shared category catalog and a demo household for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		lg := logger.Configure(logger.Options{
			Level:  cfg.Observability.Logging.Level,
			Format: cfg.Observability.Logging.Format,
		})

		db, err := initDB(cfg.Database, lg)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if err := clearAll(ctx, db.Gorm); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			lg.Info("cleared existing data")
		}

		repo := categoryPostgres.NewCategoryRepository(db.Gorm)
		for _, in := range globalCategories {
			var count int64
			err := db.Gorm.WithContext(ctx).
				Model(&categoryDatamodel.Category{}).
				Where("family_id IS NULL AND name = ?", in.Name).
				Count(&count).Error
			if err != nil {
				log.Fatalf("failed to look up category %s: %v", in.Name, err)
			}
			if count > 0 {
				continue
			}

			cat := category.NewCategory(nil, in)
			if err := repo.Create(ctx, category.ToDataModel(cat)); err != nil {
				log.Fatalf("failed to insert category %s: %v", in.Name, err)
			}
			lg.Info("seeded global category", "name", in.Name, "type", in.Type)
		}

		authService := auth.NewService(
			authPostgres.NewRepository(db.Gorm),
			auth.NewJWTTokenGenerator(
				cfg.Security.AccessTokenSecret,
				cfg.Security.RefreshTokenSecret,
				cfg.Security.AccessTokenDuration,
				cfg.Security.RefreshTokenDuration,
			),
			auth.NewBcryptHasher(cfg.Security.BCryptCost),
			nil,
			lg,
		)

		resp, err := authService.Register(ctx, auth.RegisterDTO{
			Email:    demoEmail,
			Password: demoPassword,
			Name:     demoName,
		})
		switch {
		case err == nil:
			lg.Info("seeded demo user", "email", demoEmail, "family_id", resp.FamilyID)
		case errors.Is(err, internal.ErrEmailTaken):
			lg.Info("demo user already exists", "email", demoEmail)
		default:
			log.Fatalf("failed to seed demo user: %v", err)
		}
	},
}

// clearAll removes every row, children first.
func clearAll(ctx context.Context, db *gorm.DB) error {
	return store.Transaction(ctx, db, func(tx *gorm.DB) error {
		models := []interface{}{
			&transactionDatamodel.Transaction{},
			&categoryDatamodel.HiddenCategory{},
			&categoryDatamodel.Category{},
			&familyDatamodel.Account{},
			&familyDatamodel.FamilyMember{},
			&familyDatamodel.Family{},
			&userDatamodel.User{},
		}
		for _, m := range models {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
