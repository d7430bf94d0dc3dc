package postgres_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/family-ledger/internal/core/datamodel"
	familyDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/family"
	userDatamodel "github.com/frahmantamala/family-ledger/internal/core/datamodel/user"
	"github.com/frahmantamala/family-ledger/internal/user"
	userPostgres "github.com/frahmantamala/family-ledger/internal/user/postgres"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		ctx  context.Context
		gdb  *gorm.DB
		repo user.Repository
		u    *userDatamodel.User
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		gdb, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := gdb.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(gdb.AutoMigrate(datamodel.Models()...)).To(Succeed())

		repo = userPostgres.NewPostgresRepo(sqlx.NewDb(sqlDB, "sqlite3"))

		u = &userDatamodel.User{Email: "ana@example.com", Name: "Ana", PasswordHash: "x"}
		Expect(gdb.Create(u).Error).NotTo(HaveOccurred())
	})

	It("should load a profile with the user's family", func() {
		fam := &familyDatamodel.Family{Name: "Our family"}
		Expect(gdb.Create(fam).Error).NotTo(HaveOccurred())
		Expect(gdb.Create(&familyDatamodel.FamilyMember{FamilyID: fam.ID, UserID: u.ID, Role: familyDatamodel.RoleOwner}).Error).NotTo(HaveOccurred())

		p, err := repo.GetProfile(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Email).To(Equal("ana@example.com"))
		Expect(p.HasFamily()).To(BeTrue())
		Expect(*p.FamilyID).To(Equal(fam.ID))
		Expect(*p.FamilyName).To(Equal("Our family"))
		Expect(*p.Role).To(Equal(familyDatamodel.RoleOwner))
	})

	It("should load a profile without a family", func() {
		p, err := repo.GetProfile(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name).To(Equal("Ana"))
		Expect(p.HasFamily()).To(BeFalse())
	})

	It("should return nil for an unknown user", func() {
		p, err := repo.GetProfile(ctx, u.ID+1)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(BeNil())
	})
})
