package postgres_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authPostgres "github.com/danindra/workforce-scheduling/internal/auth/postgres"
	roleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/role"
	sessionDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/session"
	userDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/user"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth Repository", func() {
	var (
		db   *gorm.DB
		repo *authPostgres.Repository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(
			&roleDatamodel.Role{},
			&userDatamodel.User{},
			&sessionDatamodel.Session{},
		)).To(Succeed())

		repo = authPostgres.NewRepository(db)
		ctx = context.Background()
	})

	Describe("GetByEmail", func() {
		BeforeEach(func() {
			Expect(db.Create(&userDatamodel.User{
				Email: "admin@example.com", Name: "Admin", PasswordHash: "x",
				RoleID: 1, CompanyID: 1, IsActive: true,
			}).Error).To(Succeed())
		})

		It("matches regardless of the address casing", func() {
			u, err := repo.GetByEmail(ctx, "ADMIN@Example.COM")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("admin@example.com"))
		})

		It("reports a missing address", func() {
			_, err := repo.GetByEmail(ctx, "nobody@example.com")
			Expect(err).To(MatchError(authPostgres.ErrNotFound))
		})
	})

	Describe("GetFirstByRoleClass", func() {
		It("returns the lowest-id active holder of the class in the company", func() {
			Expect(db.Create(&roleDatamodel.Role{
				ID: 1, Name: "shift_manager", DisplayName: "Shift Manager",
				Class: "manager", CompanyID: 1,
			}).Error).To(Succeed())

			inactive := userDatamodel.User{
				ID: 5, Email: "inactive@example.com", Name: "Gone", PasswordHash: "x",
				RoleID: 1, CompanyID: 1, IsActive: false,
			}
			Expect(db.Create(&inactive).Error).To(Succeed())
			// gorm substitutes the `default:true` tag for a zero-value bool on
			// Create, so the inactive state must be persisted with an Update.
			Expect(db.Model(&inactive).Update("is_active", false).Error).To(Succeed())
			Expect(db.Create(&userDatamodel.User{
				ID: 6, Email: "manager@example.com", Name: "Manager", PasswordHash: "x",
				RoleID: 1, CompanyID: 1, IsActive: true,
			}).Error).To(Succeed())

			u, err := repo.GetFirstByRoleClass(ctx, 1, "manager")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(int64(6)))
		})
	})

	Describe("sessions", func() {
		It("round-trips the principal payload", func() {
			expires := time.Now().Add(time.Hour)
			Expect(repo.Create(ctx, "sess-1", 6, `{"id":6}`, expires)).To(Succeed())

			payload, storedExpiry, err := repo.GetPayload(ctx, "sess-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(payload).To(Equal(`{"id":6}`))
			Expect(storedExpiry.Unix()).To(Equal(expires.Unix()))
		})

		It("clears only expired sessions", func() {
			Expect(repo.Create(ctx, "old", 6, "{}", time.Now().Add(-time.Minute))).To(Succeed())
			Expect(repo.Create(ctx, "live", 6, "{}", time.Now().Add(time.Hour))).To(Succeed())

			deleted, err := repo.DeleteExpired(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(Equal(int64(1)))

			_, _, err = repo.GetPayload(ctx, "old")
			Expect(err).To(MatchError(authPostgres.ErrNotFound))
			_, _, err = repo.GetPayload(ctx, "live")
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
