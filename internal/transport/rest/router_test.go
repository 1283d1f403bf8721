package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/danindra/workforce-scheduling/internal/analytics"
	analyticsPostgres "github.com/danindra/workforce-scheduling/internal/analytics/postgres"
	"github.com/danindra/workforce-scheduling/internal/auth"
	authPostgres "github.com/danindra/workforce-scheduling/internal/auth/postgres"
	"github.com/danindra/workforce-scheduling/internal/company"
	companyPostgres "github.com/danindra/workforce-scheduling/internal/company/postgres"
	companyDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/company"
	departmentDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/department"
	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
	roleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/role"
	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
	sessionDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/session"
	userDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/user"
	"github.com/danindra/workforce-scheduling/internal/core/events"
	"github.com/danindra/workforce-scheduling/internal/department"
	departmentPostgres "github.com/danindra/workforce-scheduling/internal/department/postgres"
	"github.com/danindra/workforce-scheduling/internal/employee"
	employeePostgres "github.com/danindra/workforce-scheduling/internal/employee/postgres"
	"github.com/danindra/workforce-scheduling/internal/rbac"
	"github.com/danindra/workforce-scheduling/internal/role"
	rolePostgres "github.com/danindra/workforce-scheduling/internal/role/postgres"
	"github.com/danindra/workforce-scheduling/internal/schedule"
	schedulePostgres "github.com/danindra/workforce-scheduling/internal/schedule/postgres"
	"github.com/danindra/workforce-scheduling/internal/shiftswap"
	shiftswapPostgres "github.com/danindra/workforce-scheduling/internal/shiftswap/postgres"
	"github.com/danindra/workforce-scheduling/internal/timeoff"
	timeoffPostgres "github.com/danindra/workforce-scheduling/internal/timeoff/postgres"
	"github.com/danindra/workforce-scheduling/internal/transport/rest"
	"github.com/danindra/workforce-scheduling/pkg/logger"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router Suite")
}

// The suite wires the real router against sqlite-backed services, the way the
// server command does against postgres, and drives it over HTTP.
var _ = Describe("Router", func() {
	var (
		router      *chi.Mux
		adminToken  string
		memberToken string
	)

	const secret = "router-suite-secret-0123456789abcdef"

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		lg := logger.L()
		ctx := context.Background()

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(
			&companyDatamodel.Company{},
			&roleDatamodel.Role{},
			&roleDatamodel.Permission{},
			&roleDatamodel.RolePermission{},
			&userDatamodel.User{},
			&sessionDatamodel.Session{},
			&departmentDatamodel.Department{},
			&scheduleDatamodel.Shift{},
			&requestDatamodel.TimeOffRequest{},
			&requestDatamodel.ShiftSwapRequest{},
		)).To(Succeed())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlxDB := sqlx.NewDb(sqlDB, "sqlite3")

		Expect(db.Create(&companyDatamodel.Company{
			ID: 1, Name: "Demo Workforce Co", TimeZone: "UTC",
			WorkWeekStart: 1, DefaultShiftHours: 8, AllowShiftSwapping: true,
		}).Error).To(Succeed())

		roleRepo := rolePostgres.NewRepository(db)
		adminRole := &roleDatamodel.Role{
			Name: "administrator", DisplayName: "Administrator",
			Class: "admin", CompanyID: 1, IsSystemDefined: true,
		}
		Expect(roleRepo.Create(ctx, adminRole, []string{
			string(rbac.PermManageRoles), string(rbac.PermCreateAccounts),
		})).To(Succeed())
		memberRole := &roleDatamodel.Role{
			Name: "team_member", DisplayName: "Team Member",
			Class: "employee", CompanyID: 1, IsDefault: true,
		}
		Expect(roleRepo.Create(ctx, memberRole, []string{
			string(rbac.PermRequestTimeOff),
		})).To(Succeed())

		registry := rbac.NewRegistry(lg)
		Expect(registry.Reload(ctx, roleRepo)).To(Succeed())

		hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Create(&userDatamodel.User{
			Email: "admin@example.com", Name: "Admin", PasswordHash: string(hash),
			RoleID: adminRole.ID, CompanyID: 1, IsActive: true,
		}).Error).To(Succeed())
		Expect(db.Create(&userDatamodel.User{
			Email: "member@example.com", Name: "Member", PasswordHash: string(hash),
			RoleID: memberRole.ID, CompanyID: 1, IsActive: true,
		}).Error).To(Succeed())

		bus := events.NewEventBus(lg)
		evaluator := rbac.NewEvaluator(registry)
		guard := rbac.NewGuard(evaluator, registry, lg)

		tokens := auth.NewJWTTokenGenerator(secret, time.Hour)
		authRepo := authPostgres.NewRepository(db)
		authService := auth.NewService(authRepo, authRepo, tokens,
			bcrypt.MinCost, time.Hour, false, lg)

		companyService := company.NewService(companyPostgres.NewRepository(db), lg)
		scheduleRepo := schedulePostgres.NewRepository(db)

		handlers := rest.Handlers{
			Auth:     auth.NewHandler(authService, evaluator),
			Role:     role.NewHandler(role.NewService(roleRepo, registry, lg)),
			Employee: employee.NewHandler(employee.NewService(employeePostgres.NewRepository(db), registry, bcrypt.MinCost, lg)),
			Schedule: schedule.NewHandler(schedule.NewService(scheduleRepo, bus, lg)),
			TimeOff:  timeoff.NewHandler(timeoff.NewService(timeoffPostgres.NewRepository(db), bus, lg)),
			ShiftSwap: shiftswap.NewHandler(shiftswap.NewService(
				shiftswapPostgres.NewRepository(db), scheduleRepo, companyService, bus, lg)),
			Department: department.NewHandler(department.NewService(departmentPostgres.NewRepository(db), lg)),
			Company:    company.NewHandler(companyService),
			Analytics:  analytics.NewHandler(analytics.NewService(analyticsPostgres.NewRepository(sqlxDB), lg)),
		}

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, handlers, guard, "*", false, lg)

		adminResult, err := authService.SignIn(ctx, auth.LoginDTO{
			Email: "admin@example.com", Password: "longenough",
		})
		Expect(err).NotTo(HaveOccurred())
		adminToken = adminResult.AccessToken

		memberResult, err := authService.SignIn(ctx, auth.LoginDTO{
			Email: "member@example.com", Password: "longenough",
		})
		Expect(err).NotTo(HaveOccurred())
		memberToken = memberResult.AccessToken
	})

	Describe("company routes", func() {
		It("rejects an anonymous read", func() {
			rec := do(http.MethodGet, "/api/v1/company", "", "")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("lets any signed-in employee read the company profile", func() {
			rec := do(http.MethodGet, "/api/v1/company", memberToken, "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var c company.Company
			Expect(json.Unmarshal(rec.Body.Bytes(), &c)).To(Succeed())
			Expect(c.Name).To(Equal("Demo Workforce Co"))
		})

		It("refuses a profile update from a non-admin", func() {
			rec := do(http.MethodPut, "/api/v1/company", memberToken,
				`{"name":"Renamed Co"}`)
			Expect(rec.Code).To(Equal(http.StatusForbidden))

			rec = do(http.MethodGet, "/api/v1/company", memberToken, "")
			var c company.Company
			Expect(json.Unmarshal(rec.Body.Bytes(), &c)).To(Succeed())
			Expect(c.Name).To(Equal("Demo Workforce Co"))
		})

		It("lets an admin update the profile", func() {
			rec := do(http.MethodPut, "/api/v1/company", adminToken,
				`{"name":"Renamed Co"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			rec = do(http.MethodGet, "/api/v1/company", memberToken, "")
			var c company.Company
			Expect(json.Unmarshal(rec.Body.Bytes(), &c)).To(Succeed())
			Expect(c.Name).To(Equal("Renamed Co"))
		})
	})

	Describe("permission-guarded routes", func() {
		It("refuses role administration to a team member", func() {
			rec := do(http.MethodGet, "/api/v1/roles", memberToken, "")
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("serves role administration to an admin", func() {
			rec := do(http.MethodGet, "/api/v1/roles", adminToken, "")
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})
})
