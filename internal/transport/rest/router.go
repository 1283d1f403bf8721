package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/danindra/workforce-scheduling/internal/analytics"
	"github.com/danindra/workforce-scheduling/internal/auth"
	"github.com/danindra/workforce-scheduling/internal/company"
	"github.com/danindra/workforce-scheduling/internal/department"
	"github.com/danindra/workforce-scheduling/internal/employee"
	"github.com/danindra/workforce-scheduling/internal/rbac"
	"github.com/danindra/workforce-scheduling/internal/role"
	"github.com/danindra/workforce-scheduling/internal/schedule"
	"github.com/danindra/workforce-scheduling/internal/shiftswap"
	"github.com/danindra/workforce-scheduling/internal/timeoff"
	"github.com/danindra/workforce-scheduling/internal/transport/middleware"
	"github.com/danindra/workforce-scheduling/internal/transport/swagger"
)

// Handlers bundles every mounted handler so the server wiring stays in one
// place.
type Handlers struct {
	Auth       *auth.Handler
	Role       *role.Handler
	Employee   *employee.Handler
	Schedule   *schedule.Handler
	TimeOff    *timeoff.Handler
	ShiftSwap  *shiftswap.Handler
	Department *department.Handler
	Company    *company.Handler
	Analytics  *analytics.Handler
}

// RegisterAllRoutes wires the full API surface. The guard is the single
// enforcement point: no handler checks permissions on its own.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, guard *rbac.Guard, allowedOrigins string, demoRoleSwitch bool, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/sso", h.Auth.LoginSSO)
			sr.Post("/logout", h.Auth.Logout)
			sr.Get("/session", h.Auth.Session)
		})

		// Everything below requires a restored session.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if demoRoleSwitch {
				pr.Post("/auth/switch-role", h.Auth.SwitchRole)
			}

			pr.Route("/roles", func(rr chi.Router) {
				rr.Use(guard.RequirePermission(rbac.PermManageRoles))
				rr.Get("/", h.Role.List)
				rr.Get("/permissions", h.Role.Permissions)
				rr.Get("/{id}", h.Role.Get)
				rr.Post("/", h.Role.Create)
				rr.Put("/{id}", h.Role.Update)
				rr.Post("/{id}/clone", h.Role.Clone)
				rr.Delete("/{id}", h.Role.Delete)
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Group(func(vr chi.Router) {
					vr.Use(guard.RequirePermission(rbac.PermViewAllEmployees))
					vr.Get("/", h.Employee.List)
					vr.Get("/{id}", h.Employee.Get)
				})
				er.Group(func(cr chi.Router) {
					cr.Use(guard.RequirePermission(rbac.PermCreateAccounts))
					cr.Post("/", h.Employee.Create)
					cr.Put("/{id}", h.Employee.Update)
				})
				er.Group(func(dr chi.Router) {
					dr.Use(guard.RequirePermission(rbac.PermDeleteAccounts))
					dr.Delete("/{id}", h.Employee.Deactivate)
					dr.Post("/{id}/reactivate", h.Employee.Reactivate)
				})
			})

			pr.Route("/shifts", func(sr chi.Router) {
				// Own schedule is open to any signed-in employee.
				sr.Get("/me", h.Schedule.ListOwn)
				sr.Get("/calendar", h.Schedule.Calendar)

				sr.Group(func(vr chi.Router) {
					vr.Use(guard.RequirePermission(rbac.PermViewAllEmployees))
					vr.Get("/", h.Schedule.List)
					vr.Get("/{id}", h.Schedule.Get)
				})
				sr.Group(func(ar chi.Router) {
					ar.Use(guard.RequirePermission(rbac.PermAssignShifts))
					ar.Post("/", h.Schedule.Create)
				})
				sr.Group(func(er chi.Router) {
					er.Use(guard.RequirePermission(rbac.PermEditSchedules))
					er.Put("/{id}", h.Schedule.Update)
					er.Delete("/{id}", h.Schedule.Delete)
				})
			})

			pr.Route("/time-off", func(tr chi.Router) {
				tr.Group(func(or chi.Router) {
					or.Use(guard.RequirePermission(rbac.PermRequestTimeOff))
					or.Post("/", h.TimeOff.Create)
				})
				tr.Get("/me", h.TimeOff.ListOwn)

				tr.Group(func(ar chi.Router) {
					ar.Use(guard.RequirePermission(rbac.PermApproveRequests))
					ar.Get("/", h.TimeOff.List)
					ar.Get("/{id}", h.TimeOff.Get)
					ar.Post("/{id}/approve", h.TimeOff.Approve)
					ar.Post("/{id}/reject", h.TimeOff.Reject)
				})
			})

			pr.Route("/shift-swaps", func(sr chi.Router) {
				sr.Get("/me", h.ShiftSwap.ListOwn)

				sr.Group(func(cr chi.Router) {
					cr.Use(guard.RequirePermission(rbac.PermSwapShifts))
					cr.Post("/", h.ShiftSwap.Create)
				})
				sr.Group(func(ar chi.Router) {
					ar.Use(guard.RequirePermission(rbac.PermApproveRequests))
					ar.Get("/", h.ShiftSwap.List)
					ar.Get("/{id}", h.ShiftSwap.Get)
					ar.Post("/{id}/approve", h.ShiftSwap.Approve)
					ar.Post("/{id}/reject", h.ShiftSwap.Reject)
				})
			})

			pr.Route("/departments", func(dr chi.Router) {
				// The directory view is open; mutation needs the permission.
				dr.Get("/", h.Department.List)
				dr.Get("/{id}", h.Department.Get)

				dr.Group(func(mr chi.Router) {
					mr.Use(guard.RequirePermission(rbac.PermManageDepartments))
					mr.Post("/", h.Department.Create)
					mr.Put("/{id}", h.Department.Update)
					mr.Delete("/{id}", h.Department.Delete)
				})
			})

			pr.Route("/company", func(cr chi.Router) {
				// Profile and policy are readable by anyone signed in;
				// changing them is an admin operation.
				cr.Get("/", h.Company.Get)
				cr.With(guard.RequireRoleClass(rbac.RoleClassAdmin)).Put("/", h.Company.Update)
			})

			pr.Route("/analytics", func(ar chi.Router) {
				ar.Group(func(er chi.Router) {
					er.Use(guard.RequirePermission(rbac.PermViewAnalytics))
					er.Get("/employees", h.Analytics.Employees)
				})
				ar.Group(func(gr chi.Router) {
					gr.Use(guard.RequirePermission(rbac.PermViewCompanyAnalytics))
					gr.Get("/company", h.Analytics.Company)
				})
			})
		})
	})
}
