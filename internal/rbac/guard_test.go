package rbac_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danindra/workforce-scheduling/internal"
	"github.com/danindra/workforce-scheduling/internal/rbac"
)

var _ = Describe("Guard", func() {
	var (
		guard *rbac.Guard
		next  http.Handler
	)

	BeforeEach(func() {
		registry := rbac.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
		registry.ReplaceAll([]rbac.RoleDefinition{
			{
				ID:          10,
				DisplayName: "Shift Manager",
				Class:       rbac.RoleClassManager,
				Permissions: []rbac.Permission{rbac.PermApproveRequests},
			},
			{
				ID:          20,
				DisplayName: "Team Member",
				Class:       rbac.RoleClassEmployee,
				Permissions: []rbac.Permission{rbac.PermRequestTimeOff},
			},
		})
		guard = rbac.NewGuard(rbac.NewEvaluator(registry), registry, slog.New(slog.NewTextHandler(io.Discard, nil)))
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	request := func(principal *internal.Principal) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/time-off", nil)
		if principal != nil {
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(), principal))
		}
		return req
	}

	Describe("RequirePermission", func() {
		It("admits a principal whose role grants the permission", func() {
			rec := httptest.NewRecorder()
			handler := guard.RequirePermission(rbac.PermApproveRequests)(next)
			handler.ServeHTTP(rec, request(&internal.Principal{ID: 1, RoleID: 10}))
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("responds 401 when no session principal is present", func() {
			rec := httptest.NewRecorder()
			handler := guard.RequirePermission(rbac.PermApproveRequests)(next)
			handler.ServeHTTP(rec, request(nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("responds 403 naming only the caller's current role", func() {
			rec := httptest.NewRecorder()
			handler := guard.RequirePermission(rbac.PermApproveRequests)(next)
			handler.ServeHTTP(rec, request(&internal.Principal{ID: 2, RoleID: 20}))

			Expect(rec.Code).To(Equal(http.StatusForbidden))

			var body struct {
				Error struct {
					Code    string            `json:"code"`
					Message string            `json:"message"`
					Details map[string]string `json:"details"`
				} `json:"error"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Error.Details).To(HaveKeyWithValue("current_role", "Team Member"))
			Expect(body.Error.Message).NotTo(ContainSubstring("can_approve_requests"))
		})

		It("denies principals referencing an unknown role", func() {
			rec := httptest.NewRecorder()
			handler := guard.RequirePermission(rbac.PermRequestTimeOff)(next)
			handler.ServeHTTP(rec, request(&internal.Principal{ID: 3, RoleID: 999}))
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("RequireRoleClass", func() {
		It("admits a principal in the allowed class", func() {
			rec := httptest.NewRecorder()
			handler := guard.RequireRoleClass(rbac.RoleClassManager)(next)
			handler.ServeHTTP(rec, request(&internal.Principal{ID: 1, RoleID: 10}))
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("responds 403 for a principal outside the allowed classes", func() {
			rec := httptest.NewRecorder()
			handler := guard.RequireRoleClass(rbac.RoleClassAdmin)(next)
			handler.ServeHTTP(rec, request(&internal.Principal{ID: 2, RoleID: 20}))
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("responds 401 before 403 when both would apply", func() {
			rec := httptest.NewRecorder()
			handler := guard.RequireRoleClass(rbac.RoleClassAdmin)(next)
			handler.ServeHTTP(rec, request(nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
