package rbac_test

import (
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danindra/workforce-scheduling/internal"
	"github.com/danindra/workforce-scheduling/internal/rbac"
)

var _ = Describe("Evaluator", func() {
	var (
		registry  *rbac.Registry
		evaluator *rbac.Evaluator
	)

	BeforeEach(func() {
		registry = rbac.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
		registry.ReplaceAll([]rbac.RoleDefinition{
			{
				ID:          10,
				DisplayName: "Shift Manager",
				Class:       rbac.RoleClassManager,
				Permissions: []rbac.Permission{
					rbac.PermApproveRequests,
					rbac.PermAssignShifts,
				},
			},
			{
				ID:          20,
				DisplayName: "Team Member",
				Class:       rbac.RoleClassEmployee,
				Permissions: []rbac.Permission{rbac.PermRequestTimeOff},
			},
		})
		evaluator = rbac.NewEvaluator(registry)
	})

	manager := &internal.Principal{ID: 1, RoleID: 10, CompanyID: 1, IsActive: true}
	member := &internal.Principal{ID: 2, RoleID: 20, CompanyID: 1, IsActive: true}

	Describe("HasPermission", func() {
		It("grants a permission the role holds", func() {
			Expect(evaluator.HasPermission(manager, rbac.PermApproveRequests)).To(BeTrue())
		})

		It("denies a permission the role lacks", func() {
			Expect(evaluator.HasPermission(member, rbac.PermApproveRequests)).To(BeFalse())
		})

		It("denies when the principal is absent", func() {
			Expect(evaluator.HasPermission(nil, rbac.PermApproveRequests)).To(BeFalse())
		})

		It("denies when the principal references an unknown role", func() {
			ghost := &internal.Principal{ID: 3, RoleID: 999}
			Expect(evaluator.HasPermission(ghost, rbac.PermRequestTimeOff)).To(BeFalse())
		})
	})

	Describe("HasAnyPermission", func() {
		It("grants when at least one permission matches", func() {
			ok := evaluator.HasAnyPermission(member, rbac.PermApproveRequests, rbac.PermRequestTimeOff)
			Expect(ok).To(BeTrue())
		})

		It("denies when none match", func() {
			ok := evaluator.HasAnyPermission(member, rbac.PermApproveRequests, rbac.PermManageRoles)
			Expect(ok).To(BeFalse())
		})

		It("denies on an empty permission list", func() {
			Expect(evaluator.HasAnyPermission(manager)).To(BeFalse())
		})
	})

	Describe("RoleClassAllowed", func() {
		It("matches the principal's class", func() {
			Expect(evaluator.RoleClassAllowed(manager, rbac.RoleClassManager)).To(BeTrue())
			Expect(evaluator.RoleClassAllowed(member, rbac.RoleClassManager)).To(BeFalse())
		})

		It("accepts any of several classes", func() {
			ok := evaluator.RoleClassAllowed(member, rbac.RoleClassAdmin, rbac.RoleClassEmployee)
			Expect(ok).To(BeTrue())
		})

		It("denies absent principals", func() {
			Expect(evaluator.RoleClassAllowed(nil, rbac.RoleClassEmployee)).To(BeFalse())
		})
	})

	Describe("PermissionsOf", func() {
		It("returns the effective set", func() {
			Expect(evaluator.PermissionsOf(manager)).To(ConsistOf(
				rbac.PermApproveRequests,
				rbac.PermAssignShifts,
			))
		})

		It("returns an empty set for absent principals", func() {
			Expect(evaluator.PermissionsOf(nil)).To(BeEmpty())
		})
	})
})
