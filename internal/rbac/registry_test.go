package rbac_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danindra/workforce-scheduling/internal/rbac"
)

type failingProvider struct{}

func (failingProvider) ListRoleDefinitions(context.Context) ([]rbac.RoleDefinition, error) {
	return nil, errors.New("connection refused")
}

var _ = Describe("Registry", func() {
	var registry *rbac.Registry

	newRegistry := func() *rbac.Registry {
		return rbac.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	BeforeEach(func() {
		registry = newRegistry()
		registry.ReplaceAll([]rbac.RoleDefinition{
			{
				ID:          1,
				CompanyID:   1,
				Name:        "shift_manager",
				DisplayName: "Shift Manager",
				Class:       rbac.RoleClassManager,
				Permissions: []rbac.Permission{
					rbac.PermApproveRequests,
					rbac.PermAssignShifts,
					rbac.PermViewAnalytics,
				},
			},
			{
				ID:          2,
				CompanyID:   1,
				Name:        "team_member",
				DisplayName: "Team Member",
				Class:       rbac.RoleClassEmployee,
				Permissions: []rbac.Permission{rbac.PermRequestTimeOff},
			},
		})
	})

	Describe("PermissionsFor", func() {
		It("returns exactly the granted permissions", func() {
			perms := registry.PermissionsFor(1)
			Expect(perms).To(ConsistOf(
				rbac.PermApproveRequests,
				rbac.PermAssignShifts,
				rbac.PermViewAnalytics,
			))
		})

		It("never grants a permission outside the role's set", func() {
			perms := registry.PermissionsFor(2)
			Expect(perms).To(ConsistOf(rbac.PermRequestTimeOff))
			Expect(perms).NotTo(ContainElement(rbac.PermApproveRequests))
		})

		It("returns an empty set for an unknown role id", func() {
			Expect(registry.PermissionsFor(999)).To(BeEmpty())
		})

		It("deduplicates repeated tokens", func() {
			registry.ReplaceAll([]rbac.RoleDefinition{
				{
					ID:    7,
					Class: rbac.RoleClassEmployee,
					Permissions: []rbac.Permission{
						rbac.PermSwapShifts,
						rbac.PermSwapShifts,
					},
				},
			})
			Expect(registry.PermissionsFor(7)).To(HaveLen(1))
		})

		It("drops tokens outside the closed permission set", func() {
			registry.ReplaceAll([]rbac.RoleDefinition{
				{
					ID:    8,
					Class: rbac.RoleClassEmployee,
					Permissions: []rbac.Permission{
						rbac.Permission("can_do_anything"),
						rbac.PermRequestTimeOff,
					},
				},
			})
			Expect(registry.PermissionsFor(8)).To(ConsistOf(rbac.PermRequestTimeOff))
		})
	})

	Describe("ClassFor", func() {
		It("returns the role's class", func() {
			Expect(registry.ClassFor(1)).To(Equal(rbac.RoleClassManager))
		})

		It("defaults unknown role ids to employee", func() {
			Expect(registry.ClassFor(999)).To(Equal(rbac.RoleClassEmployee))
		})

		It("defaults invalid stored classes to employee", func() {
			registry.ReplaceAll([]rbac.RoleDefinition{
				{ID: 9, Class: rbac.RoleClass("superuser")},
			})
			Expect(registry.ClassFor(9)).To(Equal(rbac.RoleClassEmployee))
		})
	})

	Describe("BelongsTo", func() {
		It("matches a role against its owning company", func() {
			Expect(registry.BelongsTo(1, 1)).To(BeTrue())
		})

		It("refuses another company's role", func() {
			Expect(registry.BelongsTo(1, 2)).To(BeFalse())
		})

		It("refuses unknown role ids", func() {
			Expect(registry.BelongsTo(999, 1)).To(BeFalse())
		})
	})

	Describe("DisplayNameFor", func() {
		It("returns the role's display name", func() {
			Expect(registry.DisplayNameFor(1)).To(Equal("Shift Manager"))
		})

		It("falls back for unknown role ids", func() {
			Expect(registry.DisplayNameFor(999)).To(Equal("Employee"))
		})
	})

	Describe("Reload", func() {
		It("keeps the previous snapshot when the provider fails", func() {
			err := registry.Reload(context.Background(), failingProvider{})
			Expect(err).To(HaveOccurred())
			Expect(registry.Known(1)).To(BeTrue())
			Expect(registry.PermissionsFor(1)).NotTo(BeEmpty())
		})

		It("replaces the snapshot atomically", func() {
			registry.ReplaceAll([]rbac.RoleDefinition{
				{ID: 3, Class: rbac.RoleClassAdmin, DisplayName: "Administrator"},
			})
			Expect(registry.Known(1)).To(BeFalse())
			Expect(registry.Known(3)).To(BeTrue())
		})
	})
})

var _ = Describe("Permission", func() {
	It("recognizes every catalog token as valid", func() {
		for _, p := range rbac.AllPermissions() {
			Expect(p.Valid()).To(BeTrue(), "permission %s", p)
			Expect(p.Describe()).NotTo(BeEmpty(), "permission %s", p)
		}
	})

	It("rejects tokens outside the closed set", func() {
		_, ok := rbac.ParsePermission("can_fly")
		Expect(ok).To(BeFalse())
	})

	It("parses unknown role classes to employee", func() {
		Expect(rbac.ParseRoleClass("superuser")).To(Equal(rbac.RoleClassEmployee))
		Expect(rbac.ParseRoleClass("manager")).To(Equal(rbac.RoleClassManager))
	})
})
