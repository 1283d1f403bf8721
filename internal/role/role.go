package role

import (
	"time"

	roleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/role"
	"github.com/danindra/workforce-scheduling/internal/rbac"
)

// Role is the domain model: a company-scoped bundle of permissions plus the
// coarse class used for page layout.
type Role struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	DisplayName     string            `json:"display_name"`
	Class           rbac.RoleClass    `json:"class"`
	Permissions     []rbac.Permission `json:"permissions"`
	IsDefault       bool              `json:"is_default"`
	IsSystemDefined bool              `json:"is_system_defined"`
	CompanyID       int64             `json:"company_id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Mutable reports whether edits and deletes may touch this role at all.
// System-defined roles are immutable regardless of who asks.
func (r *Role) Mutable() bool {
	return !r.IsSystemDefined
}

func FromDataModel(m *roleDatamodel.Role, permissions []rbac.Permission) *Role {
	return &Role{
		ID:              m.ID,
		Name:            m.Name,
		DisplayName:     m.DisplayName,
		Class:           rbac.ParseRoleClass(m.Class),
		Permissions:     permissions,
		IsDefault:       m.IsDefault,
		IsSystemDefined: m.IsSystemDefined,
		CompanyID:       m.CompanyID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:              r.ID,
		Name:            r.Name,
		DisplayName:     r.DisplayName,
		Class:           r.Class.String(),
		IsDefault:       r.IsDefault,
		IsSystemDefined: r.IsSystemDefined,
		CompanyID:       r.CompanyID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
