package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	roleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/role"
	"github.com/danindra/workforce-scheduling/internal/rbac"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id ASC").
		Find(&roles).Error
	return roles, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*roleDatamodel.Role, error) {
	var role roleDatamodel.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *Repository) GetByName(ctx context.Context, companyID int64, name string) (*roleDatamodel.Role, error) {
	var role roleDatamodel.Role
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *Repository) PermissionsFor(ctx context.Context, roleID int64) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&roleDatamodel.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.name ASC").
		Pluck("permissions.name", &names).Error
	return names, err
}

// Create inserts the role and its permission links in one transaction.
func (r *Repository) Create(ctx context.Context, role *roleDatamodel.Role, permissions []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return r.linkPermissions(tx, role.ID, permissions)
	})
}

// Update saves the role and replaces its permission links in one transaction.
func (r *Repository) Update(ctx context.Context, role *roleDatamodel.Role, permissions []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(role).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", role.ID).
			Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return r.linkPermissions(tx, role.ID, permissions)
	})
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).
			Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&roleDatamodel.Role{}).Error
	})
}

func (r *Repository) CountUsers(ctx context.Context, roleID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

// ListRoleDefinitions feeds the in-memory role registry. Every role row is
// returned, with its permission names resolved through the join table.
func (r *Repository) ListRoleDefinitions(ctx context.Context) ([]rbac.RoleDefinition, error) {
	var roles []*roleDatamodel.Role
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}

	type link struct {
		RoleID int64
		Name   string
	}
	var links []link
	err := r.db.WithContext(ctx).
		Model(&roleDatamodel.RolePermission{}).
		Select("role_permissions.role_id AS role_id, permissions.name AS name").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Scan(&links).Error
	if err != nil {
		return nil, err
	}

	byRole := make(map[int64][]rbac.Permission, len(roles))
	for _, l := range links {
		if p, ok := rbac.ParsePermission(l.Name); ok {
			byRole[l.RoleID] = append(byRole[l.RoleID], p)
		}
	}

	defs := make([]rbac.RoleDefinition, len(roles))
	for i, m := range roles {
		defs[i] = rbac.RoleDefinition{
			ID:          m.ID,
			CompanyID:   m.CompanyID,
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Class:       rbac.ParseRoleClass(m.Class),
			Permissions: byRole[m.ID],
		}
	}
	return defs, nil
}

// linkPermissions attaches permission rows by name, creating catalog entries
// lazily so seeds and migrations can run in either order.
func (r *Repository) linkPermissions(tx *gorm.DB, roleID int64, permissions []string) error {
	for _, name := range permissions {
		var perm roleDatamodel.Permission
		err := tx.Where("name = ?", name).First(&perm).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			perm = roleDatamodel.Permission{Name: name}
			if p, ok := rbac.ParsePermission(name); ok {
				perm.Description = p.Describe()
			}
			if err := tx.Create(&perm).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		lnk := roleDatamodel.RolePermission{RoleID: roleID, PermissionID: perm.ID}
		if err := tx.Create(&lnk).Error; err != nil {
			return err
		}
	}
	return nil
}
