package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	roleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/role"
	userDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/user"
	"github.com/danindra/workforce-scheduling/internal/employee"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, companyID int64, filter employee.ListFilter) ([]*userDatamodel.User, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if !filter.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.RoleID != nil {
		q = q.Where("role_id = ?", *filter.RoleID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var users []*userDatamodel.User
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) Update(ctx context.Context, user *userDatamodel.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// DefaultRoleID returns the role marked is_default for the company.
func (r *Repository) DefaultRoleID(ctx context.Context, companyID int64) (int64, error) {
	var role roleDatamodel.Role
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_default = ?", companyID, true).
		First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return role.ID, nil
}
