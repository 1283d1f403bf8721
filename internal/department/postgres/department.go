package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	departmentDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/department"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) Create(ctx context.Context, dept *departmentDatamodel.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *Repository) Update(ctx context.Context, dept *departmentDatamodel.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&departmentDatamodel.Department{}).Error
}

// CountMembers counts active employees assigned to the department.
func (r *Repository) CountMembers(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Count(&count).Error
	return count, err
}
