package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	companyDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/company"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error) {
	var company companyDatamodel.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *Repository) Update(ctx context.Context, company *companyDatamodel.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}
