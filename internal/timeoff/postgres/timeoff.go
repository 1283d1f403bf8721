package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
	"github.com/danindra/workforce-scheduling/internal/timeoff"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, companyID int64, filter timeoff.ListFilter) ([]*requestDatamodel.TimeOffRequest, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var requests []*requestDatamodel.TimeOffRequest
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*requestDatamodel.TimeOffRequest, error) {
	var req requestDatamodel.TimeOffRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *Repository) Create(ctx context.Context, req *requestDatamodel.TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *Repository) Update(ctx context.Context, req *requestDatamodel.TimeOffRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// CountApprovedInRange supports the analytics roll-up.
func (r *Repository) CountApprovedInRange(ctx context.Context, companyID int64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&requestDatamodel.TimeOffRequest{}).
		Where("company_id = ? AND status = ? AND start_date < ? AND end_date >= ?",
			companyID, timeoff.StatusApproved, to, from).
		Count(&count).Error
	return count, err
}
