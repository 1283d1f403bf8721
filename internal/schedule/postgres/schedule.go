package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
	"github.com/danindra/workforce-scheduling/internal/schedule"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List matches stored rows only. Recurring shifts whose first instance starts
// before the window are still returned so the service can project them.
func (r *Repository) List(ctx context.Context, companyID int64, filter schedule.ListFilter) ([]*scheduleDatamodel.Shift, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if !filter.From.IsZero() {
		q = q.Where("(end_time > ? OR is_recurring = ?)", filter.From, true)
	}
	if !filter.To.IsZero() {
		q = q.Where("start_time < ?", filter.To)
	}

	var shifts []*scheduleDatamodel.Shift
	err := q.Order("start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*scheduleDatamodel.Shift, error) {
	var shift scheduleDatamodel.Shift
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *Repository) Create(ctx context.Context, shift *scheduleDatamodel.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *Repository) Update(ctx context.Context, shift *scheduleDatamodel.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&scheduleDatamodel.Shift{}).Error
}
