package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
	"github.com/danindra/workforce-scheduling/internal/shiftswap"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List filters by company. A user filter matches either side of the swap.
func (r *Repository) List(ctx context.Context, companyID int64, filter shiftswap.ListFilter) ([]*requestDatamodel.ShiftSwapRequest, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if filter.UserID != nil {
		q = q.Where("(requester_id = ? OR target_user_id = ?)", *filter.UserID, *filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var swaps []*requestDatamodel.ShiftSwapRequest
	err := q.Order("created_at DESC").Find(&swaps).Error
	return swaps, err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*requestDatamodel.ShiftSwapRequest, error) {
	var swap requestDatamodel.ShiftSwapRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&swap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &swap, nil
}

func (r *Repository) Create(ctx context.Context, swap *requestDatamodel.ShiftSwapRequest) error {
	return r.db.WithContext(ctx).Create(swap).Error
}

func (r *Repository) Update(ctx context.Context, swap *requestDatamodel.ShiftSwapRequest) error {
	return r.db.WithContext(ctx).Save(swap).Error
}

// ApproveSwap exchanges the two shifts' assignees and saves the settled swap
// in one transaction, so a failed write can never leave a half-swapped pair.
func (r *Repository) ApproveSwap(ctx context.Context, swap *requestDatamodel.ShiftSwapRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := reassignShift(tx, swap.RequesterShiftID, swap.TargetUserID); err != nil {
			return err
		}
		if err := reassignShift(tx, swap.TargetShiftID, swap.RequesterID); err != nil {
			return err
		}
		return tx.Save(swap).Error
	})
}

func reassignShift(tx *gorm.DB, shiftID, userID int64) error {
	res := tx.Model(&scheduleDatamodel.Shift{}).
		Where("id = ?", shiftID).
		Update("user_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
