package shiftswap

import (
	"time"

	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Swap struct {
	ID               int64      `json:"id"`
	RequesterID      int64      `json:"requester_id"`
	TargetUserID     int64      `json:"target_user_id"`
	RequesterShiftID int64      `json:"requester_shift_id"`
	TargetShiftID    int64      `json:"target_shift_id"`
	CompanyID        int64      `json:"company_id"`
	Reason           string     `json:"reason,omitempty"`
	Status           string     `json:"status"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy       *int64     `json:"reviewed_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromDataModel(m *requestDatamodel.ShiftSwapRequest) *Swap {
	return &Swap{
		ID:               m.ID,
		RequesterID:      m.RequesterID,
		TargetUserID:     m.TargetUserID,
		RequesterShiftID: m.RequesterShiftID,
		TargetShiftID:    m.TargetShiftID,
		CompanyID:        m.CompanyID,
		Reason:           m.Reason,
		Status:           m.Status,
		ReviewedAt:       m.ReviewedAt,
		ReviewedBy:       m.ReviewedBy,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
