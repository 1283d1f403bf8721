package timeoff

import (
	"time"

	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Request struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	ManagerID  *int64     `json:"manager_id,omitempty"`
	CompanyID  int64      `json:"company_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Reason     string     `json:"reason,omitempty"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy *int64     `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Pending reports whether the request still awaits review. Approve and reject
// only act on pending requests.
func (r *Request) Pending() bool {
	return r.Status == StatusPending
}

func FromDataModel(m *requestDatamodel.TimeOffRequest) *Request {
	return &Request{
		ID:         m.ID,
		UserID:     m.UserID,
		ManagerID:  m.ManagerID,
		CompanyID:  m.CompanyID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Reason:     m.Reason,
		Status:     m.Status,
		Notes:      m.Notes,
		ReviewedAt: m.ReviewedAt,
		ReviewedBy: m.ReviewedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
