package department

import (
	"time"

	departmentDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/department"
)

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CompanyID   int64     `json:"company_id"`
	ManagerID   *int64    `json:"manager_id,omitempty"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(m *departmentDatamodel.Department, memberCount int64) *Department {
	return &Department{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CompanyID:   m.CompanyID,
		ManagerID:   m.ManagerID,
		MemberCount: memberCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
