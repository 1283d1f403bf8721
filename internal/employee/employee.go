package employee

import (
	"time"

	userDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/user"
)

// Employee is the directory view of a user account. Password material never
// leaves the datamodel layer.
type Employee struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	RoleID       int64      `json:"role_id"`
	RoleName     string     `json:"role_name,omitempty"`
	CompanyID    int64      `json:"company_id"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	ManagerID    *int64     `json:"manager_id,omitempty"`
	JobTitle     string     `json:"job_title,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromDataModel(m *userDatamodel.User) *Employee {
	return &Employee{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		RoleID:       m.RoleID,
		CompanyID:    m.CompanyID,
		DepartmentID: m.DepartmentID,
		ManagerID:    m.ManagerID,
		JobTitle:     m.JobTitle,
		PhoneNumber:  m.PhoneNumber,
		AvatarURL:    m.AvatarURL,
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
