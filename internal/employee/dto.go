package employee

import (
	"strings"

	"github.com/danindra/workforce-scheduling/internal"
)

type CreateEmployeeDTO struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	RoleID       *int64 `json:"role_id"`
	DepartmentID *int64 `json:"department_id"`
	ManagerID    *int64 `json:"manager_id"`
	JobTitle     string `json:"job_title"`
	PhoneNumber  string `json:"phone_number"`
}

type UpdateEmployeeDTO struct {
	Name         string `json:"name"`
	RoleID       *int64 `json:"role_id"`
	DepartmentID *int64 `json:"department_id"`
	ManagerID    *int64 `json:"manager_id"`
	JobTitle     string `json:"job_title"`
	PhoneNumber  string `json:"phone_number"`
	AvatarURL    string `json:"avatar_url"`
}

type ListFilter struct {
	DepartmentID    *int64
	RoleID          *int64
	Search          string
	IncludeInactive bool
}

func (d CreateEmployeeDTO) Validate() error {
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateEmployeeDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
