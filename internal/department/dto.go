package department

import "github.com/danindra/workforce-scheduling/internal"

type DepartmentDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   *int64 `json:"manager_id"`
}

func (d DepartmentDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
