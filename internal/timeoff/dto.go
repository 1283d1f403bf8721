package timeoff

import (
	"time"

	"github.com/danindra/workforce-scheduling/internal"
)

type CreateRequestDTO struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

type ReviewDTO struct {
	Notes string `json:"notes"`
}

type ListFilter struct {
	UserID *int64
	Status string
}

func (d CreateRequestDTO) Validate() error {
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return internal.NewValidationFieldError("start_date", "start_date and end_date are required", internal.ErrCodeValidationFailed)
	}
	if d.EndDate.Before(d.StartDate) {
		return internal.NewValidationFieldError("end_date", "end_date must not precede start_date", internal.ErrCodeValidationFailed)
	}
	return nil
}
