package shiftswap

import "github.com/danindra/workforce-scheduling/internal"

type CreateSwapDTO struct {
	TargetUserID     int64  `json:"target_user_id"`
	RequesterShiftID int64  `json:"requester_shift_id"`
	TargetShiftID    int64  `json:"target_shift_id"`
	Reason           string `json:"reason"`
}

type ReviewDTO struct {
	Notes string `json:"notes"`
}

type ListFilter struct {
	UserID *int64
	Status string
}

func (d CreateSwapDTO) Validate() error {
	if d.TargetUserID == 0 {
		return internal.NewValidationFieldError("target_user_id", "target_user_id is required", internal.ErrCodeValidationFailed)
	}
	if d.RequesterShiftID == 0 || d.TargetShiftID == 0 {
		return internal.NewValidationFieldError("requester_shift_id", "both shift ids are required", internal.ErrCodeValidationFailed)
	}
	if d.RequesterShiftID == d.TargetShiftID {
		return internal.NewValidationFieldError("target_shift_id", "cannot swap a shift with itself", internal.ErrCodeValidationFailed)
	}
	return nil
}
