package schedule

import (
	"time"

	"github.com/danindra/workforce-scheduling/internal"
)

type CreateShiftDTO struct {
	UserID       int64          `json:"user_id"`
	DepartmentID *int64         `json:"department_id"`
	Title        string         `json:"title"`
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	Notes        string         `json:"notes"`
	Recurrence   *RecurrenceDTO `json:"recurrence"`
}

type UpdateShiftDTO struct {
	Title      string         `json:"title"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	Status     string         `json:"status"`
	Notes      string         `json:"notes"`
	Recurrence *RecurrenceDTO `json:"recurrence"`
}

type RecurrenceDTO struct {
	Type    string     `json:"type"`
	Every   int        `json:"every"`
	Days    []int      `json:"days"`
	EndDate *time.Time `json:"end_date"`
}

type ListFilter struct {
	UserID       *int64
	DepartmentID *int64
	From         time.Time
	To           time.Time
}

func (d CreateShiftDTO) Validate() error {
	if d.UserID == 0 {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Title == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if err := validateWindow(d.StartTime, d.EndTime); err != nil {
		return err
	}
	return d.Recurrence.validate()
}

func (d UpdateShiftDTO) Validate() error {
	if d.Title == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && d.Status != StatusActive && d.Status != StatusCancelled {
		return internal.NewValidationFieldError("status", "status must be active or cancelled", internal.ErrCodeValidationFailed)
	}
	if err := validateWindow(d.StartTime, d.EndTime); err != nil {
		return err
	}
	return d.Recurrence.validate()
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return internal.NewValidationFieldError("start_time", "start_time and end_time are required", internal.ErrCodeValidationFailed)
	}
	if !end.After(start) {
		return internal.NewValidationFieldError("end_time", "end_time must be after start_time", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d *RecurrenceDTO) validate() error {
	if d == nil {
		return nil
	}
	if d.Type != RecurDaily && d.Type != RecurWeekly {
		return internal.NewValidationFieldError("recurrence.type", "recurrence type must be daily or weekly", internal.ErrCodeValidationFailed)
	}
	if d.Every < 1 {
		return internal.NewValidationFieldError("recurrence.every", "recurrence interval must be at least 1", internal.ErrCodeValidationFailed)
	}
	for _, day := range d.Days {
		if day < 0 || day > 6 {
			return internal.NewValidationFieldError("recurrence.days", "weekday numbers run 0 through 6", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}
