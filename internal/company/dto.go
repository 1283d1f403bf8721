package company

import (
	"time"

	"github.com/danindra/workforce-scheduling/internal"
)

type UpdateCompanyDTO struct {
	Name     string       `json:"name"`
	LogoURL  string       `json:"logo_url"`
	Settings *SettingsDTO `json:"settings"`
}

type SettingsDTO struct {
	TimeZone               string `json:"time_zone"`
	WorkWeekStart          int    `json:"work_week_start"`
	DefaultShiftHours      int    `json:"default_shift_hours"`
	AllowShiftSwapping     bool   `json:"allow_shift_swapping"`
	RequireManagerApproval bool   `json:"require_manager_approval"`
}

func (d UpdateCompanyDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if d.Settings != nil {
		if d.Settings.WorkWeekStart < 0 || d.Settings.WorkWeekStart > 6 {
			return internal.NewValidationFieldError("settings.work_week_start", "work_week_start runs 0 through 6", internal.ErrCodeValidationFailed)
		}
		if d.Settings.DefaultShiftHours < 1 || d.Settings.DefaultShiftHours > 24 {
			return internal.NewValidationFieldError("settings.default_shift_hours", "default_shift_hours must be between 1 and 24", internal.ErrCodeValidationFailed)
		}
		if d.Settings.TimeZone != "" {
			if _, err := time.LoadLocation(d.Settings.TimeZone); err != nil {
				return internal.NewValidationFieldError("settings.time_zone", "unknown time zone", internal.ErrCodeValidationFailed)
			}
		}
	}
	return nil
}
