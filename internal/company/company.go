package company

import (
	"time"

	companyDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/company"
)

type Company struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	LogoURL          string    `json:"logo_url,omitempty"`
	SubscriptionPlan string    `json:"subscription_plan"`
	Settings         Settings  `json:"settings"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Settings are the scheduling policy knobs an admin can change.
type Settings struct {
	TimeZone               string `json:"time_zone"`
	WorkWeekStart          int    `json:"work_week_start"`
	DefaultShiftHours      int    `json:"default_shift_hours"`
	AllowShiftSwapping     bool   `json:"allow_shift_swapping"`
	RequireManagerApproval bool   `json:"require_manager_approval"`
}

func FromDataModel(m *companyDatamodel.Company) *Company {
	return &Company{
		ID:               m.ID,
		Name:             m.Name,
		LogoURL:          m.LogoURL,
		SubscriptionPlan: m.SubscriptionPlan,
		Settings: Settings{
			TimeZone:               m.TimeZone,
			WorkWeekStart:          m.WorkWeekStart,
			DefaultShiftHours:      m.DefaultShiftHours,
			AllowShiftSwapping:     m.AllowShiftSwapping,
			RequireManagerApproval: m.RequireManagerApproval,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
