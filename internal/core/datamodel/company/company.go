package company

import "time"

type Company struct {
	ID               int64     `gorm:"primaryKey"`
	Name             string    `gorm:"column:name;not null"`
	LogoURL          string    `gorm:"column:logo_url"`
	AdminUserID      *int64    `gorm:"column:admin_user_id"`
	SubscriptionPlan string    `gorm:"column:subscription_plan;default:free"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Scheduling policy settings.
	TimeZone               string `gorm:"column:time_zone;default:UTC"`
	WorkWeekStart          int    `gorm:"column:work_week_start;default:1"`
	DefaultShiftHours      int    `gorm:"column:default_shift_hours;default:8"`
	AllowShiftSwapping     bool   `gorm:"column:allow_shift_swapping;default:true"`
	RequireManagerApproval bool   `gorm:"column:require_manager_approval;default:true"`
}

func (Company) TableName() string {
	return "companies"
}
