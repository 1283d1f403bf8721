package request

import "time"

type TimeOffRequest struct {
	ID         int64      `gorm:"primaryKey"`
	UserID     int64      `gorm:"column:user_id;not null;index"`
	ManagerID  *int64     `gorm:"column:manager_id"`
	CompanyID  int64      `gorm:"column:company_id;not null;index"`
	StartDate  time.Time  `gorm:"column:start_date;not null"`
	EndDate    time.Time  `gorm:"column:end_date;not null"`
	Reason     string     `gorm:"column:reason"`
	Status     string     `gorm:"column:status;default:pending"`
	Notes      string     `gorm:"column:notes"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`
	ReviewedBy *int64     `gorm:"column:reviewed_by"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (TimeOffRequest) TableName() string {
	return "time_off_requests"
}

type ShiftSwapRequest struct {
	ID               int64      `gorm:"primaryKey"`
	RequesterID      int64      `gorm:"column:requester_id;not null;index"`
	TargetUserID     int64      `gorm:"column:target_user_id;not null"`
	RequesterShiftID int64      `gorm:"column:requester_shift_id;not null"`
	TargetShiftID    int64      `gorm:"column:target_shift_id;not null"`
	CompanyID        int64      `gorm:"column:company_id;not null;index"`
	Reason           string     `gorm:"column:reason"`
	Status           string     `gorm:"column:status;default:pending"`
	ReviewedAt       *time.Time `gorm:"column:reviewed_at"`
	ReviewedBy       *int64     `gorm:"column:reviewed_by"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (ShiftSwapRequest) TableName() string {
	return "shift_swap_requests"
}
