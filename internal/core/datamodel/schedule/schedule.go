package schedule

import "time"

type Shift struct {
	ID           int64      `gorm:"primaryKey"`
	UserID       int64      `gorm:"column:user_id;not null;index"`
	ManagerID    int64      `gorm:"column:manager_id;not null"`
	CompanyID    int64      `gorm:"column:company_id;not null;index"`
	DepartmentID *int64     `gorm:"column:department_id"`
	Title        string     `gorm:"column:title;not null"`
	StartTime    time.Time  `gorm:"column:start_time;not null"`
	EndTime      time.Time  `gorm:"column:end_time;not null"`
	Status       string     `gorm:"column:status;default:active"`
	Notes        string     `gorm:"column:notes"`
	IsRecurring  bool       `gorm:"column:is_recurring;default:false"`
	RecurType    *string    `gorm:"column:recur_type"`
	RecurEvery   *int       `gorm:"column:recur_every"`
	RecurDays    string     `gorm:"column:recur_days"`
	RecurEndDate *time.Time `gorm:"column:recur_end_date"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Shift) TableName() string {
	return "shifts"
}
