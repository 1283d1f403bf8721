package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	RoleID       int64      `gorm:"column:role_id;not null"`
	CompanyID    int64      `gorm:"column:company_id;not null"`
	DepartmentID *int64     `gorm:"column:department_id"`
	ManagerID    *int64     `gorm:"column:manager_id"`
	JobTitle     string     `gorm:"column:job_title"`
	PhoneNumber  string     `gorm:"column:phone_number"`
	AvatarURL    string     `gorm:"column:avatar_url"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
