package role

import "time"

type Role struct {
	ID              int64     `gorm:"primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	DisplayName     string    `gorm:"column:display_name;not null"`
	Class           string    `gorm:"column:class;not null;default:employee"`
	IsDefault       bool      `gorm:"column:is_default;default:false"`
	IsSystemDefined bool      `gorm:"column:is_system_defined;default:false"`
	CompanyID       int64     `gorm:"column:company_id;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}

type RolePermission struct {
	ID           int64     `gorm:"primaryKey"`
	RoleID       int64     `gorm:"column:role_id;not null;index"`
	PermissionID int64     `gorm:"column:permission_id;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
