package entity

import (
	"time"
)

// UserRole 角色
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

var userRoles = map[string]bool{
	RoleAdmin:    true,
	RoleManager:  true,
	RoleOperator: true,
}

// ValidUserRole 校验角色
func ValidUserRole(r string) bool {
	return userRoles[r]
}

// User 用户实体
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Username     string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email        string     `json:"email" gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"size:128;not null"`
	FullName     string     `json:"full_name" gorm:"size:128"`
	Role         string     `json:"role" gorm:"size:16;not null;default:operator"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
