package models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Uname    string `gorm:"unique;not null" json:"uname"`
	Name     string `gorm:"default:''" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Role     string `gorm:"default:'user'" json:"role"` // user or admin
	Password string `gorm:"not null" json:"-"`
}

// IsValidRole reports whether role is one of the two enumerated values.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
