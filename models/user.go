package models

import "gorm.io/gorm"

const (
	RoleUser           = "USER"
	RoleProductManager = "PRODUCTMANAGER"
	RoleSuperAdmin     = "SUPERADMIN"
)

type User struct {
	gorm.Model
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"not null;default:USER" json:"role"`
}
