package models

import (
	"time"
)

const (
	RoleCustomer = "Customer"
	RoleAdmin    = "Admin"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(100);not null" json:"-"`
	FullName     string     `gorm:"type:varchar(100);not null" json:"full_name"`
	PhoneNumber  string     `gorm:"type:varchar(20)" json:"phone_number"`
	Address      string     `gorm:"type:varchar(255)" json:"address"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Role         string     `gorm:"type:varchar(20);not null;default:'Customer'" json:"role"`
	GoogleID     string     `gorm:"type:varchar(64);index" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
