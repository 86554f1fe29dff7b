package models

import "time"

// Roles recognised by the platform.
const (
	RoleCustomer   = "customer"
	RoleTruckOwner = "truckOwner"
	RoleAdmin      = "admin"
)

type User struct {
	ID           uint       `gorm:"primaryKey;column:userId" json:"userId"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleTruckOwner, RoleAdmin:
		return true
	}
	return false
}
