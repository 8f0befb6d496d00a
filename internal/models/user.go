package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Admin is required for catalog mutations.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a user of the store.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Surname  string `json:"surname" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Role     string `json:"role" gorm:"type:varchar(20);default:customer" validate:"omitempty,oneof=customer admin"`

	// Password-reset state. Token is a one-shot uuid with a short expiry.
	ResetToken       string    `json:"-" gorm:"type:varchar(36);index"`
	ResetTokenExpiry time.Time `json:"-"`

	gorm.Model
}
