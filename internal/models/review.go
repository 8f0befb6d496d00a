package models

import "gorm.io/gorm"

// Review is an append-only product review. Users may review the same
// product more than once; reviews are never edited or deleted.
type Review struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Product   Product `json:"product" validate:"-"`
	UserID    string  `json:"user_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	User      User    `json:"user" validate:"-"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   string  `json:"comment" validate:"required"`
	gorm.Model
}
