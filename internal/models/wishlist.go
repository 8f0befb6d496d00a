package models

import "gorm.io/gorm"

// Wishlist is the per-user set of saved products. One wishlist per user,
// created lazily; a product may appear at most once.
type Wishlist struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string         `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items      []WishlistItem `json:"items" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
	gorm.Model
}

// WishlistItem is one saved product reference.
type WishlistItem struct {
	ID         uint    `json:"-" gorm:"primaryKey"`
	WishlistID string  `json:"-" gorm:"type:varchar(36);uniqueIndex:idx_wishlist_product"`
	ProductID  string  `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_wishlist_product"`
	Product    Product `json:"product"`
}
